package activities

import (
	"context"
	"log"

	"travel-agency/internal/models"
)

type NotificationActivities struct{}

func NewNotificationActivities() *NotificationActivities {
	return &NotificationActivities{}
}

// SendConfirmation sends the e-ticket to the customer (simulated)
func (a *NotificationActivities) SendConfirmation(ctx context.Context, b models.Booking) error {
	// In production, this would send an email/SMS
	log.Printf("Sending e-ticket for booking %s to %s / %s", b.ID, b.CustomerEmail, b.CustomerPhone)
	return nil
}
