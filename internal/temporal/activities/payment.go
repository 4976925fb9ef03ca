package activities

import (
	"context"
	"errors"
	"fmt"

	"travel-agency/internal/booking"
	"travel-agency/internal/models"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
)

// ErrTypeBookingNotFound is the application error type raised when the
// booking disappeared before the payment could be applied
const ErrTypeBookingNotFound = "BookingNotFound"

// BookingConfirmer applies the payment transition
type BookingConfirmer interface {
	ConfirmPayment(ctx context.Context, id, method string) (*models.Booking, error)
}

type PaymentActivities struct {
	Bookings BookingConfirmer
}

func NewPaymentActivities(bookings BookingConfirmer) *PaymentActivities {
	return &PaymentActivities{Bookings: bookings}
}

// ConfirmPayment marks the booking Confirmed with a fresh transaction id
func (a *PaymentActivities) ConfirmPayment(ctx context.Context, bookingID, method string) (*models.Booking, error) {
	logger := activity.GetLogger(ctx)

	b, err := a.Bookings.ConfirmPayment(ctx, bookingID, method)
	if err != nil {
		// A missing booking is a permanent error - don't retry
		if errors.Is(err, booking.ErrSessionExpired) {
			return nil, temporal.NewNonRetryableApplicationError(
				err.Error(),
				ErrTypeBookingNotFound,
				err,
			)
		}
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}

	logger.Info("Payment applied", "bookingID", b.ID, "paymentID", b.PaymentID)
	return b, nil
}
