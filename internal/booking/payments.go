package booking

import (
	"context"
	"errors"
	"time"

	"travel-agency/internal/models"
)

// DefaultPaymentDelay is the simulated gateway latency
const DefaultPaymentDelay = 2 * time.Second

// InlinePayments completes payments in the calling goroutine after the
// simulated gateway delay
type InlinePayments struct {
	Bookings *Service
	Delay    time.Duration
}

func NewInlinePayments(bookings *Service, delay time.Duration) *InlinePayments {
	return &InlinePayments{Bookings: bookings, Delay: delay}
}

// CompletePayment fails fast with ErrSessionExpired when the booking is gone,
// then waits the delay and confirms it
func (p *InlinePayments) CompletePayment(ctx context.Context, bookingID, method string) (*models.Booking, error) {
	if _, err := p.Bookings.Get(ctx, bookingID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}

	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return p.Bookings.ConfirmPayment(ctx, bookingID, method)
}
