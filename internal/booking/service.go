package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"travel-agency/internal/idgen"
	"travel-agency/internal/models"
	"travel-agency/internal/store"
)

// Sentinel errors
var (
	ErrNotFound       = errors.New("booking not found")
	ErrSessionExpired = errors.New("booking session expired")
	ErrInvalidStatus  = errors.New("invalid booking status")
)

// TransactionPrefix is prepended to simulated payment ids
const TransactionPrefix = "TXN"

// Service implements the booking lifecycle: Pending on checkout, Confirmed on
// payment, and any status on an explicit admin override.
type Service struct {
	bookings *store.Collection[models.Booking]
	ids      *idgen.Generator
	now      func() time.Time
}

func NewService(bookings *store.Collection[models.Booking], ids *idgen.Generator) *Service {
	return &Service{bookings: bookings, ids: ids, now: time.Now}
}

// WithClock overrides the wall clock used for booking and payment dates
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Checkout records a Pending booking for the selected flight. The amount is
// the flight price times the number of passengers.
func (s *Service) Checkout(ctx context.Context, req models.CheckoutRequest) (*models.Booking, error) {
	customerName := ""
	if len(req.Passengers) > 0 {
		p := req.Passengers[0]
		customerName = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}

	passengers := req.Passengers
	if passengers == nil {
		passengers = []models.Passenger{}
	}

	b := models.Booking{
		Type:          models.BookingTypeFlight,
		Date:          s.now().Format(models.DateLayout),
		CustomerName:  customerName,
		CustomerEmail: req.Email,
		CustomerPhone: req.Mobile,
		Status:        models.StatusPending,
		Amount:        req.Flight.Price * int64(len(req.Passengers)),
		Details: models.BookingDetails{
			FlightID:     req.Flight.ID,
			Airline:      req.Flight.Airline,
			FlightNumber: req.Flight.FlightNumber,
			From:         req.Flight.From,
			To:           req.Flight.To,
			Passengers:   passengers,
		},
	}

	stored, err := s.bookings.Add(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Printf("Booking %s created for %s (%d passengers, amount %d)", stored.ID, stored.Details.FlightNumber, len(passengers), stored.Amount)
	return &stored, nil
}

// Get returns the booking with exactly this id
func (s *Service) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, found, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &b, nil
}

// Lookup matches the id case-insensitively after trimming. A miss is a normal
// outcome and is reported through found.
func (s *Service) Lookup(ctx context.Context, id string) (*models.Booking, bool, error) {
	needle := strings.TrimSpace(id)
	if needle == "" {
		return nil, false, nil
	}

	b, found, err := s.bookings.Find(ctx, func(b models.Booking) bool {
		return strings.EqualFold(b.ID, needle)
	})
	if err != nil || !found {
		return nil, false, err
	}
	return &b, true, nil
}

// ConfirmPayment moves the booking to Confirmed and stamps a fresh payment
// id. Repeating it replaces the payment fields again.
func (s *Service) ConfirmPayment(ctx context.Context, id, method string) (*models.Booking, error) {
	b, found, err := s.bookings.Modify(ctx, id, func(b models.Booking) (models.Booking, error) {
		b.Status = models.StatusConfirmed
		b.PaymentID = s.ids.NextString(TransactionPrefix)
		b.PaymentMethod = PaymentLabel(method)
		b.PaymentDate = s.now().UTC().Format(time.RFC3339)
		return b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	if !found {
		return nil, ErrSessionExpired
	}

	log.Printf("Booking %s confirmed with payment %s (%s)", b.ID, b.PaymentID, b.PaymentMethod)
	return &b, nil
}

// SetStatus is the admin override. Any status may replace any other.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	b, found, err := s.bookings.Modify(ctx, id, func(b models.Booking) (models.Booking, error) {
		b.Status = status
		return b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}

	log.Printf("Booking %s status set to %s by admin", b.ID, status)
	return &b, nil
}

func (s *Service) List(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.GetAll(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.bookings.Delete(ctx, id)
}

// ValidStatus reports whether status is one of the booking statuses
func ValidStatus(status string) bool {
	switch status {
	case models.StatusPending, models.StatusConfirmed, models.StatusCancelled:
		return true
	}
	return false
}

// PaymentLabel maps the chosen method to the label stored on the booking
func PaymentLabel(method string) string {
	if strings.EqualFold(method, models.PaymentMethodUPI) || method == models.PaymentLabelUPI {
		return models.PaymentLabelUPI
	}
	return models.PaymentLabelCard
}

// UPIPaymentURI builds the deep link rendered as a QR code on the payment page
func UPIPaymentURI(b models.Booking, payee, payeeName string) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%d&cu=INR&tn=BookingRef_%s", payee, payeeName, b.Amount, b.ID)
}
