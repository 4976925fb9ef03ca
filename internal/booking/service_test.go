package booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"travel-agency/internal/idgen"
	"travel-agency/internal/models"
	"travel-agency/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BookingServiceTestSuite struct {
	suite.Suite
	repo    *store.Repository
	service *Service
	clock   time.Time
}

func (s *BookingServiceTestSuite) SetupTest() {
	s.clock = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)
	ids := idgen.NewWithClock(func() time.Time { return s.clock })
	s.repo = store.NewRepository(store.NewMemoryBlobs(), ids)
	s.service = NewService(s.repo.Bookings, ids).WithClock(func() time.Time { return s.clock })
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}

func checkoutRequest() models.CheckoutRequest {
	return models.CheckoutRequest{
		Flight: models.Flight{
			ID:           "fl_1_0",
			Airline:      "IndiGo",
			FlightNumber: "6E-451",
			From:         "HYD",
			To:           "DXB",
			Price:        5000,
		},
		Passengers: []models.Passenger{
			{Type: "Adult", Title: "Mr", FirstName: "Arjun", LastName: "Mehta", Gender: "Male"},
			{Type: "Adult", Title: "Mrs", FirstName: "Kavya", LastName: "Mehta", Gender: "Female"},
		},
		Email:  "arjun@example.com",
		Mobile: "9000000001",
	}
}

func (s *BookingServiceTestSuite) TestCheckout_CreatesPendingBooking() {
	b, err := s.service.Checkout(context.Background(), checkoutRequest())
	s.Require().NoError(err)

	s.True(strings.HasPrefix(b.ID, "BK"))
	s.Equal(models.BookingTypeFlight, b.Type)
	s.Equal("2024-01-10", b.Date)
	s.Equal("Arjun Mehta", b.CustomerName)
	s.Equal("arjun@example.com", b.CustomerEmail)
	s.Equal("9000000001", b.CustomerPhone)
	s.Equal(models.StatusPending, b.Status)
	s.Equal(int64(10000), b.Amount)
	s.Equal("6E-451", b.Details.FlightNumber)
	s.Len(b.Details.Passengers, 2)
	s.Empty(b.PaymentID)

	stored, err := s.service.Get(context.Background(), b.ID)
	s.Require().NoError(err)
	s.Equal(b, stored)
}

func (s *BookingServiceTestSuite) TestCheckout_NoPassengers() {
	req := checkoutRequest()
	req.Passengers = nil

	b, err := s.service.Checkout(context.Background(), req)
	s.Require().NoError(err)
	s.Equal("", b.CustomerName)
	s.Equal(int64(0), b.Amount)
	s.NotNil(b.Details.Passengers)
}

func (s *BookingServiceTestSuite) TestGet_Missing() {
	_, err := s.service.Get(context.Background(), "BK0")
	s.ErrorIs(err, ErrNotFound)
}

func (s *BookingServiceTestSuite) TestLookup_CaseInsensitiveAndTrimmed() {
	ctx := context.Background()
	stored, err := s.repo.Bookings.Add(ctx, models.Booking{Status: models.StatusPending})
	s.Require().NoError(err)
	s.Equal("BK1704879000000", stored.ID)

	b, found, err := s.service.Lookup(ctx, "  bk1704879000000 ")
	s.Require().NoError(err)
	s.True(found)
	s.Equal(stored.ID, b.ID)

	_, found, err = s.service.Lookup(ctx, "BK999")
	s.Require().NoError(err)
	s.False(found)

	_, found, err = s.service.Lookup(ctx, "   ")
	s.Require().NoError(err)
	s.False(found)
}

func (s *BookingServiceTestSuite) TestConfirmPayment_TwiceChangesPaymentID() {
	ctx := context.Background()
	b, err := s.service.Checkout(ctx, checkoutRequest())
	s.Require().NoError(err)

	first, err := s.service.ConfirmPayment(ctx, b.ID, models.PaymentMethodCard)
	s.Require().NoError(err)
	s.Equal(models.StatusConfirmed, first.Status)
	s.NotEmpty(first.PaymentID)
	s.True(strings.HasPrefix(first.PaymentID, "TXN"))
	s.Equal(models.PaymentLabelCard, first.PaymentMethod)
	s.Equal("2024-01-10T09:30:00Z", first.PaymentDate)

	second, err := s.service.ConfirmPayment(ctx, b.ID, models.PaymentMethodUPI)
	s.Require().NoError(err)
	s.Equal(models.StatusConfirmed, second.Status)
	s.NotEqual(first.PaymentID, second.PaymentID)
	s.Equal(models.PaymentLabelUPI, second.PaymentMethod)

	stored, err := s.service.Get(ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(second.PaymentID, stored.PaymentID)
}

func (s *BookingServiceTestSuite) TestConfirmPayment_MissingBookingExpiresSession() {
	_, err := s.service.ConfirmPayment(context.Background(), "BK404", models.PaymentMethodCard)
	s.ErrorIs(err, ErrSessionExpired)
}

func (s *BookingServiceTestSuite) TestSetStatus_AdminOverride() {
	ctx := context.Background()
	b, err := s.service.Checkout(ctx, checkoutRequest())
	s.Require().NoError(err)

	for _, status := range []string{models.StatusCancelled, models.StatusConfirmed, models.StatusPending} {
		updated, err := s.service.SetStatus(ctx, b.ID, status)
		s.Require().NoError(err)
		s.Equal(status, updated.Status)
	}

	_, err = s.service.SetStatus(ctx, b.ID, "Refunded")
	s.ErrorIs(err, ErrInvalidStatus)

	_, err = s.service.SetStatus(ctx, "BK404", models.StatusCancelled)
	s.ErrorIs(err, ErrNotFound)
}

func (s *BookingServiceTestSuite) TestListAndDelete() {
	ctx := context.Background()
	b, err := s.service.Checkout(ctx, checkoutRequest())
	s.Require().NoError(err)

	all, err := s.service.List(ctx)
	s.Require().NoError(err)
	s.Len(all, 1)

	s.Require().NoError(s.service.Delete(ctx, b.ID))
	s.Require().NoError(s.service.Delete(ctx, b.ID))

	all, err = s.service.List(ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *BookingServiceTestSuite) TestInlinePayments() {
	ctx := context.Background()
	b, err := s.service.Checkout(ctx, checkoutRequest())
	s.Require().NoError(err)

	payments := NewInlinePayments(s.service, time.Millisecond)
	confirmed, err := payments.CompletePayment(ctx, b.ID, models.PaymentMethodUPI)
	s.Require().NoError(err)
	s.Equal(models.StatusConfirmed, confirmed.Status)

	_, err = payments.CompletePayment(ctx, "BK404", models.PaymentMethodCard)
	s.ErrorIs(err, ErrSessionExpired)
}

func (s *BookingServiceTestSuite) TestInlinePayments_ContextCancelled() {
	ctx, cancel := context.WithCancel(context.Background())
	b, err := s.service.Checkout(ctx, checkoutRequest())
	s.Require().NoError(err)

	cancel()
	_, err = NewInlinePayments(s.service, time.Hour).CompletePayment(ctx, b.ID, models.PaymentMethodCard)
	s.ErrorIs(err, context.Canceled)

	stored, err := s.service.Get(context.Background(), b.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, stored.Status)
}

// The API server and the payment worker each build their own repository over
// the same backend; neither may drop the other's writes.
func TestService_SharedBackendKeepsEveryWrite(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMemoryBlobs()

	serverIDs := idgen.New()
	server := NewService(store.NewRepository(blobs, serverIDs).Bookings, serverIDs)
	workerIDs := idgen.New()
	worker := NewService(store.NewRepository(blobs, workerIDs).Bookings, workerIDs)

	first, err := server.Checkout(ctx, checkoutRequest())
	require.NoError(t, err)

	const checkouts = 25
	var wg sync.WaitGroup
	errs := make(chan error, 2*checkouts)
	for i := 0; i < checkouts; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := server.Checkout(ctx, checkoutRequest())
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := worker.ConfirmPayment(ctx, first.ID, models.PaymentMethodUPI)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := worker.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, checkouts+1)

	stored, err := server.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
	assert.Equal(t, models.PaymentLabelUPI, stored.PaymentMethod)
}

func TestPaymentLabel(t *testing.T) {
	assert.Equal(t, models.PaymentLabelUPI, PaymentLabel("upi"))
	assert.Equal(t, models.PaymentLabelUPI, PaymentLabel("UPI"))
	assert.Equal(t, models.PaymentLabelCard, PaymentLabel("card"))
	assert.Equal(t, models.PaymentLabelCard, PaymentLabel(""))
}

func TestUPIPaymentURI(t *testing.T) {
	uri := UPIPaymentURI(models.Booking{ID: "BK1", Amount: 10000}, "9493936084@upi", "Hamsika Travels")
	require.Equal(t, "upi://pay?pa=9493936084@upi&pn=Hamsika Travels&am=10000&cu=INR&tn=BookingRef_BK1", uri)
}
