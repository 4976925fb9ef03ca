package mocks

import (
	"context"

	"travel-agency/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockFlightSearcher is a mock implementation of api.FlightSearcher
type MockFlightSearcher struct {
	mock.Mock
}

func (m *MockFlightSearcher) Search(ctx context.Context, c models.SearchCriteria) []models.Flight {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Flight)
}

// MockPaymentProcessor is a mock implementation of api.PaymentProcessor
type MockPaymentProcessor struct {
	mock.Mock
}

func (m *MockPaymentProcessor) CompletePayment(ctx context.Context, bookingID, method string) (*models.Booking, error) {
	args := m.Called(ctx, bookingID, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

// MockConcierge is a mock implementation of api.Concierge
type MockConcierge struct {
	mock.Mock
}

func (m *MockConcierge) Reply(ctx context.Context, message string, history []models.ChatTurn) string {
	args := m.Called(ctx, message, history)
	return args.String(0)
}
