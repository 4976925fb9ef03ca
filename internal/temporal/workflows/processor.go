package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-agency/internal/booking"
	"travel-agency/internal/models"
	"travel-agency/internal/temporal/activities"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
)

// DefaultTaskQueue is where the worker polls for payment workflows
const DefaultTaskQueue = "payment-task-queue"

// BookingGetter reads a booking by id
type BookingGetter interface {
	Get(ctx context.Context, id string) (*models.Booking, error)
}

// PaymentProcessor runs each payment attempt as a PaymentWorkflow and waits
// for its result
type PaymentProcessor struct {
	Client    client.Client
	TaskQueue string
	Delay     time.Duration
	Bookings  BookingGetter
}

func NewPaymentProcessor(c client.Client, taskQueue string, delay time.Duration, bookings BookingGetter) *PaymentProcessor {
	if taskQueue == "" {
		taskQueue = DefaultTaskQueue
	}
	return &PaymentProcessor{Client: c, TaskQueue: taskQueue, Delay: delay, Bookings: bookings}
}

func (p *PaymentProcessor) CompletePayment(ctx context.Context, bookingID, method string) (*models.Booking, error) {
	if _, err := p.Bookings.Get(ctx, bookingID); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return nil, booking.ErrSessionExpired
		}
		return nil, err
	}

	// one workflow per attempt; repeated payments are allowed
	workflowOptions := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("payment-%s-%s", bookingID, uuid.New().String()),
		TaskQueue: p.TaskQueue,
	}

	input := models.PaymentInput{
		BookingID: bookingID,
		Method:    method,
		DelayMS:   p.Delay.Milliseconds(),
	}

	we, err := p.Client.ExecuteWorkflow(ctx, workflowOptions, PaymentWorkflow, input)
	if err != nil {
		return nil, fmt.Errorf("failed to start payment workflow: %w", err)
	}

	var result models.Booking
	if err := we.Get(ctx, &result); err != nil {
		var appErr *temporal.ApplicationError
		if errors.As(err, &appErr) && appErr.Type() == activities.ErrTypeBookingNotFound {
			return nil, booking.ErrSessionExpired
		}
		return nil, fmt.Errorf("payment workflow failed: %w", err)
	}

	return &result, nil
}
