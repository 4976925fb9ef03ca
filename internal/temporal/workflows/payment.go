package workflows

import (
	"time"

	"travel-agency/internal/models"
	"travel-agency/internal/temporal/activities"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// PaymentWorkflow simulates the payment gateway: it waits the configured
// delay on a durable timer, confirms the booking, then dispatches the e-ticket.
func PaymentWorkflow(ctx workflow.Context, input models.PaymentInput) (*models.Booking, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("PaymentWorkflow started", "bookingID", input.BookingID, "method", input.Method)

	if input.DelayMS > 0 {
		if err := workflow.Sleep(ctx, time.Duration(input.DelayMS)*time.Millisecond); err != nil {
			return nil, err
		}
	}

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	var paymentActivities *activities.PaymentActivities
	var result *models.Booking

	err := workflow.ExecuteActivity(ctx, paymentActivities.ConfirmPayment, input.BookingID, input.Method).Get(ctx, &result)
	if err != nil {
		logger.Error("Payment confirmation failed", "error", err)
		return nil, err
	}

	var notificationActivities *activities.NotificationActivities
	if err := workflow.ExecuteActivity(ctx, notificationActivities.SendConfirmation, *result).Get(ctx, nil); err != nil {
		// the booking is already confirmed
		logger.Warn("Failed to send confirmation", "error", err)
	}

	logger.Info("PaymentWorkflow completed", "bookingID", result.ID, "paymentID", result.PaymentID)
	return result, nil
}
