package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"travel-agency/internal/booking"
	"travel-agency/internal/config"
	"travel-agency/internal/idgen"
	"travel-agency/internal/store"
	"travel-agency/internal/temporal/activities"
	"travel-agency/internal/temporal/workflows"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.DatabaseDriver == store.DriverMemory {
		log.Fatalf("The worker needs a shared database, DATABASE_DRIVER=%s is process local", cfg.DatabaseDriver)
	}

	// Connect to database
	backend, err := store.Open(context.Background(), cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer backend.Close()

	log.Println("Connected to database")

	// Connect to Temporal
	temporalClient, err := client.Dial(client.Options{
		HostPort: cfg.TemporalAddress,
	})
	if err != nil {
		log.Fatalf("Failed to create Temporal client: %v", err)
	}
	defer temporalClient.Close()

	log.Println("Connected to Temporal")

	ids := idgen.New()
	repo := store.NewRepository(backend, ids)
	bookings := booking.NewService(repo.Bookings, ids)

	// Create worker
	w := worker.New(temporalClient, cfg.TaskQueue, worker.Options{})

	// Register workflows
	w.RegisterWorkflow(workflows.PaymentWorkflow)

	// Register activities
	paymentActivities := activities.NewPaymentActivities(bookings)
	w.RegisterActivity(paymentActivities.ConfirmPayment)

	notificationActivities := activities.NewNotificationActivities()
	w.RegisterActivity(notificationActivities.SendConfirmation)

	// Start worker
	err = w.Start()
	if err != nil {
		log.Fatalf("Failed to start worker: %v", err)
	}

	log.Printf("Worker started on task queue %s", cfg.TaskQueue)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down worker...")
	w.Stop()
	log.Println("Worker stopped")
}
