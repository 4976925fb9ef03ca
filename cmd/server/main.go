package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-agency/internal/admin"
	"travel-agency/internal/api"
	"travel-agency/internal/auth"
	"travel-agency/internal/booking"
	"travel-agency/internal/concierge"
	"travel-agency/internal/config"
	"travel-agency/internal/flights"
	"travel-agency/internal/idgen"
	"travel-agency/internal/invoice"
	"travel-agency/internal/store"
	"travel-agency/internal/temporal/workflows"

	"go.temporal.io/sdk/client"
)

func main() {
	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

	// Connect to database
	backend, err := store.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer backend.Close()

	log.Printf("Connected to %s storage", cfg.DatabaseDriver)

	ids := idgen.New()
	repo := store.NewRepository(backend, ids)
	bookings := booking.NewService(repo.Bookings, ids)

	// Payment gateway simulation
	var payments api.PaymentProcessor
	if cfg.PaymentMode == config.PaymentModeInline {
		payments = booking.NewInlinePayments(bookings, cfg.PaymentDelay)
		log.Println("Payments run inline")
	} else {
		temporalClient, err := client.Dial(client.Options{
			HostPort: cfg.TemporalAddress,
		})
		if err != nil {
			log.Fatalf("Failed to create Temporal client: %v", err)
		}
		defer temporalClient.Close()

		log.Println("Connected to Temporal")
		payments = workflows.NewPaymentProcessor(temporalClient, cfg.TaskQueue, cfg.PaymentDelay, bookings)
	}

	// Flight search: live API when a key is configured, generated offers otherwise
	provider := flights.NewProvider(
		repo.Settings,
		flights.NewKiwiClient(cfg.FlightAPIURL, cfg.FlightAPITimeout),
		flights.NewMockGenerator(cfg.MockSearchDelay, ids, nil),
	)

	// Concierge
	var generator concierge.Generator
	if cfg.GeminiAPIKey != "" {
		gemini, err := concierge.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("Concierge disabled: %v", err)
		} else {
			generator = gemini
		}
	} else {
		log.Println("GEMINI_API_KEY not set, concierge will apologise")
	}

	verifier, err := auth.NewStaticVerifier(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to configure admin login: %v", err)
	}

	// Create API handler
	handler := api.NewHandler(api.Options{
		Flights:   provider,
		Bookings:  bookings,
		Payments:  payments,
		Packages:  admin.NewPackageService(repo.Packages),
		Leads:     admin.NewLeadService(repo.Leads),
		Users:     admin.NewUserService(repo.Users),
		Invoices:  invoice.NewService(repo.Invoices, ids),
		Settings:  repo.Settings,
		Exporter:  repo,
		Concierge: concierge.New(generator, cfg.ConciergeReplay),
		Verifier:  verifier,
		Tokens:    auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		UPIPayee:  cfg.UPIPayee,
	})

	// Create router
	router := api.NewRouter(handler, cfg.CORSAllowedOrigins)

	// Create HTTP server. The write timeout covers the simulated payment delay.
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30*time.Second + cfg.PaymentDelay,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
