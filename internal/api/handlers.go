package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"travel-agency/internal/admin"
	"travel-agency/internal/auth"
	"travel-agency/internal/booking"
	"travel-agency/internal/flights"
	"travel-agency/internal/invoice"
	"travel-agency/internal/models"

	"github.com/gorilla/mux"
)

// FlightSearcher returns offers for a search; it never fails
type FlightSearcher interface {
	Search(ctx context.Context, c models.SearchCriteria) []models.Flight
}

type BookingService interface {
	Checkout(ctx context.Context, req models.CheckoutRequest) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	Lookup(ctx context.Context, id string) (*models.Booking, bool, error)
	SetStatus(ctx context.Context, id, status string) (*models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	Delete(ctx context.Context, id string) error
}

// PaymentProcessor completes the simulated payment of a booking
type PaymentProcessor interface {
	CompletePayment(ctx context.Context, bookingID, method string) (*models.Booking, error)
}

type Concierge interface {
	Reply(ctx context.Context, message string, history []models.ChatTurn) string
}

type InvoiceService interface {
	Generate(ctx context.Context, in invoice.Input) (*models.Invoice, error)
	List(ctx context.Context) ([]models.Invoice, error)
	Get(ctx context.Context, id string) (*models.Invoice, error)
	Delete(ctx context.Context, id string) error
}

type SettingsStore interface {
	Get(ctx context.Context) (models.CompanySettings, error)
	Save(ctx context.Context, settings models.CompanySettings) error
	SaveMarkup(ctx context.Context, markup models.MarkupConfig) (models.CompanySettings, error)
}

type Exporter interface {
	Export(ctx context.Context) (*models.DatabaseExport, error)
}

// Options wires the handler's collaborators
type Options struct {
	Flights   FlightSearcher
	Bookings  BookingService
	Payments  PaymentProcessor
	Packages  *admin.PackageService
	Leads     *admin.LeadService
	Users     *admin.UserService
	Invoices  InvoiceService
	Settings  SettingsStore
	Exporter  Exporter
	Concierge Concierge
	Verifier  auth.Verifier
	Tokens    *auth.Tokens
	UPIPayee  string
}

type Handler struct {
	flights   FlightSearcher
	bookings  BookingService
	payments  PaymentProcessor
	packages  *admin.PackageService
	leads     *admin.LeadService
	users     *admin.UserService
	invoices  InvoiceService
	settings  SettingsStore
	exporter  Exporter
	concierge Concierge
	verifier  auth.Verifier
	tokens    *auth.Tokens
	upiPayee  string
	now       func() time.Time
}

func NewHandler(opts Options) *Handler {
	return &Handler{
		flights:   opts.Flights,
		bookings:  opts.Bookings,
		payments:  opts.Payments,
		packages:  opts.Packages,
		leads:     opts.Leads,
		users:     opts.Users,
		invoices:  opts.Invoices,
		settings:  opts.Settings,
		exporter:  opts.Exporter,
		concierge: opts.Concierge,
		verifier:  opts.Verifier,
		tokens:    opts.Tokens,
		upiPayee:  opts.UPIPayee,
		now:       time.Now,
	}
}

// Health check endpoint
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// SearchAirports serves the origin/destination autocomplete
func (h *Handler) SearchAirports(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, flights.SearchAirports(r.URL.Query().Get("q")))
}

// SearchFlights runs a search and applies the sidebar filter from the query
func (h *Handler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := models.SearchCriteria{
		From:       strings.ToUpper(strings.TrimSpace(q.Get("from"))),
		To:         strings.ToUpper(strings.TrimSpace(q.Get("to"))),
		DepartDate: q.Get("depart"),
		ReturnDate: q.Get("return"),
		Travelers: models.TravelerConfig{
			Adults:   queryInt(q.Get("adults"), 1),
			Children: queryInt(q.Get("children"), 0),
			Infants:  queryInt(q.Get("infants"), 0),
			Class:    q.Get("class"),
		},
	}
	if criteria.Travelers.Class == "" {
		criteria.Travelers.Class = "Economy"
	}

	filter := models.FlightFilter{
		Stops:          queryList(q["stops"]),
		Airlines:       queryList(q["airline"]),
		DepartureTimes: queryList(q["departure"]),
		ArrivalTimes:   queryList(q["arrival"]),
	}

	all := h.flights.Search(r.Context(), criteria)
	filtered := flights.Apply(all, filter)

	respondJSON(w, http.StatusOK, models.FlightSearchResponse{
		Flights:  filtered,
		Airlines: flights.Airlines(all),
		Total:    len(all),
	})
}

// FilterFlights recomputes the filtered list for an already fetched result
func (h *Handler) FilterFlights(w http.ResponseWriter, r *http.Request) {
	var req models.FilterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, flights.Apply(req.Flights, req.Filter))
}

func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.packages.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, packages)
}

func (h *Handler) GetPackage(w http.ResponseWriter, r *http.Request) {
	p, err := h.packages.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// Checkout creates a Pending booking for the selected flight
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	b, err := h.bookings.Checkout(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

// GetBooking serves the confirmation page
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondBookingError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// GetPaymentOptions returns the amount due and the UPI deep link
func (h *Handler) GetPaymentOptions(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			respondError(w, http.StatusGone, booking.ErrSessionExpired.Error())
			return
		}
		respondBookingError(w, err)
		return
	}

	payeeName := "Hamsika Travels"
	if settings, err := h.settings.Get(r.Context()); err == nil && settings.BrandName != "" {
		payeeName = settings.BrandName
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"bookingId": b.ID,
		"amount":    b.Amount,
		"upiUri":    booking.UPIPaymentURI(*b, h.upiPayee, payeeName),
	})
}

// SubmitPayment completes the simulated payment
func (h *Handler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["id"]

	var req models.SubmitPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	b, err := h.payments.CompletePayment(r.Context(), bookingID, req.Method)
	if err != nil {
		respondBookingError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// PaymentStatus looks a booking up by reference; a miss is not an error
func (h *Handler) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("bookingId")
	if id == "" {
		id = r.URL.Query().Get("id")
	}

	b, found, err := h.bookings.Lookup(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, models.PaymentStatusResponse{Found: found, Booking: b})
}

// Chat relays a message to the travel concierge
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "message required")
		return
	}

	respondJSON(w, http.StatusOK, models.ChatResponse{
		Reply: h.concierge.Reply(r.Context(), req.Message, req.History),
	})
}

// Login exchanges the admin credentials for a session token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if err := h.verifier.Verify(r.Context(), req.Username, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, expires, err := h.tokens.Issue(req.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expires.UTC().Format(time.RFC3339),
	})
}

func respondBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrSessionExpired):
		respondError(w, http.StatusGone, err.Error())
	case errors.Is(err, booking.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, admin.ErrNotFound) || errors.Is(err, invoice.ErrNotFound) {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}

func queryInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// queryList accepts repeated parameters and comma separated values
func queryList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
