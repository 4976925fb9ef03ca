package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(h *Handler, allowedOrigins []string) *mux.Router {
	r := mux.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(CORSMiddleware(allowedOrigins))
	r.Use(LoggingMiddleware)

	// Preflight for every path; the CORS middleware answers it
	r.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(JSONMiddleware)

	// Search routes
	api.HandleFunc("/airports", h.SearchAirports).Methods("GET")
	api.HandleFunc("/flights/search", h.SearchFlights).Methods("GET")
	api.HandleFunc("/flights/filter", h.FilterFlights).Methods("POST")
	api.HandleFunc("/packages", h.ListPackages).Methods("GET")
	api.HandleFunc("/packages/{id}", h.GetPackage).Methods("GET")

	// Booking routes
	api.HandleFunc("/bookings", h.Checkout).Methods("POST")
	api.HandleFunc("/bookings/{id}", h.GetBooking).Methods("GET")
	api.HandleFunc("/bookings/{id}/payment", h.GetPaymentOptions).Methods("GET")
	api.HandleFunc("/bookings/{id}/payment", h.SubmitPayment).Methods("POST")
	api.HandleFunc("/payment-status", h.PaymentStatus).Methods("GET")

	// Concierge
	api.HandleFunc("/concierge/chat", h.Chat).Methods("POST")

	// Admin session
	api.HandleFunc("/admin/login", h.Login).Methods("POST")

	// Admin routes
	adm := api.PathPrefix("/admin").Subrouter()
	adm.Use(h.AdminAuthMiddleware)

	adm.HandleFunc("/packages", h.AdminListPackages).Methods("GET")
	adm.HandleFunc("/packages", h.AdminCreatePackage).Methods("POST")
	adm.HandleFunc("/packages/{id}", h.AdminGetPackage).Methods("GET")
	adm.HandleFunc("/packages/{id}", h.AdminUpdatePackage).Methods("PUT")
	adm.HandleFunc("/packages/{id}", h.AdminDeletePackage).Methods("DELETE")

	adm.HandleFunc("/leads", h.AdminListLeads).Methods("GET")
	adm.HandleFunc("/leads", h.AdminCreateLead).Methods("POST")
	adm.HandleFunc("/leads/{id}", h.AdminGetLead).Methods("GET")
	adm.HandleFunc("/leads/{id}", h.AdminUpdateLead).Methods("PUT")
	adm.HandleFunc("/leads/{id}", h.AdminDeleteLead).Methods("DELETE")

	adm.HandleFunc("/users", h.AdminListUsers).Methods("GET")
	adm.HandleFunc("/users", h.AdminCreateUser).Methods("POST")
	adm.HandleFunc("/users/{id}", h.AdminGetUser).Methods("GET")
	adm.HandleFunc("/users/{id}", h.AdminUpdateUser).Methods("PUT")
	adm.HandleFunc("/users/{id}", h.AdminDeleteUser).Methods("DELETE")

	adm.HandleFunc("/bookings", h.AdminListBookings).Methods("GET")
	adm.HandleFunc("/bookings/{id}/status", h.AdminUpdateBookingStatus).Methods("PUT")
	adm.HandleFunc("/bookings/{id}", h.AdminDeleteBooking).Methods("DELETE")

	adm.HandleFunc("/invoices", h.AdminListInvoices).Methods("GET")
	adm.HandleFunc("/invoices", h.AdminGenerateInvoice).Methods("POST")
	adm.HandleFunc("/invoices/{id}", h.AdminGetInvoice).Methods("GET")
	adm.HandleFunc("/invoices/{id}/pdf", h.AdminInvoicePDF).Methods("GET")
	adm.HandleFunc("/invoices/{id}", h.AdminDeleteInvoice).Methods("DELETE")

	adm.HandleFunc("/settings", h.AdminGetSettings).Methods("GET")
	adm.HandleFunc("/settings", h.AdminSaveSettings).Methods("PUT")
	adm.HandleFunc("/settings/markup", h.AdminSaveMarkup).Methods("PUT")

	adm.HandleFunc("/export", h.AdminExport).Methods("GET")

	return r
}
