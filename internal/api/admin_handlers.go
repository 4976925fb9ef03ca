package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"travel-agency/internal/admin"
	"travel-agency/internal/invoice"
	"travel-agency/internal/models"

	"github.com/gorilla/mux"
)

// Packages

func (h *Handler) AdminListPackages(w http.ResponseWriter, r *http.Request) {
	h.ListPackages(w, r)
}

func (h *Handler) AdminGetPackage(w http.ResponseWriter, r *http.Request) {
	h.GetPackage(w, r)
}

func (h *Handler) AdminCreatePackage(w http.ResponseWriter, r *http.Request) {
	var in admin.PackageInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	p, err := h.packages.Create(r.Context(), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *Handler) AdminUpdatePackage(w http.ResponseWriter, r *http.Request) {
	var in admin.PackageInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	p, err := h.packages.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handler) AdminDeletePackage(w http.ResponseWriter, r *http.Request) {
	if err := h.packages.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Leads

func (h *Handler) AdminListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leads.List(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, leads)
}

func (h *Handler) AdminGetLead(w http.ResponseWriter, r *http.Request) {
	l, err := h.leads.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (h *Handler) AdminCreateLead(w http.ResponseWriter, r *http.Request) {
	var in admin.LeadInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	l, err := h.leads.Create(r.Context(), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, l)
}

func (h *Handler) AdminUpdateLead(w http.ResponseWriter, r *http.Request) {
	var in admin.LeadInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	l, err := h.leads.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

func (h *Handler) AdminDeleteLead(w http.ResponseWriter, r *http.Request) {
	if err := h.leads.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Users

func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *Handler) AdminGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (h *Handler) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var in admin.UserInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	u, err := h.users.Create(r.Context(), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, u)
}

func (h *Handler) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	var in admin.UserInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	u, err := h.users.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (h *Handler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Bookings

func (h *Handler) AdminListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.List(r.Context())
	if err != nil {
		respondBookingError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bookings)
}

// AdminUpdateBookingStatus is the manual status override
func (h *Handler) AdminUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	b, err := h.bookings.SetStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		respondBookingError(w, err)
		return
	}

	log.Printf("[%s] booking %s set to %s by %s", RequestID(r.Context()), b.ID, b.Status, adminSubject(r))
	respondJSON(w, http.StatusOK, b)
}

func (h *Handler) AdminDeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.bookings.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondBookingError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Invoices

func (h *Handler) AdminListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoices.List(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, invoices)
}

func (h *Handler) AdminGenerateInvoice(w http.ResponseWriter, r *http.Request) {
	var in invoice.Input
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	inv, err := h.invoices.Generate(r.Context(), in)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, inv)
}

func (h *Handler) AdminGetInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoices.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

// AdminInvoicePDF renders the printable invoice with the current company settings
func (h *Handler) AdminInvoicePDF(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoices.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pdf, err := invoice.RenderPDF(*inv, settings)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.FileName(*inv)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Failed to write invoice pdf: %v", err)
	}
}

func (h *Handler) AdminDeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.invoices.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Settings

func (h *Handler) AdminGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (h *Handler) AdminSaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.CompanySettings
	if err := decodeJSON(r, &settings); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if err := h.settings.Save(r.Context(), settings); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// AdminSaveMarkup replaces only the markup block of the settings
func (h *Handler) AdminSaveMarkup(w http.ResponseWriter, r *http.Request) {
	var markup models.MarkupConfig
	if err := decodeJSON(r, &markup); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	settings, err := h.settings.SaveMarkup(r.Context(), markup)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// AdminExport downloads every collection as one JSON document
func (h *Handler) AdminExport(w http.ResponseWriter, r *http.Request) {
	export, err := h.exporter.Export(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := fmt.Sprintf("hamsika_backup_%s.json", h.now().Format(models.DateLayout))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("Failed to write export: %v", err)
	}
}

func adminSubject(r *http.Request) string {
	subject, _ := r.Context().Value(subjectKey).(string)
	return subject
}
