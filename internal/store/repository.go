package store

import (
	"context"

	"travel-agency/internal/idgen"
	"travel-agency/internal/models"
)

// BookingIDPrefix is prepended to generated booking ids
const BookingIDPrefix = "BK"

// Repository groups every collection over a single backend. It is built once
// at start-up and handed to the services that need it.
type Repository struct {
	Packages *Collection[models.Package]
	Users    *Collection[models.User]
	Leads    *Collection[models.Lead]
	Bookings *Collection[models.Booking]
	Invoices *Collection[models.Invoice]
	Settings *SettingsStore
}

func NewRepository(blobs Blobs, ids *idgen.Generator) *Repository {
	return &Repository{
		Packages: NewCollection(blobs, KeyPackages, SeedPackages, ids, ""),
		Users:    NewCollection(blobs, KeyUsers, SeedUsers, ids, ""),
		Leads:    NewCollection(blobs, KeyLeads, SeedLeads, ids, ""),
		Bookings: NewCollection[models.Booking](blobs, KeyBookings, nil, ids, BookingIDPrefix),
		Invoices: NewCollection(blobs, KeyInvoices, SeedInvoices, ids, ""),
		Settings: NewSettingsStore(blobs, DefaultSettings),
	}
}

// Export reads every collection and the settings record. Each read is an
// independent snapshot; there is no cross-collection consistency.
func (r *Repository) Export(ctx context.Context) (*models.DatabaseExport, error) {
	packages, err := r.Packages.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	leads, err := r.Leads.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := r.Users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := r.Invoices.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := r.Bookings.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := r.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &models.DatabaseExport{
		Packages: packages,
		Leads:    leads,
		Users:    users,
		Invoices: invoices,
		Bookings: bookings,
		Settings: settings,
	}, nil
}
