package invoice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"travel-agency/internal/idgen"
	"travel-agency/internal/models"
	"travel-agency/internal/store"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("invoice not found")

// Input is the invoice form. Totals supplied by the caller are ignored.
type Input struct {
	InvoiceNumber   string               `json:"invoiceNumber"`
	Date            string               `json:"date"`
	DueDate         string               `json:"dueDate"`
	CustomerName    string               `json:"customerName"`
	CustomerEmail   string               `json:"customerEmail"`
	CustomerMobile  string               `json:"customerMobile"`
	CustomerAddress string               `json:"customerAddress"`
	Items           []models.InvoiceItem `json:"items"`
	Tax             float64              `json:"tax"`
	Discount        float64              `json:"discount"`
	Status          string               `json:"status"`
}

// LineTotal is quantity times unit price
func LineTotal(quantity, unitPrice float64) float64 {
	return quantity * unitPrice
}

// Totals recomputes every item total in place and returns the subtotal and
// grand total. Tax and discount are flat amounts; a negative grand total is
// allowed.
func Totals(items []models.InvoiceItem, tax, discount float64) (subtotal, grandTotal float64) {
	for i := range items {
		items[i].Total = LineTotal(items[i].Quantity, items[i].UnitPrice)
		subtotal += items[i].Total
	}
	return subtotal, subtotal + tax - discount
}

type Service struct {
	invoices *store.Collection[models.Invoice]
	ids      *idgen.Generator
	now      func() time.Time
}

func NewService(invoices *store.Collection[models.Invoice], ids *idgen.Generator) *Service {
	return &Service{invoices: invoices, ids: ids, now: time.Now}
}

// WithClock overrides the clock used for default dates and numbers
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Generate computes the totals and stores a new invoice
func (s *Service) Generate(ctx context.Context, in Input) (*models.Invoice, error) {
	now := s.now()
	today := now.Format(models.DateLayout)

	items := make([]models.InvoiceItem, len(in.Items))
	copy(items, in.Items)
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
	}
	subtotal, grand := Totals(items, in.Tax, in.Discount)

	inv := models.Invoice{
		InvoiceNumber:   strings.TrimSpace(in.InvoiceNumber),
		Date:            in.Date,
		DueDate:         in.DueDate,
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerMobile:  in.CustomerMobile,
		CustomerAddress: in.CustomerAddress,
		Items:           items,
		Subtotal:        subtotal,
		Tax:             in.Tax,
		Discount:        in.Discount,
		GrandTotal:      grand,
		Status:          in.Status,
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = s.nextNumber()
	}
	if inv.Date == "" {
		inv.Date = today
	}
	if inv.DueDate == "" {
		inv.DueDate = today
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceUnpaid
	}

	stored, err := s.invoices.Add(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	log.Printf("Invoice %s generated for %s (total %.2f)", stored.InvoiceNumber, stored.CustomerName, stored.GrandTotal)
	return &stored, nil
}

// nextNumber is INV- followed by the last four digits of the millisecond clock
func (s *Service) nextNumber() string {
	ms := fmt.Sprintf("%04d", s.ids.Next())
	return "INV-" + ms[len(ms)-4:]
}

func (s *Service) List(ctx context.Context) ([]models.Invoice, error) {
	return s.invoices.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Invoice, error) {
	inv, found, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &inv, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.invoices.Delete(ctx, id)
}
