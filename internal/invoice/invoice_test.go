package invoice

import (
	"bytes"
	"context"
	"testing"
	"time"

	"travel-agency/internal/idgen"
	"travel-agency/internal/models"
	"travel-agency/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	clock := func() time.Time { return time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC) }
	ids := idgen.NewWithClock(func() time.Time { return time.UnixMilli(1706781601234) })
	repo := store.NewRepository(store.NewMemoryBlobs(), ids)
	return NewService(repo.Invoices, ids).WithClock(clock)
}

func TestTotals(t *testing.T) {
	items := []models.InvoiceItem{
		{Description: "Hotel", Quantity: 2, UnitPrice: 100, Total: 999},
		{Description: "Transfer", Quantity: 1, UnitPrice: 50},
	}

	subtotal, grand := Totals(items, 10, 5)
	assert.Equal(t, 250.0, subtotal)
	assert.Equal(t, 255.0, grand)
	assert.Equal(t, 200.0, items[0].Total, "stale totals are recomputed")
	assert.Equal(t, 50.0, items[1].Total)
}

func TestTotals_EdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		items     []models.InvoiceItem
		tax       float64
		discount  float64
		wantSub   float64
		wantGrand float64
	}{
		{name: "no items", items: nil, tax: 0, discount: 0, wantSub: 0, wantGrand: 0},
		{name: "discount exceeds subtotal", items: []models.InvoiceItem{{Quantity: 1, UnitPrice: 100}}, tax: 0, discount: 150, wantSub: 100, wantGrand: -50},
		{name: "zero quantity", items: []models.InvoiceItem{{Quantity: 0, UnitPrice: 500}}, tax: 18, discount: 0, wantSub: 0, wantGrand: 18},
		{name: "fractional quantity", items: []models.InvoiceItem{{Quantity: 1.5, UnitPrice: 200}}, tax: 0, discount: 0, wantSub: 300, wantGrand: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, grand := Totals(tt.items, tt.tax, tt.discount)
			assert.Equal(t, tt.wantSub, sub)
			assert.Equal(t, tt.wantGrand, grand)
		})
	}
}

func TestService_Generate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	inv, err := s.Generate(ctx, Input{
		CustomerName:  "Rahul Sharma",
		CustomerEmail: "rahul@test.com",
		Items: []models.InvoiceItem{
			{Description: "Dubai package", Quantity: 2, UnitPrice: 100},
			{Description: "Visa", Quantity: 1, UnitPrice: 50},
		},
		Tax:      10,
		Discount: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-1234", inv.InvoiceNumber)
	assert.Equal(t, "2024-02-01", inv.Date)
	assert.Equal(t, "2024-02-01", inv.DueDate)
	assert.Equal(t, models.InvoiceUnpaid, inv.Status)
	assert.Equal(t, 250.0, inv.Subtotal)
	assert.Equal(t, 255.0, inv.GrandTotal)
	assert.NotEmpty(t, inv.ID)
	for _, item := range inv.Items {
		assert.NotEmpty(t, item.ID)
	}

	got, err := s.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv, got)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "seed invoice plus the new one")

	require.NoError(t, s.Delete(ctx, inv.ID))
	_, err = s.Get(ctx, inv.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_GenerateKeepsProvidedFields(t *testing.T) {
	s := newTestService(t)

	inv, err := s.Generate(context.Background(), Input{
		InvoiceNumber: "INV-777",
		Date:          "2024-01-05",
		DueDate:       "2024-01-20",
		Status:        models.InvoicePaid,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-777", inv.InvoiceNumber)
	assert.Equal(t, "2024-01-05", inv.Date)
	assert.Equal(t, "2024-01-20", inv.DueDate)
	assert.Equal(t, models.InvoicePaid, inv.Status)
	assert.NotNil(t, inv.Items)
}

func TestRenderPDF(t *testing.T) {
	inv := store.SeedInvoices[0]
	inv.CustomerAddress = "Road No 2, Banjara Hills"

	data, err := RenderPDF(inv, store.DefaultSettings)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, "INV-001.pdf", FileName(inv))
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "INR 21,000.00", formatINR(21000))
	assert.Equal(t, "INR 0.50", formatINR(0.5))
	assert.Equal(t, "INR 1,234,567.89", formatINR(1234567.89))
	assert.Equal(t, "-INR 50.00", formatINR(-50))
}
