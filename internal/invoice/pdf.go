package invoice

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"travel-agency/internal/models"

	"github.com/phpdave11/gofpdf"
)

// RenderPDF lays out a printable A4 invoice with the company header
func RenderPDF(inv models.Invoice, settings models.CompanySettings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.InvoiceNumber, false)
	pdf.AddPage()

	// company header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(120, 10, safe(settings.InvoiceCompanyName, settings.BrandName))
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(120, 5, safe(settings.CompanyAddress, "-"), "", "L", false)
	pdf.Cell(0, 5, fmt.Sprintf("Phone: %s  Email: %s", safe(settings.CompanyMobile, "-"), safe(settings.CompanyEmail, "-")))
	pdf.Ln(5)
	if strings.TrimSpace(settings.GSTNumber) != "" {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 5, "GSTIN: "+settings.GSTNumber)
		pdf.Ln(5)
	}
	pdf.Ln(6)

	// invoice meta and bill-to
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(100, 6, "Bill To:")
	pdf.CellFormat(0, 6, "Invoice No: "+safe(inv.InvoiceNumber, "-"), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(100, 6, safe(inv.CustomerName, "-"))
	pdf.CellFormat(0, 6, "Date: "+safe(inv.Date, "-"), "", 1, "R", false, 0, "")
	pdf.Cell(100, 6, safe(inv.CustomerEmail, "-"))
	pdf.CellFormat(0, 6, "Due Date: "+safe(inv.DueDate, "-"), "", 1, "R", false, 0, "")
	pdf.Cell(100, 6, safe(inv.CustomerMobile, "-"))
	pdf.CellFormat(0, 6, "Status: "+safe(inv.Status, models.InvoiceUnpaid), "", 1, "R", false, 0, "")
	if strings.TrimSpace(inv.CustomerAddress) != "" {
		pdf.MultiCell(100, 6, inv.CustomerAddress, "", "L", false)
	}
	pdf.Ln(6)

	// items
	widths := []float64{90, 25, 35, 40}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range []string{"Description", "Qty", "Unit Price", "Total"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 8, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, item := range inv.Items {
		pdf.CellFormat(widths[0], 8, safe(item.Description, "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, formatQuantity(item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 8, formatINR(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, formatINR(item.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	// totals
	labelWidth := widths[0] + widths[1] + widths[2]
	rows := []struct {
		label string
		value float64
	}{
		{"Subtotal", inv.Subtotal},
		{"Tax", inv.Tax},
		{"Discount", -inv.Discount},
	}
	for _, r := range rows {
		pdf.CellFormat(labelWidth, 7, r.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, formatINR(r.value), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(labelWidth, 9, "Grand Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 9, formatINR(inv.GrandTotal), "T", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "This is a computer generated invoice from "+safe(settings.BrandName, "us")+".", "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

// formatINR renders an amount with thousands separators and two decimals
func formatINR(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	cents := int64(math.Round(v * 100))
	whole := fmt.Sprintf("%d", cents/100)

	var out []byte
	n := len(whole)
	for i := 0; i < n; i++ {
		out = append(out, whole[i])
		pos := n - i - 1
		if pos > 0 && pos%3 == 0 {
			out = append(out, ',')
		}
	}
	return fmt.Sprintf("%sINR %s.%02d", sign, string(out), cents%100)
}

func formatQuantity(q float64) string {
	if q == math.Trunc(q) {
		return fmt.Sprintf("%d", int64(q))
	}
	return fmt.Sprintf("%.2f", q)
}

// FileName is the download name of an invoice pdf
func FileName(inv models.Invoice) string {
	name := safe(inv.InvoiceNumber, inv.ID)
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_")
	return replacer.Replace(name) + ".pdf"
}
