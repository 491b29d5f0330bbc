// Package pdf renders billing documents to PDF.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"factura/internal/core/types"
	"factura/internal/domain/billing"
)

// Column widths in mm for the article table (A4 portrait, 190mm usable).
var colWidths = [7]float64{10, 14, 76, 24, 16, 25, 25}

var colTitles = [7]string{"No", "Qty", "Description", "Unit Price", "CBM", "Amount", "Link"}

// Renderer produces A4 invoice documents.
type Renderer struct {
	currency string
}

// NewRenderer creates a renderer. The currency code is printed next to every
// amount.
func NewRenderer(currency string) *Renderer {
	if currency == "" {
		currency = "USD"
	}
	return &Renderer{currency: currency}
}

// Render draws the document and returns the PDF bytes.
func (r *Renderer) Render(doc billing.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	r.drawHeader(pdf, doc.Header)
	r.drawClient(pdf, doc.Client)
	r.drawTable(pdf, doc.Rows)
	r.drawTotals(pdf, doc.Totals)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) amount(m types.Money) string {
	return m.StringFixed(2) + " " + r.currency
}

func (r *Renderer) drawHeader(pdf *gofpdf.Fpdf, h billing.DocumentHeader) {
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(120, 9, h.Issuer.Name, "", 0, "L", false, 0, "")
	pdf.CellFormat(70, 9, h.Title, "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(120, 5, h.Issuer.Address, "", 0, "L", false, 0, "")
	if h.Number != "" {
		pdf.CellFormat(70, 5, "No "+h.Number, "", 1, "R", false, 0, "")
	} else {
		pdf.CellFormat(70, 5, "", "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(120, 5, h.Issuer.Phone, "", 0, "L", false, 0, "")
	pdf.CellFormat(70, 5, h.Date.Format("02/01/2006"), "", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (r *Renderer) drawClient(pdf *gofpdf.Fpdf, c billing.ClientBlock) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(190, 6, "Client", "B", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	line := func(label, value string) {
		if value == "" {
			return
		}
		pdf.CellFormat(35, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(155, 5, value, "", 1, "L", false, 0, "")
	}
	line("Name", c.Name)
	line("Phone", c.Phone)
	line("Address", c.Address)
	line("Delivery location", c.DeliveryLocation)
	line("Delivery method", c.DeliveryMethod)
	line("Prepared by", c.CreatedBy)
	pdf.Ln(4)
}

func (r *Renderer) drawTable(pdf *gofpdf.Fpdf, rows []billing.DocumentRow) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range colTitles {
		pdf.CellFormat(colWidths[i], 7, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range rows {
		link := row.ItemLink
		if len(link) > 18 {
			link = link[:15] + "..."
		}
		desc := row.Description
		if len(desc) > 52 {
			desc = desc[:49] + "..."
		}
		cells := [7]string{
			fmt.Sprintf("%d", row.No),
			fmt.Sprintf("%d", row.Quantity),
			desc,
			row.UnitPrice.StringFixed(2),
			row.WeightCbm.StringFixed(2),
			row.Amount.StringFixed(2),
			link,
		}
		aligns := [7]string{"C", "C", "L", "R", "R", "R", "L"}
		for i, cell := range cells {
			pdf.CellFormat(colWidths[i], 6, cell, "1", 0, aligns[i], false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func (r *Renderer) drawTotals(pdf *gofpdf.Fpdf, t billing.TotalsBlock) {
	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 9)
		pdf.CellFormat(115, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, value, "", 1, "R", false, 0, "")
	}
	row("Subtotal", r.amount(t.Subtotal), false)
	row(fmt.Sprintf("Fees (%d%%)", t.FeePercentage), r.amount(t.Fees), false)
	row("Transport", r.amount(t.Transport), false)
	row("TOTAL", r.amount(t.Total), true)
}
