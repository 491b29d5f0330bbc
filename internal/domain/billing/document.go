package billing

import (
	"time"

	"factura/internal/core/types"
)

// Issuer identifies the company issuing the invoice. Printed in the document
// header.
type Issuer struct {
	Name    string
	Phone   string
	Address string
}

// Document is the render-ready structure handed to the PDF collaborator.
// The renderer depends only on this tree, never on domain entities.
type Document struct {
	Header DocumentHeader
	Client ClientBlock
	Rows   []DocumentRow
	Totals TotalsBlock
}

// DocumentHeader carries issuer identity and document identity.
type DocumentHeader struct {
	Title  string
	Issuer Issuer
	Number string
	Date   time.Time
}

// ClientBlock carries the client and delivery info snapshot.
type ClientBlock struct {
	Name             string
	Phone            string
	Address          string
	DeliveryLocation string
	DeliveryMethod   string
	CreatedBy        string
}

// DocumentRow is one line of the article table.
type DocumentRow struct {
	No          int
	ImageRef    string
	Quantity    int
	Description string
	UnitPrice   types.Money
	WeightCbm   types.Money
	Amount      types.Money
	ItemLink    string
}

// TotalsBlock carries the invoice-level amounts.
type TotalsBlock struct {
	Subtotal      types.Money
	FeePercentage int
	Fees          types.Money
	Transport     types.Money
	Total         types.Money
}

// AssembleDocument builds the render-ready document for a finalized invoice.
// Each row's line amount is recomputed as quantity × unit price rather than
// trusting a possibly stale stored field, but the invoice-level totals are
// reported exactly as stored at finalization time: they are historically
// authoritative.
func AssembleDocument(inv Invoice, issuer Issuer) Document {
	return Document{
		Header: DocumentHeader{
			Title:  "FACTURE",
			Issuer: issuer,
			Number: inv.ID,
			Date:   inv.CreationDate,
		},
		Client: ClientBlock{
			Name:             inv.ClientName,
			Phone:            inv.ClientPhone,
			Address:          inv.ClientAddress,
			DeliveryLocation: inv.DeliveryLocation,
			DeliveryMethod:   inv.DeliveryMethod,
			CreatedBy:        inv.CreatedBy,
		},
		Rows: assembleRows(inv.Articles),
		Totals: TotalsBlock{
			Subtotal:      inv.Subtotal,
			FeePercentage: inv.FeePercentage,
			Fees:          inv.Fees,
			Transport:     inv.Transport,
			Total:         inv.Total,
		},
	}
}

// AssemblePreview builds a proforma document from un-persisted working
// state. Totals are freshly derived and rounded for display.
func AssemblePreview(ws *Worksheet, issuer Issuer, now time.Time) Document {
	t := ws.Totals().Rounded()
	return Document{
		Header: DocumentHeader{
			Title:  "FACTURE PROFORMA",
			Issuer: issuer,
			Date:   now,
		},
		Client: ClientBlock{
			Name:             ws.ClientName,
			Phone:            ws.ClientPhone,
			Address:          ws.ClientAddress,
			DeliveryLocation: ws.DeliveryLocation,
			DeliveryMethod:   ws.DeliveryMethod,
			CreatedBy:        ws.CreatedBy,
		},
		Rows: assembleRows(ws.Articles()),
		Totals: TotalsBlock{
			Subtotal:      t.Subtotal,
			FeePercentage: t.FeePercentage,
			Fees:          t.Fees,
			Transport:     t.Transport,
			Total:         t.Total,
		},
	}
}

func assembleRows(articles []Article) []DocumentRow {
	rows := make([]DocumentRow, len(articles))
	for i, a := range articles {
		rows[i] = DocumentRow{
			No:          i + 1,
			ImageRef:    a.ImageURL,
			Quantity:    a.Quantity,
			Description: a.Description,
			UnitPrice:   a.UnitPrice,
			WeightCbm:   a.WeightCbm,
			Amount:      a.Amount(),
			ItemLink:    a.ItemLink,
		}
	}
	return rows
}
