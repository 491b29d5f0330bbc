package dto

import (
	"context"
	"time"

	"factura/internal/core/types"
	"factura/internal/domain/billing"
)

// --- Articles ---

// ArticleRequest is one invoice line in a request body. Amounts accept JSON
// numbers or strings; strings survive round-trips without float damage.
type ArticleRequest struct {
	Description string      `json:"description" binding:"required"`
	ImageURL    string      `json:"imageUrl"`
	Quantity    int         `json:"quantity" binding:"required,min=1"`
	UnitPrice   types.Money `json:"unitPrice"`
	WeightCbm   types.Money `json:"weightCbm"`
	ItemLink    string      `json:"itemLink"`
}

// ToArticle converts the request line to a domain article.
func (r ArticleRequest) ToArticle() billing.Article {
	return billing.Article{
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		WeightCbm:   r.WeightCbm,
		ItemLink:    r.ItemLink,
	}
}

// ArticleResponse is one invoice line in a response body.
type ArticleResponse struct {
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	WeightCbm   string `json:"weightCbm"`
	Amount      string `json:"amount"`
	ItemLink    string `json:"itemLink,omitempty"`
}

// FromArticle creates ArticleResponse from a domain article.
func FromArticle(a billing.Article) ArticleResponse {
	return ArticleResponse{
		Description: a.Description,
		ImageURL:    a.ImageURL,
		Quantity:    a.Quantity,
		UnitPrice:   a.UnitPrice.StringFixed(2),
		WeightCbm:   a.WeightCbm.StringFixed(2),
		Amount:      a.Amount().StringFixed(2),
		ItemLink:    a.ItemLink,
	}
}

func fromArticles(articles []billing.Article) []ArticleResponse {
	out := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		out[i] = FromArticle(a)
	}
	return out
}

// --- Worksheet ---

// WorksheetRequest is the full working state sent by the client for preview,
// draft save and invoice creation.
type WorksheetRequest struct {
	DraftID          string           `json:"draftId"`
	ClientName       string           `json:"clientName"`
	ClientPhone      string           `json:"clientPhone"`
	ClientAddress    string           `json:"clientAddress"`
	DeliveryLocation string           `json:"deliveryLocation"`
	DeliveryMethod   string           `json:"deliveryMethod"`
	Articles         []ArticleRequest `json:"articles"`
	FeePercentage    int              `json:"feePercentage"`
	Transport        types.Money      `json:"transport"`
}

// ToWorksheet rebuilds the domain worksheet from the request.
func (r WorksheetRequest) ToWorksheet(ctx context.Context) (*billing.Worksheet, error) {
	ws := billing.NewWorksheet()
	ws.DraftID = r.DraftID
	ws.ClientName = r.ClientName
	ws.ClientPhone = r.ClientPhone
	ws.ClientAddress = r.ClientAddress
	ws.DeliveryLocation = r.DeliveryLocation
	ws.DeliveryMethod = r.DeliveryMethod

	if r.FeePercentage != 0 {
		if _, err := ws.SetFeePercentage(r.FeePercentage); err != nil {
			return nil, err
		}
	}
	if _, err := ws.SetTransport(r.Transport); err != nil {
		return nil, err
	}

	articles := make([]billing.Article, len(r.Articles))
	for i, a := range r.Articles {
		articles[i] = a.ToArticle()
	}
	if _, err := ws.ReplaceItems(ctx, articles); err != nil {
		return nil, err
	}

	return ws, nil
}

// TotalsResponse reports derived amounts.
type TotalsResponse struct {
	Subtotal      string `json:"subtotal"`
	TotalQuantity int    `json:"totalQuantity"`
	TotalWeight   string `json:"totalWeight"`
	FeePercentage int    `json:"feePercentage"`
	Fees          string `json:"fees"`
	Transport     string `json:"transport"`
	Total         string `json:"total"`
}

// FromTotals creates TotalsResponse from rounded totals.
func FromTotals(t billing.Totals) TotalsResponse {
	r := t.Rounded()
	return TotalsResponse{
		Subtotal:      r.Subtotal.StringFixed(2),
		TotalQuantity: r.TotalQuantity,
		TotalWeight:   r.TotalWeight.StringFixed(2),
		FeePercentage: r.FeePercentage,
		Fees:          r.Fees.StringFixed(2),
		Transport:     r.Transport.StringFixed(2),
		Total:         r.Total.StringFixed(2),
	}
}

// --- Drafts ---

// DraftResponse is a saved draft.
type DraftResponse struct {
	ID               string            `json:"id"`
	ClientName       string            `json:"clientName"`
	ClientPhone      string            `json:"clientPhone,omitempty"`
	ClientAddress    string            `json:"clientAddress,omitempty"`
	DeliveryLocation string            `json:"deliveryLocation,omitempty"`
	DeliveryMethod   string            `json:"deliveryMethod,omitempty"`
	CreatedBy        string            `json:"createdBy,omitempty"`
	Articles         []ArticleResponse `json:"articles"`
	FeePercentage    int               `json:"feePercentage"`
	Transport        string            `json:"transport"`
	Totals           TotalsResponse    `json:"totals"`
	CreationDate     time.Time         `json:"creationDate"`
	LastModified     time.Time         `json:"lastModified"`
}

// FromDraft creates DraftResponse from a domain draft. Totals are derived on
// the fly; drafts never store them.
func FromDraft(d billing.Draft) DraftResponse {
	totals, err := billing.Calculate(d.Articles, d.FeePercentage, d.Transport)
	if err != nil {
		// A persisted draft can only hold an accepted fee value.
		totals = billing.Totals{FeePercentage: d.FeePercentage}
	}
	return DraftResponse{
		ID:               d.ID,
		ClientName:       d.ClientName,
		ClientPhone:      d.ClientPhone,
		ClientAddress:    d.ClientAddress,
		DeliveryLocation: d.DeliveryLocation,
		DeliveryMethod:   d.DeliveryMethod,
		CreatedBy:        d.CreatedBy,
		Articles:         fromArticles(d.Articles),
		FeePercentage:    d.FeePercentage,
		Transport:        d.Transport.StringFixed(2),
		Totals:           FromTotals(totals),
		CreationDate:     d.CreationDate,
		LastModified:     d.LastModified,
	}
}

// FromDrafts converts a draft collection.
func FromDrafts(drafts []billing.Draft) []DraftResponse {
	out := make([]DraftResponse, len(drafts))
	for i, d := range drafts {
		out[i] = FromDraft(d)
	}
	return out
}

// --- Invoices ---

// InvoiceResponse is a finalized invoice. Amounts are the values frozen at
// finalization, not recomputed.
type InvoiceResponse struct {
	ID               string            `json:"id"`
	ClientName       string            `json:"clientName"`
	ClientPhone      string            `json:"clientPhone,omitempty"`
	ClientAddress    string            `json:"clientAddress,omitempty"`
	DeliveryLocation string            `json:"deliveryLocation,omitempty"`
	DeliveryMethod   string            `json:"deliveryMethod,omitempty"`
	CreatedBy        string            `json:"createdBy,omitempty"`
	Articles         []ArticleResponse `json:"articles"`
	FeePercentage    int               `json:"feePercentage"`
	Subtotal         string            `json:"subtotal"`
	Fees             string            `json:"fees"`
	Transport        string            `json:"transport"`
	Total            string            `json:"total"`
	CreationDate     time.Time         `json:"creationDate"`
}

// FromInvoice creates InvoiceResponse from a domain invoice.
func FromInvoice(inv billing.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:               inv.ID,
		ClientName:       inv.ClientName,
		ClientPhone:      inv.ClientPhone,
		ClientAddress:    inv.ClientAddress,
		DeliveryLocation: inv.DeliveryLocation,
		DeliveryMethod:   inv.DeliveryMethod,
		CreatedBy:        inv.CreatedBy,
		Articles:         fromArticles(inv.Articles),
		FeePercentage:    inv.FeePercentage,
		Subtotal:         inv.Subtotal.StringFixed(2),
		Fees:             inv.Fees.StringFixed(2),
		Transport:        inv.Transport.StringFixed(2),
		Total:            inv.Total.StringFixed(2),
		CreationDate:     inv.CreationDate,
	}
}

// FromInvoices converts an invoice collection.
func FromInvoices(invoices []billing.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		out[i] = FromInvoice(inv)
	}
	return out
}

// --- Import ---

// ImportResponse reports the outcome of a spreadsheet import.
type ImportResponse struct {
	Articles []ArticleResponse `json:"articles"`
	Totals   TotalsResponse    `json:"totals"`
}
