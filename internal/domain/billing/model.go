// Package billing provides the invoice composition and lifecycle engine:
// line items, derived totals, draft/invoice transitions, bulk import and
// document assembly for PDF rendering.
package billing

import (
	"context"
	"strings"
	"time"

	"factura/internal/core/apperror"
	"factura/internal/core/types"
)

// Article is one line item on an invoice: product, quantity, price, weight.
// Articles are owned by the containing invoice or draft and have no identity
// beyond their position in the item sequence.
type Article struct {
	Description string      `db:"description" json:"description"`
	ImageURL    string      `db:"image_url" json:"imageUrl,omitempty"`
	Quantity    int         `db:"quantity" json:"quantity"`
	UnitPrice   types.Money `db:"unit_price" json:"unitPrice"`
	WeightCbm   types.Money `db:"weight_cbm" json:"weightCbm"`
	ItemLink    string      `db:"item_link" json:"itemLink,omitempty"`
}

// Validate implements per-article invariants.
func (a *Article) Validate(ctx context.Context) error {
	if a.Quantity < 0 {
		return apperror.NewValidation("quantity must not be negative").
			WithDetail("field", "quantity")
	}
	if a.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price must not be negative").
			WithDetail("field", "unitPrice")
	}
	if a.WeightCbm.IsNegative() {
		return apperror.NewValidation("weight must not be negative").
			WithDetail("field", "weightCbm")
	}
	return nil
}

// Amount returns quantity × unit price for this article.
func (a *Article) Amount() types.Money {
	return a.UnitPrice.Mul(types.NewMoneyFromInt(int64(a.Quantity)))
}

// Draft is a saved, not-yet-finalized invoice-in-progress. Re-editable,
// deletable and convertible into an Invoice. Derived totals are never stored
// on a draft: they are recomputed from the articles on every use.
type Draft struct {
	ID               string      `db:"id" json:"id"`
	ClientName       string      `db:"client_name" json:"clientName"`
	ClientPhone      string      `db:"client_phone" json:"clientPhone,omitempty"`
	ClientAddress    string      `db:"client_address" json:"clientAddress,omitempty"`
	DeliveryLocation string      `db:"delivery_location" json:"deliveryLocation,omitempty"`
	DeliveryMethod   string      `db:"delivery_method" json:"deliveryMethod,omitempty"`
	CreatedBy        string      `db:"created_by" json:"createdBy,omitempty"`
	Articles         []Article   `db:"-" json:"articles"`
	FeePercentage    int         `db:"fee_percentage" json:"feePercentage"`
	Transport        types.Money `db:"transport" json:"transport"`
	CreationDate     time.Time   `db:"creation_date" json:"creationDate"`
	LastModified     time.Time   `db:"last_modified" json:"lastModified"`
}

// Invoice is a finalized, immutable billing record. Amounts are snapshotted
// at creation time and never recomputed afterward; the only permitted change
// is cancellation (removal).
type Invoice struct {
	ID               string      `db:"id" json:"id"`
	ClientName       string      `db:"client_name" json:"clientName"`
	ClientPhone      string      `db:"client_phone" json:"clientPhone,omitempty"`
	ClientAddress    string      `db:"client_address" json:"clientAddress,omitempty"`
	DeliveryLocation string      `db:"delivery_location" json:"deliveryLocation,omitempty"`
	DeliveryMethod   string      `db:"delivery_method" json:"deliveryMethod,omitempty"`
	CreatedBy        string      `db:"created_by" json:"createdBy,omitempty"`
	Articles         []Article   `db:"-" json:"articles"`
	FeePercentage    int         `db:"fee_percentage" json:"feePercentage"`
	Subtotal         types.Money `db:"subtotal" json:"subtotal"`
	Fees             types.Money `db:"fees" json:"fees"`
	Transport        types.Money `db:"transport" json:"transport"`
	Total            types.Money `db:"total" json:"total"`
	CreationDate     time.Time   `db:"creation_date" json:"creationDate"`
}

// validateFinalize checks the preconditions shared by invoice creation and
// draft conversion: a client name and at least one article. Invalid state
// can never become an invoice.
func validateFinalize(clientName string, articleCount int) error {
	if strings.TrimSpace(clientName) == "" {
		return apperror.NewValidation("client name is required").
			WithDetail("field", "clientName")
	}
	if articleCount == 0 {
		return apperror.NewValidation("at least one article is required").
			WithDetail("field", "articles")
	}
	return nil
}

// Validate reports whether the draft may be converted into an invoice.
func (d *Draft) Validate(ctx context.Context) error {
	return validateFinalize(d.ClientName, len(d.Articles))
}
