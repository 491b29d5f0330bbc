package billing

import (
	"factura/internal/core/apperror"
	"factura/internal/core/types"
)

// FeePercentages is the accepted set of service fee rates.
// Any other value is rejected with INVALID_FEE_PERCENTAGE.
var FeePercentages = []int{5, 10, 15}

// IsValidFeePercentage reports whether pct is in the accepted set.
func IsValidFeePercentage(pct int) bool {
	for _, p := range FeePercentages {
		if p == pct {
			return true
		}
	}
	return false
}

// Totals holds the values derived from an article sequence. All monetary
// fields carry full decimal precision; use Rounded for presentation and for
// the finalization snapshot.
type Totals struct {
	Subtotal      types.Money `json:"subtotal"`
	TotalQuantity int         `json:"totalQuantity"`
	TotalWeight   types.Money `json:"totalWeight"`
	Fees          types.Money `json:"fees"`
	Transport     types.Money `json:"transport"`
	Total         types.Money `json:"total"`
	FeePercentage int         `json:"feePercentage"`
}

// Calculate derives totals from the article sequence, fee percentage and
// transport cost. Pure: same inputs always produce the same Totals.
//
//	subtotal = Σ quantity × unitPrice
//	fees     = subtotal × feePercentage / 100
//	total    = subtotal + fees + transport
func Calculate(articles []Article, feePercentage int, transport types.Money) (Totals, error) {
	if !IsValidFeePercentage(feePercentage) {
		return Totals{}, apperror.NewInvalidFeePercentage(feePercentage, FeePercentages)
	}

	t := Totals{
		Subtotal:      types.Zero(),
		TotalWeight:   types.Zero(),
		Transport:     transport,
		FeePercentage: feePercentage,
	}

	for _, a := range articles {
		t.Subtotal = t.Subtotal.Add(a.Amount())
		t.TotalQuantity += a.Quantity
		// A zero-valued weight contributes nothing; decimals cannot carry NaN.
		t.TotalWeight = t.TotalWeight.Add(a.WeightCbm)
	}

	t.Fees = t.Subtotal.Mul(types.NewMoneyFromInt(int64(feePercentage))).
		Div(types.NewMoneyFromInt(100))
	t.Total = t.Subtotal.Add(t.Fees).Add(t.Transport)

	return t, nil
}

// Rounded returns the two-decimal view used at presentation boundaries and
// when snapshotting an invoice. The total is rebuilt from the rounded fees so
// the stored amounts stay self-consistent:
// total = subtotal + round(fees) + transport.
func (t Totals) Rounded() Totals {
	r := t
	r.Subtotal = t.Subtotal.Round(2)
	r.TotalWeight = t.TotalWeight.Round(2)
	r.Fees = t.Fees.Round(2)
	r.Transport = t.Transport.Round(2)
	r.Total = r.Subtotal.Add(r.Fees).Add(r.Transport)
	return r
}
