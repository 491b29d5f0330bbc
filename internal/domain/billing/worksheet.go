package billing

import (
	"context"
	"time"

	"factura/internal/core/apperror"
	"factura/internal/core/types"
)

// Worksheet is the in-progress invoice being edited: a client snapshot,
// delivery details and the ordered line item sequence. Every mutation
// recomputes the derived totals synchronously, so Totals never returns a
// stale value.
//
// A Worksheet is not safe for concurrent use; the interaction model is one
// editor per record.
type Worksheet struct {
	// DraftID is set when the worksheet was opened from a saved draft, so a
	// subsequent save updates that draft instead of creating a new one.
	DraftID      string
	CreationDate time.Time

	ClientName       string
	ClientPhone      string
	ClientAddress    string
	DeliveryLocation string
	DeliveryMethod   string
	CreatedBy        string

	articles      []Article
	feePercentage int
	transport     types.Money
	totals        Totals
}

// NewWorksheet returns an empty worksheet with the lowest accepted fee rate
// and zero transport.
func NewWorksheet() *Worksheet {
	w := &Worksheet{
		feePercentage: FeePercentages[0],
		transport:     types.Zero(),
	}
	w.recompute()
	return w
}

// recompute refreshes the derived totals from the current state.
// The stored fee percentage is validated before it is ever assigned, so a
// calculation failure here is a programming error.
func (w *Worksheet) recompute() Totals {
	t, err := Calculate(w.articles, w.feePercentage, w.transport)
	if err != nil {
		panic(err)
	}
	w.totals = t
	return t
}

// Totals returns the current derived totals. They are freshly derived after
// every mutation; callers must not cache them across mutations.
func (w *Worksheet) Totals() Totals {
	return w.totals
}

// Articles returns a copy of the current item sequence.
func (w *Worksheet) Articles() []Article {
	out := make([]Article, len(w.articles))
	copy(out, w.articles)
	return out
}

// FeePercentage returns the current fee rate.
func (w *Worksheet) FeePercentage() int { return w.feePercentage }

// Transport returns the current transport cost.
func (w *Worksheet) Transport() types.Money { return w.transport }

// AddItem appends an article to the end of the sequence.
// Duplicate content is allowed.
func (w *Worksheet) AddItem(ctx context.Context, a Article) (Totals, error) {
	if err := a.Validate(ctx); err != nil {
		return w.totals, err
	}
	w.articles = append(w.articles, a)
	return w.recompute(), nil
}

// UpdateItem replaces the article at index.
func (w *Worksheet) UpdateItem(ctx context.Context, index int, a Article) (Totals, error) {
	if index < 0 || index >= len(w.articles) {
		return w.totals, apperror.NewIndexOutOfRange(index, len(w.articles))
	}
	if err := a.Validate(ctx); err != nil {
		return w.totals, err
	}
	w.articles[index] = a
	return w.recompute(), nil
}

// DeleteItem removes the article at index, shifting subsequent items down.
func (w *Worksheet) DeleteItem(index int) (Totals, error) {
	if index < 0 || index >= len(w.articles) {
		return w.totals, apperror.NewIndexOutOfRange(index, len(w.articles))
	}
	w.articles = append(w.articles[:index], w.articles[index+1:]...)
	return w.recompute(), nil
}

// ClearItems empties the sequence unconditionally. Confirmation prompts are
// a UI concern, not this layer's.
func (w *Worksheet) ClearItems() Totals {
	w.articles = w.articles[:0]
	return w.recompute()
}

// ReplaceItems swaps the whole item sequence. Used by bulk import; this is a
// destructive replace, not a merge.
func (w *Worksheet) ReplaceItems(ctx context.Context, items []Article) (Totals, error) {
	for i := range items {
		if err := items[i].Validate(ctx); err != nil {
			return w.totals, err
		}
	}
	w.articles = make([]Article, len(items))
	copy(w.articles, items)
	return w.recompute(), nil
}

// ImportRows parses externally tabulated rows and replaces the item sequence
// with the result. The whole import aborts on the first malformed row and the
// previous items stay untouched.
func (w *Worksheet) ImportRows(ctx context.Context, rows [][]string) (Totals, error) {
	items, err := ArticlesFromRows(rows)
	if err != nil {
		return w.totals, err
	}
	return w.ReplaceItems(ctx, items)
}

// SetFeePercentage switches the fee rate. An unrecognized value is rejected
// and the prior valid totals remain in effect.
func (w *Worksheet) SetFeePercentage(pct int) (Totals, error) {
	if !IsValidFeePercentage(pct) {
		return w.totals, apperror.NewInvalidFeePercentage(pct, FeePercentages)
	}
	w.feePercentage = pct
	return w.recompute(), nil
}

// SetTransport updates the flat transport cost.
func (w *Worksheet) SetTransport(m types.Money) (Totals, error) {
	if m.IsNegative() {
		return w.totals, apperror.NewValidation("transport must not be negative").
			WithDetail("field", "transport")
	}
	w.transport = m
	return w.recompute(), nil
}

// Validate reports whether the worksheet may be finalized into an invoice.
func (w *Worksheet) Validate(ctx context.Context) error {
	return validateFinalize(w.ClientName, len(w.articles))
}

// WorksheetFromDraft rebuilds the working state of a saved draft.
// The returned worksheet is flagged as editing that draft.
func WorksheetFromDraft(d Draft) *Worksheet {
	w := NewWorksheet()
	w.DraftID = d.ID
	w.CreationDate = d.CreationDate
	w.ClientName = d.ClientName
	w.ClientPhone = d.ClientPhone
	w.ClientAddress = d.ClientAddress
	w.DeliveryLocation = d.DeliveryLocation
	w.DeliveryMethod = d.DeliveryMethod
	w.CreatedBy = d.CreatedBy
	if IsValidFeePercentage(d.FeePercentage) {
		w.feePercentage = d.FeePercentage
	}
	if !d.Transport.IsNegative() {
		w.transport = d.Transport
	}
	w.articles = make([]Article, len(d.Articles))
	copy(w.articles, d.Articles)
	w.recompute()
	return w
}
