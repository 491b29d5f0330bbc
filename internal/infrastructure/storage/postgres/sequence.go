package postgres

import (
	"context"
	"fmt"

	"factura/internal/domain/billing"
)

// Compile-time check that Sequence implements the numbering port.
var _ billing.Numerator = (*Sequence)(nil)

// invoiceSequenceKey identifies the invoice counter row in sys_sequences.
const invoiceSequenceKey = "invoice"

// Sequence issues invoice numbers from a persisted row counter. The upsert
// increments and returns in one statement, so the counter is strictly
// monotonic under concurrent finalization: two invoices can never share a
// number, and cancelled numbers are never reissued.
type Sequence struct {
	txManager *TxManager
}

// NewSequence creates a database-backed invoice numerator.
func NewSequence(txManager *TxManager) *Sequence {
	return &Sequence{txManager: txManager}
}

// NextInvoiceNumber reserves and returns the next invoice number.
func (s *Sequence) NextInvoiceNumber(ctx context.Context) (int64, error) {
	const sql = `
		INSERT INTO sys_sequences (key, current_val, updated_at)
		VALUES ($1, 1, now())
		ON CONFLICT (key) DO UPDATE
		SET current_val = sys_sequences.current_val + 1,
		    updated_at  = now()
		RETURNING current_val
	`

	var n int64
	if err := s.txManager.GetQuerier(ctx).QueryRow(ctx, sql, invoiceSequenceKey).Scan(&n); err != nil {
		return 0, fmt.Errorf("next value for %q: %w", invoiceSequenceKey, err)
	}
	return n, nil
}
