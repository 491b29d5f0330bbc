package billing

import (
	"context"

	"factura/internal/domain/clients"
)

// Store is the persistence port for the lifecycle manager. Its only surface
// is whole-collection get/set of the three named collections; this mirrors
// how the backing stores (remote relational backend or local storage)
// actually hold the data and keeps an in-memory fake trivial.
//
// Implementations must return PERSISTENCE_FAILURE app errors on read/write
// failure. An absent collection reads as an empty sequence, not an error.
type Store interface {
	// Invoices returns the finalized invoice collection.
	Invoices(ctx context.Context) ([]Invoice, error)

	// SetInvoices replaces the invoice collection.
	SetInvoices(ctx context.Context, invoices []Invoice) error

	// Drafts returns the saved draft collection.
	Drafts(ctx context.Context) ([]Draft, error)

	// SetDrafts replaces the draft collection.
	SetDrafts(ctx context.Context, drafts []Draft) error

	// Clients returns the client catalog. Read-only from this core's
	// perspective.
	Clients(ctx context.Context) ([]clients.Client, error)
}

// Numerator allocates invoice numbers from a monotonic counter persisted
// alongside the collections. Counting existing invoices would reuse numbers
// after a cancellation; the counter never does.
type Numerator interface {
	// NextInvoiceNumber returns the next counter value, starting at 1.
	NextInvoiceNumber(ctx context.Context) (int64, error)
}
