// Package memory provides an in-memory storage backend. It backs local
// single-user deployments (STORAGE_BACKEND=memory) and the test suite.
package memory

import (
	"context"
	"sync"

	"factura/internal/domain/billing"
	"factura/internal/domain/clients"
)

// Compile-time checks against the storage ports.
var (
	_ billing.Store     = (*Store)(nil)
	_ billing.Numerator = (*Store)(nil)
)

// Store holds all collections in process memory behind one mutex.
// Reads hand out copies so callers can never mutate stored state in place.
type Store struct {
	mu       sync.Mutex
	invoices []billing.Invoice
	drafts   []billing.Draft
	clients  []clients.Client
	counter  int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// SeedClients replaces the client catalog. The catalog is read-only through
// the storage port, so seeding is the only way it changes.
func (s *Store) SeedClients(catalog []clients.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append([]clients.Client(nil), catalog...)
}

// Invoices implements billing.Store.
func (s *Store) Invoices(ctx context.Context) ([]billing.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]billing.Invoice(nil), s.invoices...), nil
}

// SetInvoices implements billing.Store.
func (s *Store) SetInvoices(ctx context.Context, invoices []billing.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = append([]billing.Invoice(nil), invoices...)
	return nil
}

// Drafts implements billing.Store.
func (s *Store) Drafts(ctx context.Context) ([]billing.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]billing.Draft(nil), s.drafts...), nil
}

// SetDrafts implements billing.Store.
func (s *Store) SetDrafts(ctx context.Context, drafts []billing.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = append([]billing.Draft(nil), drafts...)
	return nil
}

// Clients implements billing.Store.
func (s *Store) Clients(ctx context.Context) ([]clients.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]clients.Client(nil), s.clients...), nil
}

// NextInvoiceNumber implements billing.Numerator. The counter only ever
// advances, so cancelled numbers are never reissued within a process
// lifetime.
func (s *Store) NextInvoiceNumber(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	return s.counter, nil
}
