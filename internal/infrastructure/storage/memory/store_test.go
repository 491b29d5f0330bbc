package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factura/internal/domain/billing"
	"factura/internal/domain/clients"
)

func TestStore_CollectionsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.SetInvoices(ctx, []billing.Invoice{{ID: "FAC001"}}))

	got, err := s.Invoices(ctx)
	require.NoError(t, err)
	got[0].ID = "mutated"

	again, err := s.Invoices(ctx)
	require.NoError(t, err)
	assert.Equal(t, "FAC001", again[0].ID)
}

func TestStore_SeedClients(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.SeedClients([]clients.Client{{ID: "cl-001", Name: "Moussa Diallo"}})

	got, err := s.Clients(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Moussa Diallo", got[0].Name)
}

func TestStore_NextInvoiceNumber_Monotonic(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	const goroutines = 20
	const perGoroutine = 25

	var mu sync.Mutex
	seen := make(map[int64]bool)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				n, err := s.NextInvoiceNumber(ctx)
				assert.NoError(t, err)
				mu.Lock()
				assert.False(t, seen[n], "number %d issued twice", n)
				seen[n] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, goroutines*perGoroutine)
}
