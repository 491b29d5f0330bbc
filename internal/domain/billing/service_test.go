package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"factura/internal/core/apperror"
	"factura/internal/core/types"
	"factura/internal/domain/clients"
)

// fakeStore is an in-memory Store and Numerator with error injection.
type fakeStore struct {
	invoices []Invoice
	drafts   []Draft
	clients  []clients.Client
	counter  int64

	failSetDrafts   error
	failSetInvoices error
	failNumber      error
}

func (f *fakeStore) Invoices(ctx context.Context) ([]Invoice, error) {
	return append([]Invoice(nil), f.invoices...), nil
}

func (f *fakeStore) SetInvoices(ctx context.Context, invoices []Invoice) error {
	if f.failSetInvoices != nil {
		return f.failSetInvoices
	}
	f.invoices = append([]Invoice(nil), invoices...)
	return nil
}

func (f *fakeStore) Drafts(ctx context.Context) ([]Draft, error) {
	return append([]Draft(nil), f.drafts...), nil
}

func (f *fakeStore) SetDrafts(ctx context.Context, drafts []Draft) error {
	if f.failSetDrafts != nil {
		return f.failSetDrafts
	}
	f.drafts = append([]Draft(nil), drafts...)
	return nil
}

func (f *fakeStore) Clients(ctx context.Context) ([]clients.Client, error) {
	return append([]clients.Client(nil), f.clients...), nil
}

func (f *fakeStore) NextInvoiceNumber(ctx context.Context) (int64, error) {
	if f.failNumber != nil {
		return 0, f.failNumber
	}
	f.counter++
	return f.counter, nil
}

func newTestService(store *fakeStore) *Service {
	return NewService(store, store, nil, nil)
}

func validWorksheet(t *testing.T) *Worksheet {
	t.Helper()
	ws := NewWorksheet()
	ws.ClientName = "Moussa Diallo"
	_, err := ws.AddItem(context.Background(), art(2, "64.87"))
	require.NoError(t, err)
	_, err = ws.AddItem(context.Background(), art(4, "50.00"))
	require.NoError(t, err)
	_, err = ws.SetFeePercentage(10)
	require.NoError(t, err)
	_, err = ws.SetTransport(types.MustMoney("31.50"))
	require.NoError(t, err)
	return ws
}

func TestService_SaveDraft_NewAndResave(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(store)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return base })

	ws := validWorksheet(t)
	draft, err := svc.SaveDraft(ctx, ws)
	require.NoError(t, err)

	assert.Equal(t, "DRAFT", draft.ID[:5])
	assert.Equal(t, draft.ID, ws.DraftID, "worksheet now edits the saved draft")
	assert.Equal(t, base, draft.CreationDate)
	require.Len(t, store.drafts, 1)

	// Re-save: same identifier, original creation date, bumped lastModified.
	later := base.Add(2 * time.Hour)
	svc.WithClock(func() time.Time { return later })

	_, err = ws.AddItem(ctx, art(1, "12.00"))
	require.NoError(t, err)

	resaved, err := svc.SaveDraft(ctx, ws)
	require.NoError(t, err)

	assert.Equal(t, draft.ID, resaved.ID)
	assert.Equal(t, base, resaved.CreationDate)
	assert.Equal(t, later, resaved.LastModified)
	require.Len(t, store.drafts, 1, "update in place, no second draft")
	assert.Len(t, store.drafts[0].Articles, 3)
}

func TestService_SaveDraft_EditingMissingDraft(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	ws := validWorksheet(t)
	ws.DraftID = "DRAFT0000000000000"

	_, err := svc.SaveDraft(context.Background(), ws)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_DeleteDraft_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(store)

	draft, err := svc.SaveDraft(ctx, validWorksheet(t))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDraft(ctx, draft.ID))
	assert.Empty(t, store.drafts)

	// second delete is a no-op, not an error
	require.NoError(t, svc.DeleteDraft(ctx, draft.ID))
	require.NoError(t, svc.DeleteDraft(ctx, "never-existed"))
}

func TestService_CreateInvoice(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(store)

	inv, err := svc.CreateInvoice(ctx, validWorksheet(t))
	require.NoError(t, err)

	assert.Equal(t, "FAC001", inv.ID)
	assert.Equal(t, "329.74", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "32.97", inv.Fees.StringFixed(2))
	assert.Equal(t, "31.50", inv.Transport.StringFixed(2))
	assert.Equal(t, "394.21", inv.Total.StringFixed(2))
	require.Len(t, store.invoices, 1)

	inv2, err := svc.CreateInvoice(ctx, validWorksheet(t))
	require.NoError(t, err)
	assert.Equal(t, "FAC002", inv2.ID)
}

func TestService_CreateInvoice_ValidationFailure(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(store)

	ws := NewWorksheet() // no client, no articles
	_, err := svc.CreateInvoice(ctx, ws)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, store.invoices)
	assert.EqualValues(t, 0, store.counter, "no number consumed on validation failure")
}

func TestService_NumberingSkipsCancelled(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(store)

	inv1, err := svc.CreateInvoice(ctx, validWorksheet(t))
	require.NoError(t, err)
	require.NoError(t, svc.CancelInvoice(ctx, inv1.ID))

	// cancelled numbers are never reissued
	inv2, err := svc.CreateInvoice(ctx, validWorksheet(t))
	require.NoError(t, err)
	assert.Equal(t, "FAC002", inv2.ID)
}

func TestService_CancelInvoice_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(store)

	inv, err := svc.CreateInvoice(ctx, validWorksheet(t))
	require.NoError(t, err)

	require.NoError(t, svc.CancelInvoice(ctx, inv.ID))
	require.NoError(t, svc.CancelInvoice(ctx, inv.ID))
	require.NoError(t, svc.CancelInvoice(ctx, "FAC999"))
	assert.Empty(t, store.invoices)
}

func TestService_ConvertDraftToInvoice(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(store)

	draft, err := svc.SaveDraft(ctx, validWorksheet(t))
	require.NoError(t, err)

	inv, err := svc.ConvertDraftToInvoice(ctx, draft.ID)
	require.NoError(t, err)

	assert.Equal(t, "FAC001", inv.ID)
	assert.Equal(t, draft.ClientName, inv.ClientName)
	assert.Equal(t, "394.21", inv.Total.StringFixed(2))
	assert.Empty(t, store.drafts, "converted draft is removed")
	require.Len(t, store.invoices, 1)
}

func TestService_ConvertDraft_NotFound(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	_, err := svc.ConvertDraftToInvoice(context.Background(), "DRAFT404")
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_ConvertDraft_ValidationFailureLeavesDraft(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(store)

	ws := NewWorksheet()
	ws.ClientName = "Incomplete" // no articles: not finalizable, still saveable
	draft, err := svc.SaveDraft(ctx, ws)
	require.NoError(t, err)

	_, err = svc.ConvertDraftToInvoice(ctx, draft.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	require.Len(t, store.drafts, 1, "draft survives failed conversion")
	assert.Empty(t, store.invoices)
}

func TestService_ConvertDraft_DraftRemovalFailure(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(store)

	draft, err := svc.SaveDraft(ctx, validWorksheet(t))
	require.NoError(t, err)

	store.failSetDrafts = errors.New("disk full")
	_, err = svc.ConvertDraftToInvoice(ctx, draft.ID)
	require.Error(t, err)
}

func TestService_CreateInvoice_NumberFailure(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{failNumber: errors.New("sequence unavailable")}
	svc := newTestService(store)

	_, err := svc.CreateInvoice(ctx, validWorksheet(t))
	require.Error(t, err)
	assert.True(t, apperror.IsPersistence(err))
	assert.Empty(t, store.invoices)
}

func TestService_OpenDraft_BumpsLastModified(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(store)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return base })

	draft, err := svc.SaveDraft(ctx, validWorksheet(t))
	require.NoError(t, err)

	later := base.Add(time.Hour)
	svc.WithClock(func() time.Time { return later })

	ws, err := svc.OpenDraft(ctx, draft.ID)
	require.NoError(t, err)

	assert.Equal(t, draft.ID, ws.DraftID)
	assert.Equal(t, "329.74", ws.Totals().Subtotal.StringFixed(2))
	assert.Equal(t, later, store.drafts[0].LastModified)
}

func TestService_ListClients(t *testing.T) {
	store := &fakeStore{clients: []clients.Client{
		{ID: "cl-001", Name: "Moussa Diallo"},
	}}
	svc := newTestService(store)

	catalog, err := svc.ListClients(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Moussa Diallo", catalog[0].Name)
}
