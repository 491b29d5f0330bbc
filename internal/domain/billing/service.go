package billing

import (
	"context"
	"time"

	"factura/internal/core/apperror"
	appctx "factura/internal/core/context"
	"factura/internal/core/tx"
	"factura/internal/domain/clients"
	"factura/pkg/logger"
)

// Service is the invoice/draft lifecycle manager. It snapshots worksheet
// state into persisted drafts and invoices, assigns identifiers and
// timestamps, and talks to the storage port.
//
// Persistence is optimistic: the caller's worksheet is never rolled back on a
// storage failure; the error is surfaced and the same action can be retried.
type Service struct {
	store     Store
	numerator Numerator
	txManager tx.Manager
	audit     AuditRecorder
	now       func() time.Time
}

// NewService creates a lifecycle manager.
// A nil audit recorder disables audit logging.
func NewService(store Store, numerator Numerator, txManager tx.Manager, audit AuditRecorder) *Service {
	if txManager == nil {
		txManager = tx.Passthrough{}
	}
	if audit == nil {
		audit = NopAuditRecorder{}
	}
	return &Service{
		store:     store,
		numerator: numerator,
		txManager: txManager,
		audit:     audit,
		now:       time.Now,
	}
}

// WithClock replaces the time source. For tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// record writes an audit entry; failures are logged, never propagated.
func (s *Service) record(ctx context.Context, action AuditAction, entityID string, changes map[string]any) {
	if err := s.audit.Record(ctx, action, entityID, changes); err != nil {
		logger.Warn(ctx, "audit record failed", "action", action, "entity_id", entityID, "error", err)
	}
}

func (s *Service) createdBy(ctx context.Context, ws *Worksheet) string {
	if ws.CreatedBy != "" {
		return ws.CreatedBy
	}
	return appctx.GetUserID(ctx)
}

// --- Drafts ---

// SaveDraft persists the worksheet as a draft. A worksheet opened from an
// existing draft updates it in place, preserving its identifier and original
// creation date; otherwise a fresh timestamp-based identifier is assigned.
// The worksheet is flagged as editing the saved draft afterwards.
func (s *Service) SaveDraft(ctx context.Context, ws *Worksheet) (Draft, error) {
	drafts, err := s.store.Drafts(ctx)
	if err != nil {
		return Draft{}, err
	}

	now := s.now().UTC()
	draft := Draft{
		ID:               ws.DraftID,
		ClientName:       ws.ClientName,
		ClientPhone:      ws.ClientPhone,
		ClientAddress:    ws.ClientAddress,
		DeliveryLocation: ws.DeliveryLocation,
		DeliveryMethod:   ws.DeliveryMethod,
		CreatedBy:        s.createdBy(ctx, ws),
		Articles:         ws.Articles(),
		FeePercentage:    ws.FeePercentage(),
		Transport:        ws.Transport(),
		CreationDate:     now,
		LastModified:     now,
	}

	if draft.ID == "" {
		draft.ID = NewDraftID(now)
		drafts = append(drafts, draft)
	} else {
		found := false
		for i := range drafts {
			if drafts[i].ID == draft.ID {
				draft.CreationDate = drafts[i].CreationDate
				drafts[i] = draft
				found = true
				break
			}
		}
		if !found {
			return Draft{}, apperror.NewNotFound("draft", draft.ID)
		}
	}

	if err := s.store.SetDrafts(ctx, drafts); err != nil {
		return Draft{}, err
	}

	ws.DraftID = draft.ID
	ws.CreationDate = draft.CreationDate

	s.record(ctx, AuditDraftSaved, draft.ID, map[string]any{
		"clientName": draft.ClientName,
		"articles":   len(draft.Articles),
	})
	logger.Info(ctx, "draft saved", "id", draft.ID, "articles", len(draft.Articles))
	return draft, nil
}

// OpenDraft loads a draft into a fresh worksheet for editing and bumps its
// lastModified stamp.
func (s *Service) OpenDraft(ctx context.Context, draftID string) (*Worksheet, error) {
	drafts, err := s.store.Drafts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range drafts {
		if drafts[i].ID == draftID {
			drafts[i].LastModified = s.now().UTC()
			if err := s.store.SetDrafts(ctx, drafts); err != nil {
				return nil, err
			}
			return WorksheetFromDraft(drafts[i]), nil
		}
	}

	return nil, apperror.NewNotFound("draft", draftID)
}

// DeleteDraft removes a draft. Unknown identifiers are a no-op: the delete is
// idempotent by design.
func (s *Service) DeleteDraft(ctx context.Context, draftID string) error {
	drafts, err := s.store.Drafts(ctx)
	if err != nil {
		return err
	}

	kept := drafts[:0]
	for _, d := range drafts {
		if d.ID != draftID {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(drafts) {
		logger.Debug(ctx, "draft already absent", "id", draftID)
		return nil
	}

	if err := s.store.SetDrafts(ctx, kept); err != nil {
		return err
	}

	s.record(ctx, AuditDraftDeleted, draftID, nil)
	logger.Info(ctx, "draft deleted", "id", draftID)
	return nil
}

// ListDrafts returns all saved drafts.
func (s *Service) ListDrafts(ctx context.Context) ([]Draft, error) {
	return s.store.Drafts(ctx)
}

// GetDraft returns one draft by identifier.
func (s *Service) GetDraft(ctx context.Context, draftID string) (Draft, error) {
	drafts, err := s.store.Drafts(ctx)
	if err != nil {
		return Draft{}, err
	}
	for _, d := range drafts {
		if d.ID == draftID {
			return d, nil
		}
	}
	return Draft{}, apperror.NewNotFound("draft", draftID)
}

// --- Invoices ---

// CreateInvoice validates the worksheet and persists it as a finalized
// invoice. On validation failure nothing changes.
func (s *Service) CreateInvoice(ctx context.Context, ws *Worksheet) (Invoice, error) {
	if err := ws.Validate(ctx); err != nil {
		return Invoice{}, err
	}

	totals, err := Calculate(ws.Articles(), ws.FeePercentage(), ws.Transport())
	if err != nil {
		return Invoice{}, err
	}

	inv := Invoice{
		ClientName:       ws.ClientName,
		ClientPhone:      ws.ClientPhone,
		ClientAddress:    ws.ClientAddress,
		DeliveryLocation: ws.DeliveryLocation,
		DeliveryMethod:   ws.DeliveryMethod,
		CreatedBy:        s.createdBy(ctx, ws),
		Articles:         ws.Articles(),
		FeePercentage:    ws.FeePercentage(),
	}

	if err := s.finalize(ctx, &inv, totals); err != nil {
		return Invoice{}, err
	}

	s.record(ctx, AuditInvoiceCreated, inv.ID, map[string]any{
		"clientName": inv.ClientName,
		"total":      inv.Total.String(),
	})
	logger.Info(ctx, "invoice created", "id", inv.ID, "total", inv.Total.String())
	return inv, nil
}

// finalize stamps identity, date and rounded amounts on inv and appends it to
// the persisted collection.
func (s *Service) finalize(ctx context.Context, inv *Invoice, totals Totals) error {
	invoices, err := s.store.Invoices(ctx)
	if err != nil {
		return err
	}

	n, err := s.numerator.NextInvoiceNumber(ctx)
	if err != nil {
		return apperror.NewPersistence("next invoice number", err)
	}

	rounded := totals.Rounded()
	inv.ID = FormatInvoiceNumber(n)
	inv.Subtotal = rounded.Subtotal
	inv.Fees = rounded.Fees
	inv.Transport = rounded.Transport
	inv.Total = rounded.Total
	inv.CreationDate = s.now().UTC()

	return s.store.SetInvoices(ctx, append(invoices, *inv))
}

// ConvertDraftToInvoice validates the draft and, as one logical unit,
// persists the new invoice and removes the source draft. On validation
// failure neither collection changes and the draft stays in storage.
func (s *Service) ConvertDraftToInvoice(ctx context.Context, draftID string) (Invoice, error) {
	drafts, err := s.store.Drafts(ctx)
	if err != nil {
		return Invoice{}, err
	}

	idx := -1
	for i := range drafts {
		if drafts[i].ID == draftID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Invoice{}, apperror.NewNotFound("draft", draftID)
	}
	draft := drafts[idx]

	if err := draft.Validate(ctx); err != nil {
		return Invoice{}, err
	}

	totals, err := Calculate(draft.Articles, draft.FeePercentage, draft.Transport)
	if err != nil {
		return Invoice{}, err
	}

	inv := Invoice{
		ClientName:       draft.ClientName,
		ClientPhone:      draft.ClientPhone,
		ClientAddress:    draft.ClientAddress,
		DeliveryLocation: draft.DeliveryLocation,
		DeliveryMethod:   draft.DeliveryMethod,
		CreatedBy:        draft.CreatedBy,
		Articles:         draft.Articles,
		FeePercentage:    draft.FeePercentage,
	}

	remaining := append(drafts[:idx:idx], drafts[idx+1:]...)

	// Invoice first, then draft removal. Inside one storage transaction both
	// land or neither does; the passthrough manager keeps the same ordering
	// so an interruption can at worst leave both present, never neither.
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.finalize(ctx, &inv, totals); err != nil {
			return err
		}
		return s.store.SetDrafts(ctx, remaining)
	})
	if err != nil {
		return Invoice{}, err
	}

	s.record(ctx, AuditDraftConverted, inv.ID, map[string]any{
		"draftId": draftID,
		"total":   inv.Total.String(),
	})
	logger.Info(ctx, "draft converted to invoice", "draft_id", draftID, "invoice_id", inv.ID)
	return inv, nil
}

// CancelInvoice removes a finalized invoice. Idempotent: cancelling an
// unknown or already-cancelled identifier is a no-op.
func (s *Service) CancelInvoice(ctx context.Context, invoiceID string) error {
	invoices, err := s.store.Invoices(ctx)
	if err != nil {
		return err
	}

	kept := invoices[:0]
	for _, inv := range invoices {
		if inv.ID != invoiceID {
			kept = append(kept, inv)
		}
	}
	if len(kept) == len(invoices) {
		logger.Debug(ctx, "invoice already absent", "id", invoiceID)
		return nil
	}

	if err := s.store.SetInvoices(ctx, kept); err != nil {
		return err
	}

	s.record(ctx, AuditInvoiceCancelled, invoiceID, nil)
	logger.Info(ctx, "invoice cancelled", "id", invoiceID)
	return nil
}

// ListInvoices returns all finalized invoices.
func (s *Service) ListInvoices(ctx context.Context) ([]Invoice, error) {
	return s.store.Invoices(ctx)
}

// GetInvoice returns one invoice by identifier.
func (s *Service) GetInvoice(ctx context.Context, invoiceID string) (Invoice, error) {
	invoices, err := s.store.Invoices(ctx)
	if err != nil {
		return Invoice{}, err
	}
	for _, inv := range invoices {
		if inv.ID == invoiceID {
			return inv, nil
		}
	}
	return Invoice{}, apperror.NewNotFound("invoice", invoiceID)
}

// --- Clients ---

// ListClients returns the read-only client catalog.
func (s *Service) ListClients(ctx context.Context) ([]clients.Client, error) {
	return s.store.Clients(ctx)
}
