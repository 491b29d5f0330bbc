package billing

import "context"

// AuditAction represents the type of audited lifecycle operation.
type AuditAction string

const (
	AuditDraftSaved       AuditAction = "draft_saved"
	AuditDraftDeleted     AuditAction = "draft_deleted"
	AuditDraftConverted   AuditAction = "draft_converted"
	AuditInvoiceCreated   AuditAction = "invoice_created"
	AuditInvoiceCancelled AuditAction = "invoice_cancelled"
)

// AuditRecorder records lifecycle operations for traceability.
// Recording is best-effort: the lifecycle manager logs a failed Record call
// but never fails the business operation because of it.
type AuditRecorder interface {
	Record(ctx context.Context, action AuditAction, entityID string, changes map[string]any) error
}

// NopAuditRecorder discards all entries.
type NopAuditRecorder struct{}

// Record implements AuditRecorder.
func (NopAuditRecorder) Record(context.Context, AuditAction, string, map[string]any) error {
	return nil
}
