// Package clients provides the client catalog.
// The billing engine reads it to prefill invoice client snapshots; the
// collection itself is maintained outside this core and is read-only here.
package clients

import (
	"context"
	"regexp"
	"strings"

	"factura/internal/core/apperror"
)

var phoneRE = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)

// Client represents a customer record.
// Invoices and drafts copy name/phone/address as a snapshot, never a live
// reference: later edits to the client must not rewrite issued documents.
type Client struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Phone   string `db:"phone" json:"phone,omitempty"`
	Address string `db:"address" json:"address,omitempty"`
}

// Validate implements basic catalog invariants.
func (c *Client) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("client name is required").
			WithDetail("field", "name")
	}

	if c.Phone != "" && !phoneRE.MatchString(c.Phone) {
		return apperror.NewValidation("invalid phone format").
			WithDetail("field", "phone")
	}

	return nil
}
