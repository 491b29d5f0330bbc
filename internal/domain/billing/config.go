package billing

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// InvoiceNumberPrefix and InvoiceNumberPadWidth define the invoice
	// identifier format. Preserved bit-exact for compatibility with
	// previously issued documents: "FAC" + zero-padded counter, e.g. FAC007.
	InvoiceNumberPrefix   = "FAC"
	InvoiceNumberPadWidth = 3

	// DraftIDPrefix is followed by a millisecond timestamp to avoid
	// collisions between drafts saved in quick succession.
	DraftIDPrefix = "DRAFT"
)

// FormatInvoiceNumber renders the invoice identifier for counter value n.
// Values above 999 simply grow wider; the pad width is a minimum.
func FormatInvoiceNumber(n int64) string {
	return fmt.Sprintf("%s%0*d", InvoiceNumberPrefix, InvoiceNumberPadWidth, n)
}

// NewDraftID builds a timestamp-based draft identifier.
func NewDraftID(now time.Time) string {
	return DraftIDPrefix + strconv.FormatInt(now.UnixMilli(), 10)
}
