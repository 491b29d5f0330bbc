package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"factura/internal/domain/billing"
	"factura/internal/infrastructure/http/v1/dto"
)

// DocumentRenderer renders an assembled document to PDF bytes.
type DocumentRenderer interface {
	Render(doc billing.Document) ([]byte, error)
}

// InvoiceHandler handles invoice lifecycle endpoints.
type InvoiceHandler struct {
	*BaseHandler
	service  *billing.Service
	renderer DocumentRenderer
	issuer   billing.Issuer
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *billing.Service, renderer DocumentRenderer, issuer billing.Issuer) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		service:     service,
		renderer:    renderer,
		issuer:      issuer,
	}
}

// List handles GET /invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromInvoices(invoices))
}

// Get handles GET /invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.service.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromInvoice(inv))
}

// Create handles POST /invoices - finalizes the submitted working state.
func (h *InvoiceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.WorksheetRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ws, err := req.ToWorksheet(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	inv, err := h.service.CreateInvoice(ctx, ws)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(201, dto.FromInvoice(inv))
}

// Preview handles POST /invoices/preview - renders a proforma PDF from
// un-persisted working state. Nothing is stored and no number is consumed.
func (h *InvoiceHandler) Preview(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.WorksheetRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ws, err := req.ToWorksheet(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc := billing.AssemblePreview(ws, h.issuer, time.Now())
	data, err := h.renderer.Render(doc)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.PDF(c, "proforma.pdf", data)
}

// Download handles GET /invoices/:id/pdf
func (h *InvoiceHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	inv, err := h.service.GetInvoice(ctx, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	doc := billing.AssembleDocument(inv, h.issuer)
	data, err := h.renderer.Render(doc)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.PDF(c, inv.ID+".pdf", data)
}

// Cancel handles DELETE /invoices/:id - idempotent.
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	if err := h.service.CancelInvoice(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
