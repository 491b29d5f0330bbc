package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"factura/internal/domain/billing"
	"factura/internal/infrastructure/http/v1/dto"
)

// DraftHandler handles draft lifecycle endpoints.
type DraftHandler struct {
	*BaseHandler
	service *billing.Service
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(base *BaseHandler, service *billing.Service) *DraftHandler {
	return &DraftHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /drafts
func (h *DraftHandler) List(c *gin.Context) {
	drafts, err := h.service.ListDrafts(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromDrafts(drafts))
}

// Get handles GET /drafts/:id
func (h *DraftHandler) Get(c *gin.Context) {
	draft, err := h.service.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromDraft(draft))
}

// Create handles POST /drafts - saves the working state as a new draft.
func (h *DraftHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.WorksheetRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.DraftID = "" // a new draft always gets a fresh identifier

	ws, err := req.ToWorksheet(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}
	ws.CreatedBy = h.GetUserID(c)

	draft, err := h.service.SaveDraft(ctx, ws)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromDraft(draft))
}

// Update handles PUT /drafts/:id - overwrites an existing draft in place.
func (h *DraftHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.WorksheetRequest
	if !h.BindJSON(c, &req) {
		return
	}
	req.DraftID = c.Param("id")

	ws, err := req.ToWorksheet(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	draft, err := h.service.SaveDraft(ctx, ws)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDraft(draft))
}

// Delete handles DELETE /drafts/:id - idempotent.
func (h *DraftHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteDraft(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Convert handles POST /drafts/:id/convert - finalizes the draft into an
// invoice and removes it.
func (h *DraftHandler) Convert(c *gin.Context) {
	inv, err := h.service.ConvertDraftToInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromInvoice(inv))
}
