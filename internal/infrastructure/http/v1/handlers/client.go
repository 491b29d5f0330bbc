package handlers

import (
	"github.com/gin-gonic/gin"

	"factura/internal/domain/billing"
	"factura/internal/infrastructure/http/v1/dto"
)

// ClientHandler serves the read-only client catalog.
type ClientHandler struct {
	*BaseHandler
	service *billing.Service
}

// NewClientHandler creates a new client handler.
func NewClientHandler(base *BaseHandler, service *billing.Service) *ClientHandler {
	return &ClientHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /clients
func (h *ClientHandler) List(c *gin.Context) {
	catalog, err := h.service.ListClients(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromClients(catalog))
}
