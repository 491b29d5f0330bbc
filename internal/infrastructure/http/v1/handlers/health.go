package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks storage connectivity. Nil means the backend has no external
// dependency and readiness equals liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	storage Pinger
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(storage Pinger) *HealthHandler {
	return &HealthHandler{storage: storage, started: time.Now()}
}

// Live handles GET /health/live - process is up.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}

// Ready handles GET /health/ready - storage is reachable.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.storage != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.storage.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
