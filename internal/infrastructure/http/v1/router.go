// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"factura/internal/domain/auth"
	"factura/internal/domain/billing"
	"factura/internal/infrastructure/http/v1/handlers"
	"factura/internal/infrastructure/http/v1/middleware"
	"factura/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Billing drives the invoice/draft lifecycle
	Billing *billing.Service

	// Renderer produces PDF documents
	Renderer handlers.DocumentRenderer

	// Issuer is printed in every document header
	Issuer billing.Issuer

	// Storage is pinged by the readiness probe; nil for in-memory backends
	Storage handlers.Pinger

	// AuthService issues and validates tokens. Nil disables authentication:
	// every route is open, which only makes sense for local single-user use.
	AuthService *auth.JWTService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Storage)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	baseHandler := handlers.NewBaseHandler()

	// API v1
	api := router.Group("/api/v1")
	{
		if cfg.AuthService != nil {
			authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)
			api.POST("/auth/login", authHandler.Login)
		}

		protected := api.Group("")
		if cfg.AuthService != nil {
			protected.Use(middleware.Auth(cfg.AuthService))
		}

		invoiceHandler := handlers.NewInvoiceHandler(baseHandler, cfg.Billing, cfg.Renderer, cfg.Issuer)
		invoices := protected.Group("/invoices")
		{
			invoices.GET("", invoiceHandler.List)
			invoices.POST("", invoiceHandler.Create)
			invoices.POST("/preview", invoiceHandler.Preview)
			invoices.GET("/:id", invoiceHandler.Get)
			invoices.GET("/:id/pdf", invoiceHandler.Download)
			invoices.DELETE("/:id", invoiceHandler.Cancel)
		}

		draftHandler := handlers.NewDraftHandler(baseHandler, cfg.Billing)
		drafts := protected.Group("/drafts")
		{
			drafts.GET("", draftHandler.List)
			drafts.POST("", draftHandler.Create)
			drafts.GET("/:id", draftHandler.Get)
			drafts.PUT("/:id", draftHandler.Update)
			drafts.DELETE("/:id", draftHandler.Delete)
			drafts.POST("/:id/convert", draftHandler.Convert)
		}

		clientHandler := handlers.NewClientHandler(baseHandler, cfg.Billing)
		protected.GET("/clients", clientHandler.List)

		importHandler := handlers.NewImportHandler(baseHandler)
		protected.POST("/imports/articles", importHandler.Articles)
	}

	return router
}
