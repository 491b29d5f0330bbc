// Package main is the entry point for the factura API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"factura/internal/core/tx"
	"factura/internal/domain/auth"
	"factura/internal/domain/billing"
	v1 "factura/internal/infrastructure/http/v1"
	"factura/internal/infrastructure/http/v1/handlers"
	"factura/internal/infrastructure/pdf"
	"factura/internal/infrastructure/storage/memory"
	"factura/internal/infrastructure/storage/postgres"
	"factura/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting factura server")

	var (
		store     billing.Store
		num       billing.Numerator
		txManager tx.Manager
		audit     billing.AuditRecorder
		pgPool    *postgres.Pool
	)

	storage := getEnv("STORAGE_BACKEND", "postgres")
	switch storage {
	case "postgres":
		pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		defer pool.Close()
		log.Info("database connection established")

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatalw("failed to apply schema", "error", err)
		}

		txm := postgres.NewTxManager(pool)
		auditService, err := postgres.NewAuditService(txm)
		if err != nil {
			log.Fatalw("failed to initialize audit service", "error", err)
		}

		store = postgres.NewStore(txm)
		num = postgres.NewSequence(txm)
		txManager = txm
		audit = auditService
		pgPool = pool

	case "memory":
		mem := memory.NewStore()
		store = mem
		num = mem
		log.Warn("using in-memory storage: data is lost on restart")

	default:
		log.Fatalw("unknown STORAGE_BACKEND", "value", storage)
	}

	billingService := billing.NewService(store, num, txManager, audit)

	// --- Auth (optional: unset JWT_SECRET runs the API open) ---
	var authService *auth.JWTService
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		creds := auth.Credentials{
			Username:     mustEnv("ADMIN_USER"),
			PasswordHash: mustEnv("ADMIN_PASSWORD_HASH"),
		}
		authService = auth.NewJWTService(auth.DefaultJWTConfig(secret), creds)
	} else {
		log.Warn("JWT_SECRET not set: API runs without authentication")
	}

	issuer := billing.Issuer{
		Name:    getEnv("COMPANY_NAME", "Factura"),
		Phone:   getEnv("COMPANY_PHONE", ""),
		Address: getEnv("COMPANY_ADDRESS", ""),
	}
	renderer := pdf.NewRenderer(getEnv("CURRENCY", "USD"))

	var storagePinger handlers.Pinger
	if pgPool != nil {
		storagePinger = pgPool
	}

	router := v1.NewRouter(v1.RouterConfig{
		Logger:      log,
		Billing:     billingService,
		Renderer:    renderer,
		Issuer:      issuer,
		Storage:     storagePinger,
		AuthService: authService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port, "storage", storage)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
