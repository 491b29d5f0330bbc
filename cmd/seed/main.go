// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"factura/internal/infrastructure/storage/postgres"
	"factura/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	// Hash mode: print a bcrypt hash for ADMIN_PASSWORD_HASH and exit.
	if len(os.Args) > 2 && os.Args[1] == "hash" {
		hash, err := bcrypt.GenerateFromPassword([]byte(os.Args[2]), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalw("failed to hash password", "error", err)
		}
		fmt.Println(string(hash))
		return
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoClients(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo clients", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

type demoClient struct {
	id, name, phone, address string
}

var demoClients = []demoClient{
	{"cl-001", "Moussa Diallo", "+224 620 00 11 22", "Kaloum, Conakry"},
	{"cl-002", "Aissatou Barry", "+224 621 33 44 55", "Ratoma, Conakry"},
	{"cl-003", "Ibrahima Sow", "+224 622 66 77 88", "Matam, Conakry"},
	{"cl-004", "Fatoumata Camara", "+224 623 99 00 11", "Dixinn, Conakry"},
}

func seedDemoClients(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	for _, c := range demoClients {
		_, err := pool.Exec(ctx, `
			INSERT INTO clients (id, name, phone, address)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, phone = EXCLUDED.phone, address = EXCLUDED.address
		`, c.id, c.name, c.phone, c.address)
		if err != nil {
			return fmt.Errorf("seed client %s: %w", c.id, err)
		}
		log.Infow("seeded client", "id", c.id, "name", c.name)
	}
	return nil
}
