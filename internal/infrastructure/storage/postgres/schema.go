package postgres

import (
	"context"
	"fmt"
)

// schemaStatements creates the tables the store relies on. Idempotent, run at
// startup before the server accepts traffic.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id      TEXT PRIMARY KEY,
		name    TEXT NOT NULL,
		phone   TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS invoices (
		id                TEXT PRIMARY KEY,
		client_name       TEXT NOT NULL,
		client_phone      TEXT NOT NULL DEFAULT '',
		client_address    TEXT NOT NULL DEFAULT '',
		delivery_location TEXT NOT NULL DEFAULT '',
		delivery_method   TEXT NOT NULL DEFAULT '',
		created_by        TEXT NOT NULL DEFAULT '',
		fee_percentage    INT NOT NULL,
		subtotal          NUMERIC(18,2) NOT NULL,
		fees              NUMERIC(18,2) NOT NULL,
		transport         NUMERIC(18,2) NOT NULL,
		total             NUMERIC(18,2) NOT NULL,
		creation_date     TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS invoice_articles (
		document_id TEXT NOT NULL REFERENCES invoices(id) ON DELETE CASCADE,
		line_no     INT NOT NULL,
		description TEXT NOT NULL,
		image_url   TEXT NOT NULL DEFAULT '',
		quantity    INT NOT NULL,
		unit_price  NUMERIC(18,4) NOT NULL,
		weight_cbm  NUMERIC(18,4) NOT NULL DEFAULT 0,
		item_link   TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (document_id, line_no)
	)`,

	`CREATE TABLE IF NOT EXISTS drafts (
		id                TEXT PRIMARY KEY,
		client_name       TEXT NOT NULL DEFAULT '',
		client_phone      TEXT NOT NULL DEFAULT '',
		client_address    TEXT NOT NULL DEFAULT '',
		delivery_location TEXT NOT NULL DEFAULT '',
		delivery_method   TEXT NOT NULL DEFAULT '',
		created_by        TEXT NOT NULL DEFAULT '',
		fee_percentage    INT NOT NULL,
		transport         NUMERIC(18,2) NOT NULL DEFAULT 0,
		creation_date     TIMESTAMPTZ NOT NULL,
		last_modified     TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS draft_articles (
		document_id TEXT NOT NULL REFERENCES drafts(id) ON DELETE CASCADE,
		line_no     INT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image_url   TEXT NOT NULL DEFAULT '',
		quantity    INT NOT NULL,
		unit_price  NUMERIC(18,4) NOT NULL,
		weight_cbm  NUMERIC(18,4) NOT NULL DEFAULT 0,
		item_link   TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (document_id, line_no)
	)`,

	`CREATE TABLE IF NOT EXISTS sys_sequences (
		key         TEXT PRIMARY KEY,
		current_val BIGINT NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS sys_audit (
		id                 UUID PRIMARY KEY,
		entity_id          TEXT NOT NULL,
		action             TEXT NOT NULL,
		user_id            TEXT NOT NULL DEFAULT '',
		changes            JSONB,
		changes_compressed BYTEA,
		compression_algo   TEXT NOT NULL DEFAULT 'none',
		created_at         TIMESTAMPTZ NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sys_audit_entity ON sys_audit (entity_id, created_at DESC)`,
}

// EnsureSchema creates all required tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
