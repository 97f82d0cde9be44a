package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// statements are applied in order on startup. Everything is idempotent so the
// service can restart against an already-provisioned database.
var statements = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS users (
		id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		email         text NOT NULL UNIQUE,
		name          text NOT NULL,
		password_hash text NOT NULL,
		role          smallint NOT NULL DEFAULT 0,
		created_at    timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS properties (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		agent_id   uuid NOT NULL REFERENCES users(id),
		title      text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS conversations (
		id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		pair_key    text NOT NULL UNIQUE,
		property_id uuid REFERENCES properties(id),
		created_at  timestamptz NOT NULL DEFAULT now(),
		updated_at  timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS conversation_participants (
		conversation_id uuid NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		user_id         uuid NOT NULL REFERENCES users(id),
		role            smallint NOT NULL DEFAULT 0,
		PRIMARY KEY (conversation_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		conversation_id uuid NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		sender_id       uuid NOT NULL REFERENCES users(id),
		body            text NOT NULL,
		status          smallint NOT NULL DEFAULT 0,
		created_at      timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_messages_conversation_order
		ON messages (conversation_id, created_at, id)`,

	`CREATE INDEX IF NOT EXISTS idx_messages_unread
		ON messages (conversation_id, sender_id) WHERE status < 2`,
}

// EnsureSchema creates the tables and indexes the service needs.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: ensure schema: %w", err)
		}
	}
	return nil
}
