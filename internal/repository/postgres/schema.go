package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cofounder_matching (
		id                    UUID PRIMARY KEY,
		first_name            VARCHAR(50) NOT NULL,
		last_name             VARCHAR(50) NOT NULL,
		email                 TEXT NOT NULL UNIQUE,
		linkedin              TEXT NOT NULL,
		profile_pic           TEXT NOT NULL,
		role                  TEXT NOT NULL,
		stage                 TEXT NOT NULL,
		commitment            TEXT NOT NULL DEFAULT '',
		industries            TEXT[] NOT NULL DEFAULT '{}',
		prompt_superpower     VARCHAR(300) NOT NULL DEFAULT '',
		prompt_obsession      VARCHAR(300) NOT NULL DEFAULT '',
		prompt_cofounder_type VARCHAR(300) NOT NULL DEFAULT '',
		prompt_looking_for    VARCHAR(300) NOT NULL DEFAULT '',
		prompt_dealbreaker    VARCHAR(300) NOT NULL DEFAULT '',
		bio                   VARCHAR(500) NOT NULL DEFAULT '',
		status                TEXT NOT NULL DEFAULT 'pending',
		views                 BIGINT NOT NULL DEFAULT 0 CHECK (views >= 0),
		likes                 BIGINT NOT NULL DEFAULT 0 CHECK (likes >= 0),
		created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cofounder_matching_status_created ON cofounder_matching (status, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS cofounder_interactions (
		id         UUID PRIMARY KEY,
		profile_id UUID NOT NULL REFERENCES cofounder_matching (id) ON DELETE CASCADE,
		visitor_ip TEXT NOT NULL,
		type       TEXT NOT NULL CHECK (type IN ('view', 'like')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (profile_id, visitor_ip, type)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cofounder_interactions_profile_type ON cofounder_interactions (profile_id, type)`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
