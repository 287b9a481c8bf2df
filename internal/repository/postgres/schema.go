package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the four entity tables for the environment prefix if
// they do not exist. Used by the seeder for dev environments; production
// schemas are managed externally.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				author TEXT NOT NULL,
				is_public BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Checklists),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				checklist_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				title TEXT NOT NULL,
				position INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Sections, tables.Checklists),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				section_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				title TEXT NOT NULL,
				done BOOLEAN NOT NULL DEFAULT FALSE,
				position INTEGER NOT NULL DEFAULT 0,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`, tables.Items, tables.Sections),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				checklist_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				user_id TEXT NOT NULL,
				role TEXT NOT NULL,
				shared_by TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				share_token TEXT,
				expires_at TIMESTAMPTZ,
				PRIMARY KEY (checklist_id, user_id)
			)
		`, tables.Shares, tables.Checklists),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
