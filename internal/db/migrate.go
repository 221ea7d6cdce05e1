package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	// One row per persisted store snapshot. payload is the JSON the store
	// wrote; version is the store's own schema tag.
	`CREATE TABLE IF NOT EXISTS slots (
		key        TEXT PRIMARY KEY,
		version    INTEGER NOT NULL DEFAULT 0,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	// Session that last wrote the slot.
	`ALTER TABLE slots ADD COLUMN written_by TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_slots_updated ON slots(updated_at)`,
}
