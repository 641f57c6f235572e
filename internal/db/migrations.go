package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are applied in order after schema creation. Each must be
// idempotent; "duplicate column" errors are tolerated for ALTER TABLE
// statements. Append new migrations at the end.
var migrations = []string{
	// Migration 1: settings rows written before updated_at existed.
	`ALTER TABLE settings ADD COLUMN updated_at DATETIME NOT NULL DEFAULT '1970-01-01 00:00:00'`,
	// Migration 2: the session record moved from "session" to "futofind_user".
	`INSERT OR IGNORE INTO settings (key, value)
	     SELECT 'futofind_user', value FROM settings WHERE key = 'session'`,
	`DELETE FROM settings WHERE key = 'session'`,
}

// Migrate runs the migrations against an existing schema.
func Migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			if strings.Contains(err.Error(), "duplicate column") {
				continue
			}
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}
	return nil
}
