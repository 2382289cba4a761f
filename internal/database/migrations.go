package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running session storage migrations...")

	migrations := []string{
		createClientStorageTable,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("Session storage migrations completed", "count", len(migrations))
	return nil
}

// One row per (namespace, key); a namespace plays the role of a browser origin.
const createClientStorageTable = `
CREATE TABLE IF NOT EXISTS client_storage (
    namespace VARCHAR(255) NOT NULL,
    key VARCHAR(255) NOT NULL,
    value TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    PRIMARY KEY (namespace, key)
);`
