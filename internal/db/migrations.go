package db

import (
	"context"
	"fmt"
)

// schemaVersion is stored in PRAGMA user_version.
const schemaVersion = 1

// migrations[i] upgrades a database from version i to i+1.
var migrations = []string{
	`
	CREATE TABLE IF NOT EXISTS dataset_imports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		size INTEGER NOT NULL,
		mod_time_ns INTEGER NOT NULL,
		row_count INTEGER NOT NULL DEFAULT 0,
		rejected INTEGER NOT NULL DEFAULT 0,
		imported_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_dataset_imports_source ON dataset_imports(source, id);

	CREATE TABLE IF NOT EXISTS observations (
		seq INTEGER PRIMARY KEY,
		import_id INTEGER NOT NULL REFERENCES dataset_imports(id) ON DELETE CASCADE,
		obs_date TEXT,
		season TEXT NOT NULL,
		weather TEXT NOT NULL,
		hour INTEGER CHECK (hour IS NULL OR (hour BETWEEN 0 AND 23)),
		daily_count INTEGER NOT NULL CHECK (daily_count >= 0),
		hourly_count INTEGER NOT NULL CHECK (hourly_count >= 0)
	);
	CREATE INDEX IF NOT EXISTS idx_observations_import ON observations(import_id);
	`,
}

// migrate applies every pending migration inside a single transaction.
func (db *DB) migrate(ctx context.Context) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for v := version; v < schemaVersion; v++ {
		if _, err := tx.ExecContext(ctx, migrations[v]); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", v+1, err)
		}
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return tx.Commit()
}

// SchemaVersion returns the schema version recorded in the database.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	return version, err
}
