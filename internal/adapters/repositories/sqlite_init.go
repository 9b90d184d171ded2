package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createVisitsQuery := `
	CREATE TABLE IF NOT EXISTS visits (
		variant TEXT NOT NULL,
		customer_id INTEGER NOT NULL,
		team_number INTEGER NOT NULL,
		day TEXT NOT NULL,
		visit_date TEXT NOT NULL,
		start_seconds INTEGER NOT NULL,
		end_seconds INTEGER NOT NULL,
		duration_minutes INTEGER NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT ''
	);
	`

	createVisitsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_visits_variant
	ON visits(variant, team_number, day);
	`

	createLoadRunsQuery := `
	CREATE TABLE IF NOT EXISTS load_runs (
		run_id TEXT PRIMARY KEY,
		loaded_at TEXT NOT NULL,
		original_source TEXT NOT NULL,
		optimized_source TEXT NOT NULL,
		original_visits INTEGER NOT NULL,
		optimized_visits INTEGER NOT NULL,
		original_skipped INTEGER NOT NULL,
		optimized_skipped INTEGER NOT NULL,
		original_travel_minutes REAL NOT NULL,
		optimized_travel_minutes REAL NOT NULL,
		travel_improvement_pct REAL NOT NULL
	);
	`

	createLoadRunsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_load_runs_loaded_at
	ON load_runs(loaded_at);
	`

	statements := []string{
		createVisitsQuery,
		createVisitsIndexQuery,
		createLoadRunsQuery,
		createLoadRunsIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
