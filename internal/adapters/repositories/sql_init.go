package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS visits (
			id BIGSERIAL PRIMARY KEY,
			variant TEXT NOT NULL,
			customer_id INTEGER NOT NULL,
			team_number INTEGER NOT NULL,
			day TEXT NOT NULL,
			visit_date DATE NOT NULL,
			start_seconds INTEGER NOT NULL,
			end_seconds INTEGER NOT NULL,
			duration_minutes INTEGER NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT ''
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_visits_variant
		ON visits(variant, team_number, day);
		`,
		`
		CREATE TABLE IF NOT EXISTS load_runs (
			run_id UUID PRIMARY KEY,
			loaded_at TIMESTAMPTZ NOT NULL,
			original_source TEXT NOT NULL,
			optimized_source TEXT NOT NULL,
			original_visits INTEGER NOT NULL,
			optimized_visits INTEGER NOT NULL,
			original_skipped INTEGER NOT NULL,
			optimized_skipped INTEGER NOT NULL,
			original_travel_minutes DOUBLE PRECISION NOT NULL,
			optimized_travel_minutes DOUBLE PRECISION NOT NULL,
			travel_improvement_pct DOUBLE PRECISION NOT NULL
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_load_runs_loaded_at
		ON load_runs(loaded_at DESC);
		`,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
