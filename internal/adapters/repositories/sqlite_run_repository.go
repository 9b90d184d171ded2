package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"schedule-comparison-service/internal/domain"
	"schedule-comparison-service/internal/platform/obs"
)

// Fixed-width so that TEXT ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite-backed implementation of the RunArchive port.
type SqliteRunRepository struct{ DB *sql.DB }

func NewSqliteRunRepository(db *sql.DB) *SqliteRunRepository {
	return &SqliteRunRepository{DB: db}
}

// Archive one successful snapshot build.
func (s *SqliteRunRepository) RecordRun(ctx context.Context, run domain.LoadRun) (err error) {
	defer obs.Time(ctx, "runs.sqlite.RecordRun")(&err)

	if s.DB == nil {
		return errors.New("sqlite run repository: DB is nil")
	}

	query := `
	INSERT INTO load_runs (
		run_id,
		loaded_at,
		original_source,
		optimized_source,
		original_visits,
		optimized_visits,
		original_skipped,
		optimized_skipped,
		original_travel_minutes,
		optimized_travel_minutes,
		travel_improvement_pct
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = s.DB.ExecContext(ctx, query,
		run.RunID.String(),
		run.LoadedAt.UTC().Format(sqliteTimeLayout),
		run.OriginalSource,
		run.OptimizedSource,
		run.OriginalVisits,
		run.OptimizedVisits,
		run.OriginalSkipped,
		run.OptimizedSkipped,
		run.OriginalTravelMinutes,
		run.OptimizedTravelMinutes,
		run.TravelImprovementPct,
	)
	if err != nil {
		return fmt.Errorf("record run: insert run_id=%s: %w", run.RunID, err)
	}

	return nil
}

// Return the most recent runs, newest first.
func (s *SqliteRunRepository) ListRuns(ctx context.Context, limit int) (_ []domain.LoadRun, err error) {
	defer obs.Time(ctx, "runs.sqlite.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite run repository: DB is nil")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("list runs: limit must be positive, got %d: %w", limit, domain.ErrInvalidParameter)
	}

	query := `
	SELECT
		run_id,
		loaded_at,
		original_source,
		optimized_source,
		original_visits,
		optimized_visits,
		original_skipped,
		optimized_skipped,
		original_travel_minutes,
		optimized_travel_minutes,
		travel_improvement_pct
	FROM load_runs
	ORDER BY loaded_at DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query load_runs table: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
