package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"schedule-comparison-service/internal/domain"
	"schedule-comparison-service/internal/platform/obs"
)

// SQLRunRepository is the Postgres implementation of the RunArchive port.
type SQLRunRepository struct{ DB *sql.DB }

func NewSQLRunRepository(db *sql.DB) *SQLRunRepository {
	return &SQLRunRepository{DB: db}
}

func (s *SQLRunRepository) RecordRun(ctx context.Context, run domain.LoadRun) (err error) {
	defer obs.Time(ctx, "runs.sql.RecordRun")(&err)

	if s.DB == nil {
		return errors.New("sql run repository: DB is nil")
	}

	q := `
	INSERT INTO load_runs (run_id, loaded_at, original_source, optimized_source,
		original_visits, optimized_visits, original_skipped, optimized_skipped,
		original_travel_minutes, optimized_travel_minutes, travel_improvement_pct)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (run_id) DO NOTHING;
	`
	_, err = s.DB.ExecContext(ctx, q,
		run.RunID.String(), run.LoadedAt.UTC(), run.OriginalSource, run.OptimizedSource,
		run.OriginalVisits, run.OptimizedVisits, run.OriginalSkipped, run.OptimizedSkipped,
		run.OriginalTravelMinutes, run.OptimizedTravelMinutes, run.TravelImprovementPct,
	)
	if err != nil {
		return fmt.Errorf("record run: insert run_id=%s: %w", run.RunID, err)
	}

	return nil
}

func (s *SQLRunRepository) ListRuns(ctx context.Context, limit int) (_ []domain.LoadRun, err error) {
	defer obs.Time(ctx, "runs.sql.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("sql run repository: DB is nil")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("list runs: limit must be positive, got %d: %w", limit, domain.ErrInvalidParameter)
	}

	q := `
	SELECT run_id, loaded_at, original_source, optimized_source,
		original_visits, optimized_visits, original_skipped, optimized_skipped,
		original_travel_minutes, optimized_travel_minutes, travel_improvement_pct
	FROM load_runs
	ORDER BY loaded_at DESC
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, q, limit)
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
