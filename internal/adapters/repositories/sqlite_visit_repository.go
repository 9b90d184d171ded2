package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"schedule-comparison-service/internal/domain"
	"schedule-comparison-service/internal/platform/obs"
)

// SQLite-backed implementation of the VisitWriter port.
type SqliteVisitRepository struct{ DB *sql.DB }

func NewSqliteVisitRepository(db *sql.DB) *SqliteVisitRepository {
	return &SqliteVisitRepository{DB: db}
}

// Return all visits of one variant stored in the database.
func (s *SqliteVisitRepository) ListVisits(ctx context.Context, variant domain.Variant) (_ []domain.Visit, err error) {
	defer obs.Time(ctx, "visits.sqlite.ListVisits")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite visit repository: DB is nil")
	}

	query := `
	SELECT
		customer_id,
		team_number,
		day,
		visit_date,
		start_seconds,
		end_seconds,
		duration_minutes,
		address,
		city
	FROM visits
	WHERE variant = ?
	ORDER BY team_number, day, start_seconds, customer_id;
	`
	rows, err := s.DB.QueryContext(ctx, query, string(variant))
	if err != nil {
		return nil, fmt.Errorf("list visits: query visits table: %w", err)
	}
	defer rows.Close()

	visits, err := scanVisits(rows, variant)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return visits, nil
}

// Replace every stored visit of the variant in one transaction.
func (s *SqliteVisitRepository) ReplaceVisits(ctx context.Context, variant domain.Variant, visits []domain.Visit) error {
	if s.DB == nil {
		return errors.New("sqlite visit repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace visits: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM visits WHERE variant = ?;`, string(variant)); err != nil {
		return fmt.Errorf("replace visits: delete %s: %w", variant, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO visits (
		variant,
		customer_id,
		team_number,
		day,
		visit_date,
		start_seconds,
		end_seconds,
		duration_minutes,
		address,
		city
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("replace visits: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range visits {
		if _, err := stmt.ExecContext(ctx,
			string(variant), v.CustomerID, v.TeamNumber, string(v.Day), v.Date.Format(dateLayout),
			int(v.Start), int(v.End), v.DurationMinutes, v.Address, v.City,
		); err != nil {
			return fmt.Errorf("replace visits: insert customer_id=%d: %w", v.CustomerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace visits: commit tx: %w", err)
	}

	return nil
}
