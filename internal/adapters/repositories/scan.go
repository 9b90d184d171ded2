package repositories

import (
	"database/sql"
	"fmt"
	"schedule-comparison-service/internal/domain"
	"time"
)

const dateLayout = "2006-01-02"

// civilDate scans DATE/TIMESTAMP columns from Postgres and TEXT columns from
// SQLite into the same time.Time.
type civilDate struct{ t time.Time }

func (d *civilDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.t = v.UTC()
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		d.t = time.Time{}
		return nil
	}
	return fmt.Errorf("scan date: unsupported type %T", src)
}

func (d *civilDate) parse(s string) error {
	for _, layout := range []string{time.RFC3339Nano, dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			d.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("scan date: unsupported format %q", s)
}

func scanVisits(rows *sql.Rows, variant domain.Variant) ([]domain.Visit, error) {
	visits := make([]domain.Visit, 0, 256)
	for rows.Next() {
		var (
			v          domain.Visit
			day        string
			date       civilDate
			start, end int
		)
		if err := rows.Scan(&v.CustomerID, &v.TeamNumber, &day, &date, &start, &end, &v.DurationMinutes, &v.Address, &v.City); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		d, ok := domain.ParseWeekday(day)
		if !ok {
			return nil, fmt.Errorf("scan row: customer_id=%d has unknown day %q", v.CustomerID, day)
		}
		v.Day = d
		v.Date = date.t
		v.Start = domain.TimeOfDay(start)
		v.End = domain.TimeOfDay(end)
		v.Variant = variant
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return visits, nil
}

func scanRuns(rows *sql.Rows) ([]domain.LoadRun, error) {
	var runs []domain.LoadRun
	for rows.Next() {
		var (
			r        domain.LoadRun
			loadedAt civilDate
		)
		if err := rows.Scan(
			&r.RunID, &loadedAt, &r.OriginalSource, &r.OptimizedSource,
			&r.OriginalVisits, &r.OptimizedVisits, &r.OriginalSkipped, &r.OptimizedSkipped,
			&r.OriginalTravelMinutes, &r.OptimizedTravelMinutes, &r.TravelImprovementPct,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.LoadedAt = loadedAt.t
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return runs, nil
}
