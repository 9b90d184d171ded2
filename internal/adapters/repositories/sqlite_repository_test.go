package repositories

import (
	"context"
	"errors"
	"schedule-comparison-service/internal/domain"
	"schedule-comparison-service/internal/platform/db"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestDB(t *testing.T) *SqliteVisitRepository {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := InitSchema(conn); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	return NewSqliteVisitRepository(conn)
}

func visitAt(customer, team int, day domain.Weekday, date string, start, end string) domain.Visit {
	d, _ := time.Parse("2006-01-02", date)
	s, _ := domain.ParseTimeOfDay(start)
	e, _ := domain.ParseTimeOfDay(end)
	return domain.Visit{
		CustomerID:      customer,
		TeamNumber:      team,
		Day:             day,
		Date:            d,
		Start:           s,
		End:             e,
		DurationMinutes: int((e - s) / 60),
		Address:         "Main St 1",
		City:            "Springfield",
	}
}

func TestSqliteVisitRepositoryReplaceAndList(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t)

	first := []domain.Visit{
		visitAt(7, 3, domain.Tuesday, "2025-07-08", "09:10", "09:40"),
		visitAt(5, 3, domain.Tuesday, "2025-07-08", "08:00", "08:15"),
	}
	if err := repo.ReplaceVisits(ctx, domain.VariantOriginal, first); err != nil {
		t.Fatalf("ReplaceVisits: %v", err)
	}
	if err := repo.ReplaceVisits(ctx, domain.VariantOptimized, first[:1]); err != nil {
		t.Fatalf("ReplaceVisits optimized: %v", err)
	}

	got, err := repo.ListVisits(ctx, domain.VariantOriginal)
	if err != nil {
		t.Fatalf("ListVisits: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(visits) = %d, want 2", len(got))
	}
	if got[0].CustomerID != 5 || got[1].CustomerID != 7 {
		t.Fatalf("order = [%d %d], want [5 7]", got[0].CustomerID, got[1].CustomerID)
	}
	if got[0].Variant != domain.VariantOriginal {
		t.Fatalf("variant = %q, want %q", got[0].Variant, domain.VariantOriginal)
	}
	if got[0].Day != domain.Tuesday || got[0].Date.Format("2006-01-02") != "2025-07-08" {
		t.Fatalf("day/date = %s/%s, want tue/2025-07-08", got[0].Day, got[0].Date.Format("2006-01-02"))
	}
	if got[1].Start.String() != "09:10" || got[1].End.String() != "09:40" {
		t.Fatalf("times = %s-%s, want 09:10-09:40", got[1].Start, got[1].End)
	}

	// Replacing must drop the previous rows of that variant only.
	if err := repo.ReplaceVisits(ctx, domain.VariantOriginal, first[1:]); err != nil {
		t.Fatalf("ReplaceVisits second: %v", err)
	}
	got, err = repo.ListVisits(ctx, domain.VariantOriginal)
	if err != nil {
		t.Fatalf("ListVisits: %v", err)
	}
	if len(got) != 1 || got[0].CustomerID != 5 {
		t.Fatalf("after replace = %+v, want only customer 5", got)
	}

	opt, err := repo.ListVisits(ctx, domain.VariantOptimized)
	if err != nil {
		t.Fatalf("ListVisits optimized: %v", err)
	}
	if len(opt) != 1 || opt[0].CustomerID != 7 {
		t.Fatalf("optimized = %+v, want only customer 7", opt)
	}
}

func TestSqliteRunRepositoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	runs := NewSqliteRunRepository(openTestDB(t).DB)

	base := time.Date(2025, 7, 7, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := domain.LoadRun{
			RunID:                  uuid.New(),
			LoadedAt:               base.Add(time.Duration(i) * time.Hour),
			OriginalSource:         "original.csv",
			OptimizedSource:        "optimized.csv",
			OriginalVisits:         10 + i,
			OptimizedVisits:        9,
			OriginalTravelMinutes:  55,
			OptimizedTravelMinutes: 15,
			TravelImprovementPct:   72.72,
		}
		if err := runs.RecordRun(ctx, run); err != nil {
			t.Fatalf("RecordRun #%d: %v", i, err)
		}
	}

	got, err := runs.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(got))
	}
	if got[0].OriginalVisits != 12 || got[1].OriginalVisits != 11 {
		t.Fatalf("order = [%d %d], want [12 11]", got[0].OriginalVisits, got[1].OriginalVisits)
	}
	if !got[0].LoadedAt.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("loaded_at = %v, want %v", got[0].LoadedAt, base.Add(2*time.Hour))
	}
	if got[0].RunID == uuid.Nil {
		t.Fatalf("run id not scanned")
	}

	if _, err := runs.ListRuns(ctx, 0); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("ListRuns(0) err = %v, want ErrInvalidParameter", err)
	}
}
