package services

import (
	"context"
	"fmt"
	"log"
	"schedule-comparison-service/internal/domain"
	"schedule-comparison-service/internal/platform/obs"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// EngineOptions configures snapshot building.
type EngineOptions struct {
	// WeekStart is the Monday used to date compact rows.
	WeekStart time.Time
	// DepotStart enables the optional shift-start-to-first-visit leg.
	DepotStart *domain.TimeOfDay
	// Now defaults to time.Now.
	Now func() time.Time
}

// Engine owns the current AnalyticsSnapshot.
//
// A load builds a complete snapshot off to the side and publishes it with a
// single atomic pointer swap. Readers load the pointer once per call, so they
// see either the previous snapshot or the new one, never a partial build.
// A failed load leaves the previous snapshot in place.
type Engine struct {
	normalizer Normalizer
	depotStart *domain.TimeOfDay
	now        func() time.Time

	current atomic.Pointer[domain.AnalyticsSnapshot]
}

func NewEngine(opts EngineOptions) *Engine {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		normalizer: NewNormalizer(opts.WeekStart),
		depotStart: opts.DepotStart,
		now:        now,
	}
}

// Load normalizes both row sets and replaces the snapshot. Bad rows are
// skipped; only a variant left without any visits fails the load.
func (e *Engine) Load(ctx context.Context, original, optimized domain.RowSet) (_ *domain.AnalyticsSnapshot, err error) {
	defer obs.Time(ctx, "engine.Load")(&err)

	original.Variant = domain.VariantOriginal
	optimized.Variant = domain.VariantOptimized

	origVisits, origStats, err := e.normalizer.Normalize(original)
	if err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}
	optVisits, optStats, err := e.normalizer.Normalize(optimized)
	if err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}

	for _, st := range []struct {
		variant domain.Variant
		label   string
		stats   NormalizeStats
	}{
		{domain.VariantOriginal, original.Label, origStats},
		{domain.VariantOptimized, optimized.Label, optStats},
	} {
		log.Printf(
			"normalize rows: variant=%s source=%q format=%s rows=%d accepted=%d skipped=%d missing_columns=%v",
			st.variant, st.label, st.stats.Format, st.stats.Rows, st.stats.Accepted, st.stats.Skipped, st.stats.MissingColumns,
		)
	}

	return e.publish(origVisits, optVisits, origStats.Skipped, optStats.Skipped)
}

// LoadVisits replaces the snapshot from already-normalized visits, as read
// from the visits table. The variant of every visit is forced to the
// collection it was passed in.
func (e *Engine) LoadVisits(ctx context.Context, original, optimized []domain.Visit) (_ *domain.AnalyticsSnapshot, err error) {
	defer obs.Time(ctx, "engine.LoadVisits")(&err)

	return e.publish(withVariant(original, domain.VariantOriginal), withVariant(optimized, domain.VariantOptimized), 0, 0)
}

func (e *Engine) publish(original, optimized []domain.Visit, origSkipped, optSkipped int) (*domain.AnalyticsSnapshot, error) {
	if len(original) == 0 {
		return nil, fmt.Errorf("load schedules: %s variant has no usable visits: %w", domain.VariantOriginal, domain.ErrEmptySchedule)
	}
	if len(optimized) == 0 {
		return nil, fmt.Errorf("load schedules: %s variant has no usable visits: %w", domain.VariantOptimized, domain.ErrEmptySchedule)
	}

	snap := e.build(original, optimized)
	snap.Overview.Original.SkippedRows = origSkipped
	snap.Overview.Optimized.SkippedRows = optSkipped

	e.current.Store(snap)
	return snap, nil
}

// build is pure apart from the run id and the clock.
func (e *Engine) build(original, optimized []domain.Visit) *domain.AnalyticsSnapshot {
	all := make([]domain.Visit, 0, len(original)+len(optimized))
	all = append(all, original...)
	all = append(all, optimized...)

	segments := BuildSegments(all)

	var depot []domain.TravelSegment
	if e.depotStart != nil {
		depot = BuildDepotSegments(all, *e.depotStart)
	}

	return &domain.AnalyticsSnapshot{
		RunID:           uuid.New(),
		LoadedAt:        e.now().UTC(),
		OriginalVisits:  original,
		OptimizedVisits: optimized,
		Segments:        segments,
		DepotSegments:   depot,
		Aggregates:      Aggregate(segments, all),
		TimeShift:       ComputeShiftDistribution(original, optimized),
		Overview:        BuildOverview(original, optimized, segments, depot),
	}
}

// Snapshot returns the current snapshot or domain.ErrNotLoaded.
func (e *Engine) Snapshot() (*domain.AnalyticsSnapshot, error) {
	snap := e.current.Load()
	if snap == nil {
		return nil, domain.ErrNotLoaded
	}
	return snap, nil
}

// Query resolves a (metric, view) comparison against the current snapshot.
func (e *Engine) Query(metric, view string) ([]domain.ComparisonRow, error) {
	return Resolve(metric, view, e.current.Load())
}

// Slots resolves the slot-count comparison against the current snapshot.
func (e *Engine) Slots(view string) ([]domain.ComparisonRow, error) {
	return ResolveSlots(view, e.current.Load())
}

// TimeShiftDistribution returns the date-shift buckets of the current snapshot.
func (e *Engine) TimeShiftDistribution() ([]domain.TimeShiftBucket, error) {
	snap, err := e.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("time shift distribution: %w", err)
	}
	return slices.Clone(snap.TimeShift), nil
}

func withVariant(visits []domain.Visit, variant domain.Variant) []domain.Visit {
	out := make([]domain.Visit, len(visits))
	for i, v := range visits {
		v.Variant = variant
		out[i] = v
	}
	return out
}
