package domain

import (
	"time"

	"github.com/google/uuid"
)

// VariantOverview summarizes one schedule variant for the whole week.
type VariantOverview struct {
	Visits               int
	Customers            int
	Teams                int
	TeamDays             int
	WorkingDays          int
	TotalTravelMinutes   float64
	AvgTravelPerDay      float64
	AvgTravelPerTeamDay  float64
	AvgTravelPerCustomer float64
	DepotTravelMinutes   float64
	SkippedRows          int
}

// Overview is the weekly headline comparison of both variants.
type Overview struct {
	Original             VariantOverview
	Optimized            VariantOverview
	CoveragePct          float64
	TravelImprovementPct float64
}

// AnalyticsSnapshot is the fully built, immutable result of one load.
// Nothing mutates a snapshot after it has been published.
type AnalyticsSnapshot struct {
	RunID           uuid.UUID
	LoadedAt        time.Time
	OriginalVisits  []Visit
	OptimizedVisits []Visit
	Segments        []TravelSegment
	DepotSegments   []TravelSegment
	Aggregates      Aggregates
	TimeShift       []TimeShiftBucket
	Overview        Overview
}

// Visits returns the visit collection of one variant.
func (s *AnalyticsSnapshot) Visits(v Variant) []Visit {
	if v == VariantOptimized {
		return s.OptimizedVisits
	}
	return s.OriginalVisits
}

// SnapshotDigest is the presentation-ready extract of a snapshot that is
// shared with other processes.
type SnapshotDigest struct {
	RunID     uuid.UUID
	LoadedAt  time.Time
	Overview  Overview
	Tables    map[string][]ComparisonRow
	Slots     map[string][]ComparisonRow
	TimeShift []TimeShiftBucket
}
