package domain

import (
	"time"

	"github.com/google/uuid"
)

// LoadRun is the archived record of one successful snapshot build.
type LoadRun struct {
	RunID                  uuid.UUID
	LoadedAt               time.Time
	OriginalSource         string
	OptimizedSource        string
	OriginalVisits         int
	OptimizedVisits        int
	OriginalSkipped        int
	OptimizedSkipped       int
	OriginalTravelMinutes  float64
	OptimizedTravelMinutes float64
	TravelImprovementPct   float64
}

// NewLoadRun derives the archive record of a snapshot.
func NewLoadRun(s *AnalyticsSnapshot, originalSource, optimizedSource string) LoadRun {
	return LoadRun{
		RunID:                  s.RunID,
		LoadedAt:               s.LoadedAt,
		OriginalSource:         originalSource,
		OptimizedSource:        optimizedSource,
		OriginalVisits:         s.Overview.Original.Visits,
		OptimizedVisits:        s.Overview.Optimized.Visits,
		OriginalSkipped:        s.Overview.Original.SkippedRows,
		OptimizedSkipped:       s.Overview.Optimized.SkippedRows,
		OriginalTravelMinutes:  s.Overview.Original.TotalTravelMinutes,
		OptimizedTravelMinutes: s.Overview.Optimized.TotalTravelMinutes,
		TravelImprovementPct:   s.Overview.TravelImprovementPct,
	}
}
