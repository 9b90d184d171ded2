package services

import (
	"fmt"
	"schedule-comparison-service/internal/domain"
)

// Resolve builds the original-vs-optimized comparison table of one travel
// metric grouped by day or by team.
//
// Unknown metric or view values fail with domain.ErrInvalidParameter; a nil
// snapshot fails with domain.ErrNotLoaded.
func Resolve(metric, view string, snap *domain.AnalyticsSnapshot) ([]domain.ComparisonRow, error) {
	m, err := domain.ParseMetric(metric)
	if err != nil {
		return nil, fmt.Errorf("resolve comparison: %w", err)
	}
	v, err := domain.ParseView(view)
	if err != nil {
		return nil, fmt.Errorf("resolve comparison: %w", err)
	}
	if snap == nil {
		return nil, fmt.Errorf("resolve comparison: %w", domain.ErrNotLoaded)
	}

	return comparisonRows(snap.Aggregates, v, m.Of), nil
}

// ResolveSlots compares slot counts (visits) per day or per team.
func ResolveSlots(view string, snap *domain.AnalyticsSnapshot) ([]domain.ComparisonRow, error) {
	v, err := domain.ParseView(view)
	if err != nil {
		return nil, fmt.Errorf("resolve slots: %w", err)
	}
	if snap == nil {
		return nil, fmt.Errorf("resolve slots: %w", domain.ErrNotLoaded)
	}

	slots := func(a domain.Aggregate) float64 { return float64(a.SlotCount) }
	return comparisonRows(snap.Aggregates, v, slots), nil
}

func comparisonRows(
	aggs domain.Aggregates,
	view domain.View,
	value func(domain.Aggregate) float64,
) []domain.ComparisonRow {
	if view == domain.ViewTeam {
		rows := make([]domain.ComparisonRow, 0, len(aggs.Teams))
		for _, t := range aggs.Teams {
			a := aggs.ByTeam[t]
			rows = append(rows, domain.NewComparisonRow(domain.TeamLabel(t), value(a.Original), value(a.Optimized)))
		}
		return rows
	}

	rows := make([]domain.ComparisonRow, 0, len(aggs.Days))
	for _, d := range aggs.Days {
		a := aggs.Daily[d]
		rows = append(rows, domain.NewComparisonRow(d.Label(), value(a.Original), value(a.Optimized)))
	}
	return rows
}
