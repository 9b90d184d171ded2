package domain

import (
	"fmt"
	"strings"
)

// Metric selects which travel statistic a comparison reports.
type Metric string

const (
	MetricTotal   Metric = "total"
	MetricAverage Metric = "average"
	MetricMedian  Metric = "median"
)

// ParseMetric rejects anything but total, average and median.
func ParseMetric(s string) (Metric, error) {
	switch m := Metric(strings.ToLower(strings.TrimSpace(s))); m {
	case MetricTotal, MetricAverage, MetricMedian:
		return m, nil
	}
	return "", fmt.Errorf("unknown metric %q: %w", s, ErrInvalidParameter)
}

// Of extracts the metric from an aggregate.
func (m Metric) Of(a Aggregate) float64 {
	switch m {
	case MetricAverage:
		return a.Average()
	case MetricMedian:
		return a.Median()
	default:
		return a.TotalTravelMinutes
	}
}

// View selects the grouping dimension of a comparison.
type View string

const (
	ViewDay  View = "day"
	ViewTeam View = "team"
)

// ParseView rejects anything but day and team.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewDay, ViewTeam:
		return v, nil
	}
	return "", fmt.Errorf("unknown view %q: %w", s, ErrInvalidParameter)
}

// ComparisonRow is one labelled original-vs-optimized value pair.
type ComparisonRow struct {
	Label          string
	OriginalValue  float64
	OptimizedValue float64
	ImprovementPct float64
}

// NewComparisonRow fills in the improvement percentage.
func NewComparisonRow(label string, original, optimized float64) ComparisonRow {
	return ComparisonRow{
		Label:          label,
		OriginalValue:  original,
		OptimizedValue: optimized,
		ImprovementPct: ImprovementPct(original, optimized),
	}
}

// TeamLabel renders a team identifier for presentation.
func TeamLabel(team int) string { return fmt.Sprintf("Team %d", team) }
