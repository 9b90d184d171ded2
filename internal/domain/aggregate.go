package domain

import (
	"math"
	"slices"
)

// Aggregate holds workload and travel statistics of one grouping key
// (a day or a team) within one schedule variant.
// SlotCount counts visits, never segments.
type Aggregate struct {
	SlotCount          int
	TotalTravelMinutes float64
	TravelSamples      []float64
}

// Average is the mean segment length, 0 when there are no segments.
func (a Aggregate) Average() float64 {
	if len(a.TravelSamples) == 0 {
		return 0
	}
	return a.TotalTravelMinutes / float64(len(a.TravelSamples))
}

// Median is the median segment length; see Median.
func (a Aggregate) Median() float64 { return Median(a.TravelSamples) }

// Median returns the middle element of the sorted samples. For an even
// number of samples the lower of the two middle elements is returned, not
// their mean. The input slice is not modified.
func Median(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return sorted[(len(sorted)-1)/2]
}

// ImprovementPct is (original - optimized) / original * 100, and 0 when the
// original value is 0 or the result would not be finite.
func ImprovementPct(original, optimized float64) float64 {
	if original == 0 {
		return 0
	}
	pct := (original - optimized) / original * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return pct
}

// VariantAggregates pairs the aggregates of both variants for one key.
type VariantAggregates struct {
	Original  Aggregate
	Optimized Aggregate
}

// For returns the aggregate of the given variant.
func (v VariantAggregates) For(variant Variant) Aggregate {
	if variant == VariantOptimized {
		return v.Optimized
	}
	return v.Original
}

// Aggregates is the output of the aggregation step. Days and Teams list the
// keys present in either variant, in calendar and ascending order.
type Aggregates struct {
	Days   []Weekday
	Teams  []int
	Daily  map[Weekday]VariantAggregates
	ByTeam map[int]VariantAggregates
}
