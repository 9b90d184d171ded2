package domain

import (
	"math"
	"testing"
)

func TestMedianLowerMiddle(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    float64
	}{
		{name: "empty", samples: nil, want: 0},
		{name: "single", samples: []float64{7}, want: 7},
		{name: "odd", samples: []float64{9, 1, 5}, want: 5},
		{name: "even picks lower middle", samples: []float64{1, 2, 3, 4}, want: 2},
		{name: "even unsorted", samples: []float64{40, 10, 30, 20}, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.samples); got != tt.want {
				t.Fatalf("Median(%v) = %v, want %v", tt.samples, got, tt.want)
			}
		})
	}
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	samples := []float64{3, 1, 2}
	Median(samples)
	if samples[0] != 3 || samples[1] != 1 || samples[2] != 2 {
		t.Fatalf("Median reordered its input: %v", samples)
	}
}

func TestAggregateAverage(t *testing.T) {
	a := Aggregate{SlotCount: 5, TotalTravelMinutes: 45, TravelSamples: []float64{10, 15, 20}}
	if got := a.Average(); got != 15 {
		t.Fatalf("Average() = %v, want 15", got)
	}

	empty := Aggregate{SlotCount: 2}
	if got := empty.Average(); got != 0 {
		t.Fatalf("Average() of no segments = %v, want 0", got)
	}
}

func TestImprovementPct(t *testing.T) {
	if got := ImprovementPct(0, 0); got != 0 {
		t.Fatalf("ImprovementPct(0, 0) = %v, want 0", got)
	}
	if got := ImprovementPct(0, 25); got != 0 {
		t.Fatalf("ImprovementPct(0, 25) = %v, want 0", got)
	}

	got := ImprovementPct(55, 15)
	if math.IsNaN(got) || math.Abs(got-72.7272) > 0.001 {
		t.Fatalf("ImprovementPct(55, 15) = %v, want ~72.73", got)
	}

	if got := ImprovementPct(10, 20); got != -100 {
		t.Fatalf("ImprovementPct(10, 20) = %v, want -100", got)
	}
}

func TestMetricOf(t *testing.T) {
	a := Aggregate{TotalTravelMinutes: 10, TravelSamples: []float64{1, 2, 3, 4}}

	cases := map[Metric]float64{
		MetricTotal:   10,
		MetricAverage: 2.5,
		MetricMedian:  2,
	}
	for m, want := range cases {
		if got := m.Of(a); got != want {
			t.Errorf("%s.Of() = %v, want %v", m, got, want)
		}
	}
}
