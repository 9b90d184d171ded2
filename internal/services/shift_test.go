package services

import (
	"reflect"
	"schedule-comparison-service/internal/domain"
	"testing"
)

func TestComputeShiftDistribution(t *testing.T) {
	original := []domain.Visit{
		visit(domain.VariantOriginal, 1, 1, domain.Monday, "08:00", "08:30"),
		visit(domain.VariantOriginal, 2, 1, domain.Tuesday, "08:00", "08:30"),
		visit(domain.VariantOriginal, 3, 1, domain.Friday, "08:00", "08:30"),
		visit(domain.VariantOriginal, 4, 1, domain.Monday, "08:00", "08:30"),
		// Only in the original schedule.
		visit(domain.VariantOriginal, 5, 1, domain.Monday, "08:00", "08:30"),
	}
	optimized := []domain.Visit{
		visit(domain.VariantOptimized, 1, 2, domain.Monday, "10:00", "10:30"),
		visit(domain.VariantOptimized, 2, 2, domain.Thursday, "08:00", "08:30"),
		visit(domain.VariantOptimized, 3, 2, domain.Wednesday, "08:00", "08:30"),
		visit(domain.VariantOptimized, 4, 2, domain.Thursday, "08:00", "08:30"),
		// Earliest visit wins.
		visit(domain.VariantOptimized, 4, 2, domain.Tuesday, "08:00", "08:30"),
		// Only in the optimized schedule.
		visit(domain.VariantOptimized, 6, 2, domain.Monday, "08:00", "08:30"),
	}

	got := ComputeShiftDistribution(original, optimized)
	want := []domain.TimeShiftBucket{
		{OffsetDays: -2, CustomerCount: 1},
		{OffsetDays: 0, CustomerCount: 1},
		{OffsetDays: 1, CustomerCount: 1},
		{OffsetDays: 2, CustomerCount: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("buckets = %+v, want %+v", got, want)
	}
}

func TestComputeShiftDistributionEmpty(t *testing.T) {
	got := ComputeShiftDistribution(nil, nil)
	if len(got) != 0 {
		t.Fatalf("buckets = %+v, want none", got)
	}
}
