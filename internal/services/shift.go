package services

import (
	"schedule-comparison-service/internal/domain"
	"slices"
	"time"
)

// ComputeShiftDistribution buckets customers by how many days their visit
// moved between the original and the optimized schedule.
//
// A customer with several visits in a variant is represented by the earliest
// one. Customers present in only one variant are skipped.
func ComputeShiftDistribution(original, optimized []domain.Visit) []domain.TimeShiftBucket {
	originalDates := earliestDates(original)
	optimizedDates := earliestDates(optimized)

	counts := make(map[int]int)
	for customer, from := range originalDates {
		to, ok := optimizedDates[customer]
		if !ok {
			continue
		}
		counts[dayNumber(to)-dayNumber(from)]++
	}

	buckets := make([]domain.TimeShiftBucket, 0, len(counts))
	for offset, n := range counts {
		buckets = append(buckets, domain.TimeShiftBucket{OffsetDays: offset, CustomerCount: n})
	}
	slices.SortFunc(buckets, func(a, b domain.TimeShiftBucket) int {
		return a.OffsetDays - b.OffsetDays
	})

	return buckets
}

func earliestDates(visits []domain.Visit) map[int]time.Time {
	out := make(map[int]time.Time, len(visits))
	for _, v := range visits {
		if d, ok := out[v.CustomerID]; !ok || v.Date.Before(d) {
			out[v.CustomerID] = v.Date
		}
	}
	return out
}

// dayNumber counts whole civil days since the Unix epoch, ignoring the
// time-of-day and location of t.
func dayNumber(t time.Time) int {
	civil := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(civil.Unix() / 86400)
}
