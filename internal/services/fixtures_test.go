package services

import (
	"schedule-comparison-service/internal/domain"
	"time"
)

var testWeekStart = time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)

func visit(variant domain.Variant, customer, team int, day domain.Weekday, start, end string) domain.Visit {
	s, err := domain.ParseTimeOfDay(start)
	if err != nil {
		panic(err)
	}
	e, err := domain.ParseTimeOfDay(end)
	if err != nil {
		panic(err)
	}
	return domain.Visit{
		CustomerID:      customer,
		TeamNumber:      team,
		Day:             day,
		Date:            testWeekStart.AddDate(0, 0, day.Index()),
		Start:           s,
		End:             e,
		DurationMinutes: int(e-s) / 60,
		Variant:         variant,
	}
}

// Team 3 on Tuesday: 55 travel minutes originally, 15 after optimization.
func teamThreeTuesday() (original, optimized []domain.Visit) {
	original = []domain.Visit{
		visit(domain.VariantOriginal, 1, 3, domain.Tuesday, "08:00", "08:15"),
		visit(domain.VariantOriginal, 2, 3, domain.Tuesday, "09:10", "09:40"),
	}
	optimized = []domain.Visit{
		visit(domain.VariantOptimized, 1, 3, domain.Tuesday, "09:00", "09:20"),
		visit(domain.VariantOptimized, 2, 3, domain.Tuesday, "09:35", "09:50"),
	}
	return original, optimized
}

var compactHeader = []string{
	"day_name", "customer_id", "team_number", "start_time", "end_time",
	"service_duration_minutes", "customer_address", "customer_city",
}

var verboseHeader = []string{
	"CustomerId", "TeamNumber", "DayName", "ScheduledStartTime", "ScheduledEndTime",
	"DurationMinute", "Address1", "City",
}
