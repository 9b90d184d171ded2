package services

import (
	"schedule-comparison-service/internal/domain"
)

// BuildOverview computes the weekly headline figures of both variants.
func BuildOverview(
	original, optimized []domain.Visit,
	segments, depotSegments []domain.TravelSegment,
) domain.Overview {
	o := domain.Overview{
		Original:  summarizeVariant(domain.VariantOriginal, original, segments, depotSegments),
		Optimized: summarizeVariant(domain.VariantOptimized, optimized, segments, depotSegments),
	}

	if o.Original.Customers > 0 {
		o.CoveragePct = float64(o.Optimized.Customers) / float64(o.Original.Customers) * 100
	}
	o.TravelImprovementPct = domain.ImprovementPct(o.Original.TotalTravelMinutes, o.Optimized.TotalTravelMinutes)

	return o
}

func summarizeVariant(
	variant domain.Variant,
	visits []domain.Visit,
	segments, depotSegments []domain.TravelSegment,
) domain.VariantOverview {
	type teamDay struct {
		team int
		day  domain.Weekday
	}

	customers := make(map[int]struct{})
	teams := make(map[int]struct{})
	days := make(map[domain.Weekday]struct{})
	teamDays := make(map[teamDay]struct{})

	for _, v := range visits {
		customers[v.CustomerID] = struct{}{}
		teams[v.TeamNumber] = struct{}{}
		days[v.Day] = struct{}{}
		teamDays[teamDay{team: v.TeamNumber, day: v.Day}] = struct{}{}
	}

	vo := domain.VariantOverview{
		Visits:      len(visits),
		Customers:   len(customers),
		Teams:       len(teams),
		TeamDays:    len(teamDays),
		WorkingDays: len(days),
	}

	for _, s := range segments {
		if s.Variant == variant {
			vo.TotalTravelMinutes += s.Minutes
		}
	}
	for _, s := range depotSegments {
		if s.Variant == variant {
			vo.DepotTravelMinutes += s.Minutes
		}
	}

	vo.AvgTravelPerDay = safeDiv(vo.TotalTravelMinutes, vo.WorkingDays)
	vo.AvgTravelPerTeamDay = safeDiv(vo.TotalTravelMinutes, vo.TeamDays)
	vo.AvgTravelPerCustomer = safeDiv(vo.TotalTravelMinutes, vo.Customers)

	return vo
}

func safeDiv(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
