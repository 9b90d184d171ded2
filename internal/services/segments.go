package services

import (
	"cmp"
	"schedule-comparison-service/internal/domain"
	"slices"
)

// routeKey identifies one team's route on one day within one variant.
type routeKey struct {
	variant domain.Variant
	team    int
	day     domain.Weekday
}

func compareRouteKeys(a, b routeKey) int {
	if c := cmp.Compare(variantRank(a.variant), variantRank(b.variant)); c != 0 {
		return c
	}
	if c := cmp.Compare(a.team, b.team); c != 0 {
		return c
	}
	return cmp.Compare(a.day.Index(), b.day.Index())
}

func variantRank(v domain.Variant) int {
	if v == domain.VariantOptimized {
		return 1
	}
	return 0
}

// groupRoutes splits visits into per team/day/variant routes, each sorted
// chronologically with ties broken by customer id. Keys come back sorted so
// callers iterate deterministically.
func groupRoutes(visits []domain.Visit) ([]routeKey, map[routeKey][]domain.Visit) {
	routes := make(map[routeKey][]domain.Visit)
	for _, v := range visits {
		k := routeKey{variant: v.Variant, team: v.TeamNumber, day: v.Day}
		routes[k] = append(routes[k], v)
	}

	keys := make([]routeKey, 0, len(routes))
	for k, route := range routes {
		slices.SortStableFunc(route, func(a, b domain.Visit) int {
			if c := cmp.Compare(a.Start, b.Start); c != 0 {
				return c
			}
			return cmp.Compare(a.CustomerID, b.CustomerID)
		})
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareRouteKeys)

	return keys, routes
}

// BuildSegments derives the travel gaps between consecutive visits of each
// team/day/variant route.
//
// The first visit of a route produces no segment. A negative gap (visits
// overlapping or recorded out of order) is dropped, not clamped to zero.
// The input slice is not modified.
func BuildSegments(visits []domain.Visit) []domain.TravelSegment {
	keys, routes := groupRoutes(visits)

	segments := make([]domain.TravelSegment, 0, len(visits))
	for _, k := range keys {
		route := routes[k]
		for i := 1; i < len(route); i++ {
			gap := route[i-1].End.MinutesUntil(route[i].Start)
			if gap < 0 {
				continue
			}
			segments = append(segments, domain.TravelSegment{
				TeamNumber: k.team,
				Day:        k.day,
				Variant:    k.variant,
				Minutes:    gap,
			})
		}
	}

	return segments
}

// BuildDepotSegments produces the optional leg from a shift start to the
// first visit of every route. It is kept apart from BuildSegments, which
// never assumes a depot. Routes starting before shiftStart produce nothing.
func BuildDepotSegments(visits []domain.Visit, shiftStart domain.TimeOfDay) []domain.TravelSegment {
	keys, routes := groupRoutes(visits)

	segments := make([]domain.TravelSegment, 0, len(keys))
	for _, k := range keys {
		first := routes[k][0]
		gap := shiftStart.MinutesUntil(first.Start)
		if gap < 0 {
			continue
		}
		segments = append(segments, domain.TravelSegment{
			TeamNumber: k.team,
			Day:        k.day,
			Variant:    k.variant,
			Minutes:    gap,
		})
	}

	return segments
}
