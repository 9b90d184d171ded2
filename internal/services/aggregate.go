package services

import (
	"schedule-comparison-service/internal/domain"
	"slices"
)

// Aggregate reduces segments and visits into per-day and per-team statistics
// for both variants.
//
// Slot counts come from visits, travel figures from segments. Samples are
// stored sorted and totals are summed in that order, so the result does not
// depend on the order of the inputs.
func Aggregate(segments []domain.TravelSegment, visits []domain.Visit) domain.Aggregates {
	daily := make(map[domain.Weekday]*[2]domain.Aggregate)
	byTeam := make(map[int]*[2]domain.Aggregate)

	dayEntry := func(d domain.Weekday) *[2]domain.Aggregate {
		e, ok := daily[d]
		if !ok {
			e = &[2]domain.Aggregate{}
			daily[d] = e
		}
		return e
	}
	teamEntry := func(t int) *[2]domain.Aggregate {
		e, ok := byTeam[t]
		if !ok {
			e = &[2]domain.Aggregate{}
			byTeam[t] = e
		}
		return e
	}

	for _, v := range visits {
		i := variantRank(v.Variant)
		dayEntry(v.Day)[i].SlotCount++
		teamEntry(v.TeamNumber)[i].SlotCount++
	}

	for _, s := range segments {
		i := variantRank(s.Variant)
		d := &dayEntry(s.Day)[i]
		d.TravelSamples = append(d.TravelSamples, s.Minutes)
		t := &teamEntry(s.TeamNumber)[i]
		t.TravelSamples = append(t.TravelSamples, s.Minutes)
	}

	out := domain.Aggregates{
		Daily:  make(map[domain.Weekday]domain.VariantAggregates, len(daily)),
		ByTeam: make(map[int]domain.VariantAggregates, len(byTeam)),
	}

	for _, d := range domain.Weekdays() {
		e, ok := daily[d]
		if !ok {
			continue
		}
		out.Days = append(out.Days, d)
		out.Daily[d] = domain.VariantAggregates{Original: finalize(e[0]), Optimized: finalize(e[1])}
	}

	for t, e := range byTeam {
		out.Teams = append(out.Teams, t)
		out.ByTeam[t] = domain.VariantAggregates{Original: finalize(e[0]), Optimized: finalize(e[1])}
	}
	slices.Sort(out.Teams)

	return out
}

func finalize(a domain.Aggregate) domain.Aggregate {
	slices.Sort(a.TravelSamples)
	a.TotalTravelMinutes = 0
	for _, m := range a.TravelSamples {
		a.TotalTravelMinutes += m
	}
	return a
}
