package services

import (
	"math/rand"
	"reflect"
	"schedule-comparison-service/internal/domain"
	"testing"
)

func weekOfVisits() []domain.Visit {
	var out []domain.Visit
	for team := 1; team <= 3; team++ {
		for _, day := range []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday} {
			out = append(out,
				visit(domain.VariantOriginal, team*100+day.Index()*10+1, team, day, "08:00", "08:30"),
				visit(domain.VariantOriginal, team*100+day.Index()*10+2, team, day, "09:05", "09:30"),
				visit(domain.VariantOriginal, team*100+day.Index()*10+3, team, day, "10:12", "10:40"),
				visit(domain.VariantOptimized, team*100+day.Index()*10+1, team, day, "08:00", "08:30"),
				visit(domain.VariantOptimized, team*100+day.Index()*10+2, team, day, "08:40", "09:05"),
			)
		}
	}
	return out
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	visits := weekOfVisits()
	want := Aggregate(BuildSegments(visits), visits)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5; i++ {
		shuffled := append([]domain.Visit(nil), visits...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := Aggregate(BuildSegments(shuffled), shuffled)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("aggregates differ after shuffle #%d", i)
		}
	}
}

func TestAggregateSlotsCountVisits(t *testing.T) {
	visits := weekOfVisits()
	aggs := Aggregate(BuildSegments(visits), visits)

	mon := aggs.Daily[domain.Monday]
	if mon.Original.SlotCount != 9 || mon.Optimized.SlotCount != 6 {
		t.Fatalf("monday slots = %d/%d, want 9/6", mon.Original.SlotCount, mon.Optimized.SlotCount)
	}
	if len(mon.Original.TravelSamples) != 6 || len(mon.Optimized.TravelSamples) != 3 {
		t.Fatalf("monday samples = %d/%d, want 6/3", len(mon.Original.TravelSamples), len(mon.Optimized.TravelSamples))
	}
	// Three teams x (35 + 42) minutes.
	if mon.Original.TotalTravelMinutes != 231 {
		t.Fatalf("monday original total = %v, want 231", mon.Original.TotalTravelMinutes)
	}

	team2 := aggs.ByTeam[2]
	if team2.Original.SlotCount != 9 || team2.Optimized.TotalTravelMinutes != 30 {
		t.Fatalf("team 2 = %+v", team2)
	}
}

func TestAggregateKeysAreOrdered(t *testing.T) {
	visits := []domain.Visit{
		visit(domain.VariantOriginal, 1, 7, domain.Friday, "08:00", "08:10"),
		visit(domain.VariantOriginal, 2, 2, domain.Monday, "08:00", "08:10"),
		visit(domain.VariantOptimized, 3, 5, domain.Wednesday, "08:00", "08:10"),
	}

	aggs := Aggregate(nil, visits)
	if want := []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday}; !reflect.DeepEqual(aggs.Days, want) {
		t.Fatalf("days = %v, want %v", aggs.Days, want)
	}
	if want := []int{2, 5, 7}; !reflect.DeepEqual(aggs.Teams, want) {
		t.Fatalf("teams = %v, want %v", aggs.Teams, want)
	}
}
