package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseWeekday(t *testing.T) {
	tests := map[string]Weekday{
		"Monday": Monday,
		"tue":    Tuesday,
		" WED ":  Wednesday,
		"Thurs":  Thursday,
		"friday": Friday,
		"SAT":    Saturday,
		"sunday": Sunday,
	}
	for in, want := range tests {
		got, ok := ParseWeekday(in)
		if !ok || got != want {
			t.Errorf("ParseWeekday(%q) = %q, %v, want %q", in, got, ok, want)
		}
	}

	if _, ok := ParseWeekday("funday"); ok {
		t.Fatalf("ParseWeekday accepted an unknown day")
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2025-07-07 is a Monday.
	monday := time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)
	for i, want := range Weekdays() {
		if got := WeekdayOf(monday.AddDate(0, 0, i)); got != want {
			t.Errorf("WeekdayOf(+%d) = %q, want %q", i, got, want)
		}
	}
}

func TestWeekdayLabel(t *testing.T) {
	if got := Tuesday.Label(); got != "Tue" {
		t.Fatalf("Tuesday.Label() = %q, want Tue", got)
	}
	if got := Sunday.Index(); got != 6 {
		t.Fatalf("Sunday.Index() = %d, want 6", got)
	}
	if got := Weekday("xyz").Index(); got != -1 {
		t.Fatalf("invalid Index() = %d, want -1", got)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("09:35")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != TimeOfDay(9*3600+35*60) {
		t.Fatalf("ParseTimeOfDay(09:35) = %d", got)
	}
	if got.String() != "09:35" {
		t.Fatalf("String() = %q, want 09:35", got.String())
	}

	withSeconds, err := ParseTimeOfDay("7:05:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if withSeconds != TimeOfDay(7*3600+5*60+30) {
		t.Fatalf("ParseTimeOfDay(7:05:30) = %d", withSeconds)
	}

	if _, err := ParseTimeOfDay("nine"); err == nil {
		t.Fatalf("expected error for unparseable time")
	}
}

func TestMinutesUntil(t *testing.T) {
	a := TimeOfDay(8*3600 + 15*60)
	b := TimeOfDay(9*3600 + 10*60)
	if got := a.MinutesUntil(b); got != 55 {
		t.Fatalf("MinutesUntil = %v, want 55", got)
	}
	if got := b.MinutesUntil(a); got != -55 {
		t.Fatalf("MinutesUntil reversed = %v, want -55", got)
	}
}

func TestParseVariant(t *testing.T) {
	if v, err := ParseVariant("Optimized"); err != nil || v != VariantOptimized {
		t.Fatalf("ParseVariant(Optimized) = %q, %v", v, err)
	}
	if _, err := ParseVariant("draft"); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("ParseVariant(draft) err = %v, want ErrInvalidParameter", err)
	}
}
