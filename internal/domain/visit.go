package domain

import (
	"fmt"
	"strings"
	"time"
)

// Variant identifies which of the two compared schedules a record belongs to.
type Variant string

const (
	VariantOriginal  Variant = "original"
	VariantOptimized Variant = "optimized"
)

// Variants returns both schedule variants in reporting order.
func Variants() []Variant { return []Variant{VariantOriginal, VariantOptimized} }

// ParseVariant maps a caller-supplied string onto a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantOriginal:
		return VariantOriginal, nil
	case VariantOptimized:
		return VariantOptimized, nil
	}
	return "", fmt.Errorf("parse variant %q: %w", s, ErrInvalidParameter)
}

// Weekday is the canonical lower-case day enumeration used across the engine.
// The zero value is invalid.
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

var weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Weekdays returns Monday..Sunday in calendar order.
func Weekdays() []Weekday {
	out := make([]Weekday, len(weekdays))
	copy(out, weekdays)
	return out
}

var dayAliases = map[string]Weekday{
	"mon": Monday, "monday": Monday,
	"tue": Tuesday, "tues": Tuesday, "tuesday": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday,
	"thu": Thursday, "thur": Thursday, "thurs": Thursday, "thursday": Thursday,
	"fri": Friday, "friday": Friday,
	"sat": Saturday, "saturday": Saturday,
	"sun": Sunday, "sunday": Sunday,
}

// ParseWeekday canonicalizes full names and abbreviations in any case.
func ParseWeekday(s string) (Weekday, bool) {
	d, ok := dayAliases[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// WeekdayOf maps a calendar date onto the engine's day enumeration.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday starts at Sunday.
	return weekdays[(int(t.Weekday())+6)%7]
}

// Index is the zero-based position of the day within a Monday-first week,
// or -1 for an invalid value.
func (d Weekday) Index() int {
	for i, w := range weekdays {
		if w == d {
			return i
		}
	}
	return -1
}

// Label renders the day as a presentation abbreviation ("Mon".."Sun").
func (d Weekday) Label() string {
	if d.Index() < 0 {
		return string(d)
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// TimeOfDay is a wall-clock time expressed in seconds since midnight.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
		}
	}
	return 0, fmt.Errorf("parse time of day %q: unsupported format", s)
}

// TimeOfDayFrom extracts the wall-clock component of a timestamp.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

// MinutesUntil returns the signed number of minutes from t to other.
func (t TimeOfDay) MinutesUntil(other TimeOfDay) float64 {
	return float64(other-t) / 60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/3600, (int(t)%3600)/60)
}

// Visit is one scheduled service stop of a team.
// A Visit belongs to exactly one variant and one day, and End is never before Start.
type Visit struct {
	CustomerID      int
	TeamNumber      int
	Day             Weekday
	Date            time.Time
	Start           TimeOfDay
	End             TimeOfDay
	DurationMinutes int
	Address         string
	City            string
	Variant         Variant
}
