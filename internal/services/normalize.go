package services

import (
	"errors"
	"fmt"
	"math"
	"schedule-comparison-service/internal/domain"
	"strconv"
	"strings"
	"time"
)

// NormalizeStats reports what happened to the rows of one RowSet.
// Individual row failures are only ever visible through these counters.
type NormalizeStats struct {
	Format         domain.SourceFormat
	Rows           int
	Accepted       int
	Skipped        int
	MissingColumns []string
}

// Normalizer turns raw schedule rows into Visits.
//
// WeekStart is the Monday of the analysed week; compact rows only carry a day
// name, so their calendar date is WeekStart plus the day offset.
type Normalizer struct {
	WeekStart time.Time
}

func NewNormalizer(weekStart time.Time) Normalizer {
	return Normalizer{WeekStart: dateOnly(weekStart)}
}

var errBadRow = errors.New("bad row")

// Normalize parses every row of rs. Rows that cannot be parsed are skipped
// and counted; only an invalid format tag is returned as an error.
func (n Normalizer) Normalize(rs domain.RowSet) ([]domain.Visit, NormalizeStats, error) {
	format := rs.Format
	if format == "" || format == domain.AutoFormat {
		format = domain.DetectFormat(rs.Header)
	}

	schema, err := domain.SchemaFor(format)
	if err != nil {
		return nil, NormalizeStats{}, fmt.Errorf("normalize %s rows: %w", rs.Variant, err)
	}

	// Column positions are resolved once per row set and reused for every row.
	cols, missing := schema.Resolve(rs.Header)

	stats := NormalizeStats{Format: format, Rows: len(rs.Rows)}
	for _, f := range missing {
		stats.MissingColumns = append(stats.MissingColumns, f.String())
	}

	visits := make([]domain.Visit, 0, len(rs.Rows))
	for _, record := range rs.Rows {
		if len(missing) > 0 || isBlank(record) {
			stats.Skipped++
			continue
		}

		var (
			v   domain.Visit
			err error
		)
		switch format {
		case domain.VerboseFormat:
			v, err = n.parseVerbose(record, cols)
		default:
			v, err = n.parseCompact(record, cols)
		}
		if err != nil {
			stats.Skipped++
			continue
		}

		v.Variant = rs.Variant
		visits = append(visits, v)
	}

	stats.Accepted = len(visits)
	return visits, stats, nil
}

func (n Normalizer) parseCompact(record []string, cols domain.ColumnMap) (domain.Visit, error) {
	day, ok := domain.ParseWeekday(getValue(record, cols.Index(domain.FieldDay)))
	if !ok {
		return domain.Visit{}, errBadRow
	}

	start, err := domain.ParseTimeOfDay(getValue(record, cols.Index(domain.FieldStart)))
	if err != nil {
		return domain.Visit{}, errBadRow
	}
	end, err := domain.ParseTimeOfDay(getValue(record, cols.Index(domain.FieldEnd)))
	if err != nil {
		return domain.Visit{}, errBadRow
	}

	v, err := parseCommon(record, cols)
	if err != nil {
		return domain.Visit{}, err
	}

	v.Day = day
	v.Date = n.WeekStart.AddDate(0, 0, day.Index())
	v.Start = start
	v.End = end
	if v.End < v.Start {
		return domain.Visit{}, errBadRow
	}
	return v, nil
}

func (n Normalizer) parseVerbose(record []string, cols domain.ColumnMap) (domain.Visit, error) {
	startTS, err := parseTimestamp(getValue(record, cols.Index(domain.FieldStart)))
	if err != nil {
		return domain.Visit{}, errBadRow
	}
	endTS, err := parseTimestamp(getValue(record, cols.Index(domain.FieldEnd)))
	if err != nil {
		return domain.Visit{}, errBadRow
	}

	date := dateOnly(startTS)
	if !dateOnly(endTS).Equal(date) {
		return domain.Visit{}, errBadRow
	}

	// An explicit day column must agree with the timestamp.
	day := domain.WeekdayOf(date)
	if raw := getValue(record, cols.Index(domain.FieldDay)); raw != "" {
		d, ok := domain.ParseWeekday(raw)
		if !ok || d != day {
			return domain.Visit{}, errBadRow
		}
	}

	v, err := parseCommon(record, cols)
	if err != nil {
		return domain.Visit{}, err
	}

	v.Day = day
	v.Date = date
	v.Start = domain.TimeOfDayFrom(startTS)
	v.End = domain.TimeOfDayFrom(endTS)
	if v.End < v.Start {
		return domain.Visit{}, errBadRow
	}
	return v, nil
}

// parseCommon reads the fields both layouts share.
func parseCommon(record []string, cols domain.ColumnMap) (domain.Visit, error) {
	customer, err := parseInt(strings.TrimPrefix(getValue(record, cols.Index(domain.FieldCustomerID)), "Customer_"))
	if err != nil {
		return domain.Visit{}, errBadRow
	}
	team, err := parseInt(getValue(record, cols.Index(domain.FieldTeamNumber)))
	if err != nil {
		return domain.Visit{}, errBadRow
	}
	duration, err := parseInt(getValue(record, cols.Index(domain.FieldDuration)))
	if err != nil || duration < 0 {
		return domain.Visit{}, errBadRow
	}

	return domain.Visit{
		CustomerID:      customer,
		TeamNumber:      team,
		DurationMinutes: duration,
		Address:         getValue(record, cols.Index(domain.FieldAddress)),
		City:            getValue(record, cols.Index(domain.FieldCity)),
	}, nil
}

// parseInt accepts plain integers and integral floats ("3.0") as written by
// spreadsheet and dataframe exports. Missing-value markers are rejected.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "null", "none", "na", "n/a":
		return 0, fmt.Errorf("parse int: missing value %q", s)
	}

	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse int %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("parse int %q: not an integer", s)
	}
	// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
	if f < math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("parse int %q: out of range", s)
	}
	return int(f), nil
}

// The parser accepts an optional fractional second after the seconds field
// even though the layouts do not spell it out.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("parse timestamp: empty value")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp: unsupported format %q", s)
}

func getValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func dateOnly(value time.Time) time.Time {
	if value.IsZero() {
		return value
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
