package domain

import (
	"fmt"
	"strings"
)

// SourceFormat tags the column layout of a raw schedule export.
type SourceFormat string

const (
	// CompactFormat rows carry a day name and pre-formatted HH:MM start/end times.
	CompactFormat SourceFormat = "compact"
	// VerboseFormat rows come from the dispatch system export and carry full
	// "YYYY-MM-DD HH:MM:SS[.ffffff]" timestamps.
	VerboseFormat SourceFormat = "verbose"
	// AutoFormat defers the choice to header detection.
	AutoFormat SourceFormat = "auto"
)

// ParseSourceFormat validates a configured format tag.
func ParseSourceFormat(s string) (SourceFormat, error) {
	switch f := SourceFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case CompactFormat, VerboseFormat, AutoFormat:
		return f, nil
	case "":
		return AutoFormat, nil
	}
	return "", fmt.Errorf("parse source format %q: %w", s, ErrInvalidParameter)
}

// RowSet is an already-tokenized table handed over by a schedule source.
// Header may be nil, in which case the schema's positional order applies.
type RowSet struct {
	Format  SourceFormat
	Variant Variant
	Label   string
	Header  []string
	Rows    [][]string
}

// Field is a logical column of a schedule export.
type Field int

const (
	FieldDay Field = iota
	FieldCustomerID
	FieldTeamNumber
	FieldStart
	FieldEnd
	FieldDuration
	FieldAddress
	FieldCity
)

var fieldNames = [...]string{"day", "customer_id", "team_number", "start", "end", "duration", "address", "city"}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Column binds a logical field to the header names it may appear under.
type Column struct {
	Field    Field
	Aliases  []string
	Optional bool
}

// Schema is the named column layout of one SourceFormat. The order of
// Columns is the positional layout used for header-less row sets.
type Schema struct {
	Format  SourceFormat
	Columns []Column
}

// ColumnMap holds resolved column indices; -1 marks an absent column.
type ColumnMap map[Field]int

// Index returns the resolved position of f, or -1.
func (m ColumnMap) Index(f Field) int {
	if idx, ok := m[f]; ok {
		return idx
	}
	return -1
}

var compactSchema = Schema{
	Format: CompactFormat,
	Columns: []Column{
		{Field: FieldDay, Aliases: []string{"day_name", "day"}},
		{Field: FieldCustomerID, Aliases: []string{"customer_id", "customer"}},
		{Field: FieldTeamNumber, Aliases: []string{"team_number", "team"}},
		{Field: FieldStart, Aliases: []string{"start_time", "start"}},
		{Field: FieldEnd, Aliases: []string{"end_time", "end"}},
		{Field: FieldDuration, Aliases: []string{"service_duration_minutes", "duration_minutes", "duration"}},
		{Field: FieldAddress, Aliases: []string{"customer_address", "address"}, Optional: true},
		{Field: FieldCity, Aliases: []string{"customer_city", "city"}, Optional: true},
	},
}

var verboseSchema = Schema{
	Format: VerboseFormat,
	Columns: []Column{
		{Field: FieldCustomerID, Aliases: []string{"CustomerId"}},
		{Field: FieldTeamNumber, Aliases: []string{"TeamNumber"}},
		{Field: FieldDay, Aliases: []string{"DayName", "CleanDay", "DayOfWeek"}, Optional: true},
		{Field: FieldStart, Aliases: []string{"ScheduledStartTime", "ScheduledStart", "StartDateTime", "TimeIn"}},
		{Field: FieldEnd, Aliases: []string{"ScheduledEndTime", "ScheduledEnd", "EndDateTime", "TimeOut"}},
		{Field: FieldDuration, Aliases: []string{"DurationMinute", "DurationMinutes"}},
		{Field: FieldAddress, Aliases: []string{"Address1", "Address"}, Optional: true},
		{Field: FieldCity, Aliases: []string{"City"}, Optional: true},
	},
}

// SchemaFor returns the named schema of a concrete format.
func SchemaFor(f SourceFormat) (Schema, error) {
	switch f {
	case CompactFormat:
		return compactSchema, nil
	case VerboseFormat:
		return verboseSchema, nil
	}
	return Schema{}, fmt.Errorf("schema for %q: %w", f, ErrInvalidParameter)
}

// Resolve maps every column of the schema onto a header position. A nil
// header selects the positional layout. Missing required fields are returned
// so callers can report them; their index is -1.
func (s Schema) Resolve(header []string) (ColumnMap, []Field) {
	cols := make(ColumnMap, len(s.Columns))
	var missing []Field

	if header == nil {
		for i, c := range s.Columns {
			cols[c.Field] = i
		}
		return cols, nil
	}

	positions := normalizeHeaders(header)
	for _, c := range s.Columns {
		idx := -1
		for _, alias := range c.Aliases {
			if i, ok := positions[NormalizeHeader(alias)]; ok {
				idx = i
				break
			}
		}
		cols[c.Field] = idx
		if idx < 0 && !c.Optional {
			missing = append(missing, c.Field)
		}
	}
	return cols, missing
}

// score counts the schema aliases present in a normalized header.
func (s Schema) score(positions map[string]int) int {
	n := 0
	for _, c := range s.Columns {
		for _, alias := range c.Aliases {
			if _, ok := positions[NormalizeHeader(alias)]; ok {
				n++
				break
			}
		}
	}
	return n
}

// DetectFormat picks the schema that matches more of the header. Header-less
// input and ties fall back to the compact layout.
func DetectFormat(header []string) SourceFormat {
	if len(header) == 0 {
		return CompactFormat
	}
	positions := normalizeHeaders(header)
	if verboseSchema.score(positions) > compactSchema.score(positions) {
		return VerboseFormat
	}
	return CompactFormat
}

// NormalizeHeader folds case and drops separators so "Customer_Id",
// "customer id" and "CustomerId" compare equal.
func NormalizeHeader(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.ReplaceAll(value, " ", "")
	value = strings.ReplaceAll(value, "_", "")
	value = strings.ReplaceAll(value, "-", "")
	return value
}

func normalizeHeaders(headers []string) map[string]int {
	result := make(map[string]int, len(headers))
	for idx, header := range headers {
		normalized := NormalizeHeader(header)
		if _, exists := result[normalized]; !exists {
			result[normalized] = idx
		}
	}
	return result
}
