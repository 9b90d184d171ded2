package source

import (
	"fmt"
	"path/filepath"
	"schedule-comparison-service/internal/domain"
	"schedule-comparison-service/internal/ports"
	"strings"
)

// Open picks the adapter for a configured schedule location: an http(s)
// URL, an .xlsx workbook or a CSV file.
func Open(location string, format domain.SourceFormat) (ports.ScheduleSource, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("open schedule source: location is empty")
	}

	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return NewHTTPSource(location, format)
	case strings.EqualFold(filepath.Ext(location), ".xlsx"):
		return NewXLSXFileSource(location, format), nil
	default:
		return NewCSVFileSource(location, format), nil
	}
}
