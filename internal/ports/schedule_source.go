package ports

import (
	"context"
	"schedule-comparison-service/internal/domain"
)

// Port: a boundary for reading one raw schedule export as tokenized rows.
type ScheduleSource interface {
	// Return the header (if any) and rows of the export.
	Fetch(ctx context.Context) (domain.RowSet, error)
	// Human-readable origin of the rows, used in logs and the run archive.
	Describe() string
}
