package ports

import (
	"context"
	"schedule-comparison-service/internal/domain"
)

// Contract for archiving successful snapshot builds.
type RunRecorder interface {
	RecordRun(ctx context.Context, run domain.LoadRun) error
}

// Contract for reading archived runs, newest first.
type RunLister interface {
	ListRuns(ctx context.Context, limit int) ([]domain.LoadRun, error)
}

// RunArchive is implemented by the SQL adapters.
type RunArchive interface {
	RunRecorder
	RunLister
}
