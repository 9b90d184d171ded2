package ports

import (
	"context"
	"schedule-comparison-service/internal/domain"
)

// Contract for sharing the latest snapshot with other presentation processes.
type SnapshotPublisher interface {
	Publish(ctx context.Context, digest domain.SnapshotDigest) error
}
