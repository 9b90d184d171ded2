package ports

import (
	"context"
	"schedule-comparison-service/internal/domain"
)

// Port: a boundary for reading normalized visits from a data store.
type VisitRepository interface {
	// Retrieve all visits of one schedule variant.
	ListVisits(ctx context.Context, variant domain.Variant) ([]domain.Visit, error)
}

// Optional extension of VisitRepository used by the import tool.
type VisitWriter interface {
	VisitRepository
	// Replace every stored visit of the variant with the given set.
	ReplaceVisits(ctx context.Context, variant domain.Variant, visits []domain.Visit) error
}
