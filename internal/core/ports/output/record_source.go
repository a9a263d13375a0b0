package ports

import (
	"context"

	"prediction-service/internal/core/domain"
)

// ProductRecordSource looks up product sales records.
type ProductRecordSource interface {
	// GetByID returns domain.ErrProductNotFound when no record has the id.
	GetByID(ctx context.Context, id int64) (*domain.ProductRecord, error)
	Ping(ctx context.Context) error
	Close() error
}
