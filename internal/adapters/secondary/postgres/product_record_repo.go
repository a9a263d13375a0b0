package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

type productRecordRepo struct {
	pool *pgxpool.Pool
}

// NewProductRecordRepository creates a ProductRecordSource backed by the
// product table.
func NewProductRecordRepository(pool *pgxpool.Pool) ports.ProductRecordSource {
	return &productRecordRepo{pool: pool}
}

// Only the classifier's feature columns are selected.
const selectProductRecord = `
	SELECT id,
		"Product_Name"::float8, "Product_Price"::float8, "Quantity"::float8,
		"Total"::float8, "Month"::float8, "Quantity_Monthly"::float8,
		"Day"::float8, "Year"::float8
	FROM product
	WHERE id = $1
`

func (r *productRecordRepo) GetByID(ctx context.Context, id int64) (*domain.ProductRecord, error) {
	rec := &domain.ProductRecord{}
	err := r.pool.QueryRow(ctx, selectProductRecord, id).Scan(
		&rec.ID,
		&rec.ProductName, &rec.ProductPrice, &rec.Quantity,
		&rec.Total, &rec.Month, &rec.QuantityMonthly,
		&rec.Day, &rec.Year,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product record by id: %w", err)
	}
	return rec, nil
}

func (r *productRecordRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *productRecordRepo) Close() error {
	r.pool.Close()
	return nil
}
