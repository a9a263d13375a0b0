// Package sqlite provides a file-backed ProductRecordSource for local runs.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

type productRecordRepo struct {
	db *sql.DB
}

// Open opens the SQLite database at path. The product table must already
// exist.
func Open(path string) (ports.ProductRecordSource, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return NewProductRecordRepository(db), nil
}

func NewProductRecordRepository(db *sql.DB) ports.ProductRecordSource {
	return &productRecordRepo{db: db}
}

const selectProductRecord = `
	SELECT id,
		CAST(Product_Name AS REAL), CAST(Product_Price AS REAL), CAST(Quantity AS REAL),
		CAST(Total AS REAL), CAST(Month AS REAL), CAST(Quantity_Monthly AS REAL),
		CAST(Day AS REAL), CAST(Year AS REAL)
	FROM product
	WHERE id = ?
`

func (r *productRecordRepo) GetByID(ctx context.Context, id int64) (*domain.ProductRecord, error) {
	rec := &domain.ProductRecord{}
	err := r.db.QueryRowContext(ctx, selectProductRecord, id).Scan(
		&rec.ID,
		&rec.ProductName, &rec.ProductPrice, &rec.Quantity,
		&rec.Total, &rec.Month, &rec.QuantityMonthly,
		&rec.Day, &rec.Year,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product record by id: %w", err)
	}
	return rec, nil
}

func (r *productRecordRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *productRecordRepo) Close() error {
	return r.db.Close()
}
