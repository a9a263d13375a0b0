package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================================
// Pipeline Errors
// ============================================================================

var (
	ErrArtifactUnavailable = errors.New("artifact unavailable")
	ErrSchemaMismatch      = errors.New("feature schema mismatch")
	ErrInferenceFailed     = errors.New("inference failed")
	ErrInvalidInput        = errors.New("invalid input")
)

// ErrProductNotFound carries the exact message returned to API clients.
var ErrProductNotFound = errors.New("Produk tidak ditemukan di database")

// SchemaError lists every column that prevented a row from matching the
// columns a scaler/model pair was fitted on.
type SchemaError struct {
	Missing []string
	Extra   []string
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing columns in input data: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("unexpected columns in input data: %s", strings.Join(e.Extra, ", ")))
	}
	return strings.Join(parts, "; ")
}

func (e *SchemaError) Unwrap() error {
	return ErrSchemaMismatch
}
