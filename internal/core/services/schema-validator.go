package services

import "prediction-service/internal/core/domain"

// Align checks row against expected and returns a copy ordered exactly as
// expected. Every missing and every unexpected column is reported at once.
func Align(row *domain.FeatureRow, expected domain.Columns) (*domain.FeatureRow, error) {
	var missing, extra []string
	for _, col := range expected {
		if !row.Has(col) {
			missing = append(missing, col)
		}
	}

	want := make(map[string]struct{}, len(expected))
	for _, col := range expected {
		want[col] = struct{}{}
	}
	for _, col := range row.Columns() {
		if _, ok := want[col]; !ok {
			extra = append(extra, col)
		}
	}

	if len(missing) > 0 || len(extra) > 0 {
		return nil, &domain.SchemaError{Missing: missing, Extra: extra}
	}

	aligned := domain.NewFeatureRow()
	for _, col := range expected {
		v, _ := row.Get(col)
		aligned.Set(col, v)
	}
	return aligned, nil
}
