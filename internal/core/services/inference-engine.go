package services

import (
	"fmt"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

// Infer runs model on a normalized row and returns its raw output.
func Infer[O any](row *domain.FeatureRow, model Artifact[ports.Predictor[O]]) (O, error) {
	var zero O

	m, err := model.Get()
	if err != nil {
		return zero, err
	}

	out, err := m.Predict(row.Values())
	if err != nil {
		return zero, fmt.Errorf("%w: %v", domain.ErrInferenceFailed, err)
	}
	return out, nil
}
