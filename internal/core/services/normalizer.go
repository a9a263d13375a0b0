package services

import (
	"fmt"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

// Normalize rescales an aligned row in place. Column names and order are kept.
func Normalize(row *domain.FeatureRow, scaler Artifact[ports.Scaler]) (*domain.FeatureRow, error) {
	s, err := scaler.Get()
	if err != nil {
		return nil, err
	}

	scaled, err := s.Transform(row.Values())
	if err != nil {
		return nil, fmt.Errorf("normalize features: %w", err)
	}
	if len(scaled) != row.Len() {
		return nil, fmt.Errorf("normalize features: scaler returned %d values for %d columns", len(scaled), row.Len())
	}

	row.Replace(scaled)
	return row, nil
}
