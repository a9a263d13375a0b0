package services

import (
	"context"

	ports "prediction-service/internal/core/ports/output"
)

type HealthReport struct {
	DatabaseErr error
	Artifacts   []ArtifactStatus
}

// Degraded reports whether any artifact failed to load.
func (r *HealthReport) Degraded() bool {
	for _, a := range r.Artifacts {
		if !a.Available {
			return true
		}
	}
	return false
}

type HealthService struct {
	records   ports.ProductRecordSource
	artifacts *ArtifactStore
}

func NewHealthService(records ports.ProductRecordSource, artifacts *ArtifactStore) *HealthService {
	return &HealthService{records: records, artifacts: artifacts}
}

func (s *HealthService) Check(ctx context.Context) *HealthReport {
	return &HealthReport{
		DatabaseErr: s.records.Ping(ctx),
		Artifacts:   s.artifacts.Status(),
	}
}
