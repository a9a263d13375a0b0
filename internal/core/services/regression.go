package services

import (
	"context"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"prediction-service/internal/core/domain"
)

// RegressionService predicts crop yield from a caller-supplied payload.
type RegressionService struct {
	artifacts *ArtifactStore
	mapping   domain.ColumnMapping
}

func NewRegressionService(artifacts *ArtifactStore, mapping domain.ColumnMapping) *RegressionService {
	return &RegressionService{artifacts: artifacts, mapping: mapping}
}

// Predict renames the inbound columns, aligns them to the regressor's columns,
// scales, predicts and rounds to two decimals. row is consumed.
func (s *RegressionService) Predict(ctx context.Context, row *domain.FeatureRow) (*domain.YieldPrediction, error) {
	logger := log.WithContext(ctx)
	logger.WithField("input", row.Map()).Debug("crop input received")

	row.Rename(s.mapping)

	aligned, err := Align(row, domain.CropColumns)
	if err != nil {
		logger.WithError(err).Error("prediction error")
		return nil, err
	}

	if _, err := Normalize(aligned, s.artifacts.RegressorScaler); err != nil {
		logger.WithError(err).Error("prediction error")
		return nil, err
	}
	logger.WithField("features", aligned.Map()).Debug("normalized crop features")

	score, err := Infer(aligned, s.artifacts.RegressorModel)
	if err != nil {
		logger.WithError(err).Error("prediction error")
		return nil, err
	}
	rounded := RoundScore(score)
	if math.IsNaN(rounded) || math.IsInf(rounded, 0) {
		err := fmt.Errorf("%w: non-finite prediction %v", domain.ErrInferenceFailed, score)
		logger.WithError(err).Error("prediction error")
		return nil, err
	}

	return &domain.YieldPrediction{Prediction: rounded}, nil
}
