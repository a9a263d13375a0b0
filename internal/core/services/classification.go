package services

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

// ClassificationService predicts a product's demand category from its
// stored sales record.
type ClassificationService struct {
	records    ports.ProductRecordSource
	artifacts  *ArtifactStore
	categories domain.LabelMap[int]
	products   domain.LabelMap[int]
}

func NewClassificationService(
	records ports.ProductRecordSource,
	artifacts *ArtifactStore,
	categories domain.LabelMap[int],
	products domain.LabelMap[int],
) *ClassificationService {
	return &ClassificationService{
		records:    records,
		artifacts:  artifacts,
		categories: categories,
		products:   products,
	}
}

func (s *ClassificationService) PredictFromRecord(ctx context.Context, productID int64) (*domain.CategoryPrediction, error) {
	logger := log.WithContext(ctx).WithField("product_id", productID)

	record, err := s.records.GetByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			logger.WithError(err).Error("fetch product record failed")
		}
		return nil, err
	}

	row, err := Align(record.Features(), domain.ProductColumns)
	if err != nil {
		logger.WithError(err).Error("product features do not match classifier columns")
		return nil, err
	}
	// Captured before scaling: the display name is decoded from the raw code.
	productCode, _ := row.Get(domain.ColProductName)
	logger.WithField("features", row.Map()).Debug("assembled product features")

	if _, err := Normalize(row, s.artifacts.ClassifierScaler); err != nil {
		logger.WithError(err).Error("normalize product features failed")
		return nil, err
	}
	logger.WithField("features", row.Map()).Debug("normalized product features")

	classCode, err := Infer(row, s.artifacts.ClassifierModel)
	if err != nil {
		logger.WithError(err).Error("classify product failed")
		return nil, err
	}

	result := TranslateCategory(classCode, productCode, s.categories, s.products)
	return &result, nil
}
