// Package artifact resolves artifact locations to bytes and decodes them
// into the scalers and models the pipelines run.
package artifact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"prediction-service/internal/adapters/secondary/sklearn"
	"prediction-service/internal/adapters/secondary/xgboost"
	ports "prediction-service/internal/core/ports/output"
)

const SchemeFile = "file"

var ErrUnknownScheme = errors.New("no artifact source for location scheme")

type loader struct {
	sources map[string]ports.ArtifactSource
}

// NewLoader creates an ArtifactLoader. Locations without a scheme are read
// through the "file" source.
func NewLoader(sources map[string]ports.ArtifactSource) ports.ArtifactLoader {
	copied := make(map[string]ports.ArtifactSource, len(sources))
	for scheme, src := range sources {
		copied[scheme] = src
	}
	return &loader{sources: copied}
}

// Scheme returns the scheme of location, defaulting to "file".
func Scheme(location string) string {
	if i := strings.Index(location, "://"); i > 0 {
		return location[:i]
	}
	return SchemeFile
}

func (l *loader) read(ctx context.Context, location string) ([]byte, error) {
	scheme := Scheme(location)
	src, ok := l.sources[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	raw, err := src.Read(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", location, err)
	}
	return raw, nil
}

type bundleDocument struct {
	Model  json.RawMessage `json:"model"`
	Scaler json.RawMessage `json:"scaler"`
}

func (l *loader) LoadClassifierBundle(ctx context.Context, location string) (ports.Predictor[int], ports.Scaler, error) {
	raw, err := l.read(ctx, location)
	if err != nil {
		return nil, nil, err
	}

	var doc bundleDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode classifier bundle: %w", err)
	}
	if len(doc.Model) == 0 || len(doc.Scaler) == 0 {
		return nil, nil, fmt.Errorf("decode classifier bundle: both model and scaler are required")
	}

	booster, err := xgboost.Decode(doc.Model)
	if err != nil {
		return nil, nil, fmt.Errorf("decode classifier model: %w", err)
	}
	classifier, err := xgboost.NewClassifier(booster)
	if err != nil {
		return nil, nil, fmt.Errorf("decode classifier model: %w", err)
	}
	scaler, err := sklearn.Decode(doc.Scaler)
	if err != nil {
		return nil, nil, fmt.Errorf("decode classifier scaler: %w", err)
	}
	log.WithContext(ctx).WithFields(log.Fields{
		"location":  location,
		"objective": booster.Objective(),
		"scaler":    scaler.Kind(),
	}).Debug("decoded classifier bundle")
	return classifier, scaler, nil
}

func (l *loader) LoadRegressor(ctx context.Context, location string) (ports.Predictor[float64], error) {
	raw, err := l.read(ctx, location)
	if err != nil {
		return nil, err
	}
	booster, err := xgboost.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode regressor: %w", err)
	}
	regressor, err := xgboost.NewRegressor(booster)
	if err != nil {
		return nil, fmt.Errorf("decode regressor: %w", err)
	}
	log.WithContext(ctx).WithFields(log.Fields{
		"location":  location,
		"objective": booster.Objective(),
	}).Debug("decoded regressor")
	return regressor, nil
}

func (l *loader) LoadScaler(ctx context.Context, location string) (ports.Scaler, error) {
	raw, err := l.read(ctx, location)
	if err != nil {
		return nil, err
	}
	scaler, err := sklearn.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode scaler: %w", err)
	}
	log.WithContext(ctx).WithFields(log.Fields{
		"location": location,
		"scaler":   scaler.Kind(),
	}).Debug("decoded scaler")
	return scaler, nil
}
