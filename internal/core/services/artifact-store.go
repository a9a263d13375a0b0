package services

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

var errNoLocation = errors.New("no location configured")

// Artifact holds one loaded artifact, or the error that kept it from loading.
type Artifact[T any] struct {
	name     string
	location string
	value    T
	err      error
}

func Available[T any](name, location string, value T) Artifact[T] {
	return Artifact[T]{name: name, location: location, value: value}
}

func Unavailable[T any](name, location string, err error) Artifact[T] {
	if err == nil {
		err = errNoLocation
	}
	return Artifact[T]{name: name, location: location, err: err}
}

// Get returns the artifact, or an error wrapping domain.ErrArtifactUnavailable
// and the original load error.
func (a Artifact[T]) Get() (T, error) {
	if a.err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %w", domain.ErrArtifactUnavailable, a.name, a.err)
	}
	return a.value, nil
}

func (a Artifact[T]) Name() string     { return a.name }
func (a Artifact[T]) Location() string { return a.location }
func (a Artifact[T]) Err() error       { return a.err }

type ArtifactLocations struct {
	ClassifierBundle string
	RegressorModel   string
	RegressorScaler  string
}

// Files returns every configured location, for callers that watch them.
func (l ArtifactLocations) Files() []string {
	var out []string
	for _, loc := range []string{l.ClassifierBundle, l.RegressorModel, l.RegressorScaler} {
		if loc != "" {
			out = append(out, loc)
		}
	}
	return out
}

// ArtifactStore holds every model and scaler for the life of the process.
// It is built once before serving and never mutated afterwards.
type ArtifactStore struct {
	ClassifierModel  Artifact[ports.Predictor[int]]
	ClassifierScaler Artifact[ports.Scaler]
	RegressorModel   Artifact[ports.Predictor[float64]]
	RegressorScaler  Artifact[ports.Scaler]
}

type ArtifactStatus struct {
	Name      string
	Location  string
	Available bool
	Error     string
}

const (
	artifactClassifierModel  = "classifier model"
	artifactClassifierScaler = "classifier scaler"
	artifactRegressorModel   = "regressor model"
	artifactRegressorScaler  = "regressor scaler"
)

// LoadArtifacts loads every artifact. A failed load is logged and stored as
// unavailable; it never fails the whole store.
func LoadArtifacts(ctx context.Context, loader ports.ArtifactLoader, loc ArtifactLocations) *ArtifactStore {
	store := &ArtifactStore{}

	if loc.ClassifierBundle == "" {
		store.ClassifierModel = Unavailable[ports.Predictor[int]](artifactClassifierModel, "", errNoLocation)
		store.ClassifierScaler = Unavailable[ports.Scaler](artifactClassifierScaler, "", errNoLocation)
	} else {
		model, scaler, err := loader.LoadClassifierBundle(ctx, loc.ClassifierBundle)
		if err == nil {
			err = errors.Join(
				checkColumns(model.FeatureNames(), domain.ProductColumns),
				checkColumns(scaler.FeatureNames(), domain.ProductColumns),
			)
		}
		if err != nil {
			store.ClassifierModel = Unavailable[ports.Predictor[int]](artifactClassifierModel, loc.ClassifierBundle, err)
			store.ClassifierScaler = Unavailable[ports.Scaler](artifactClassifierScaler, loc.ClassifierBundle, err)
		} else {
			store.ClassifierModel = Available(artifactClassifierModel, loc.ClassifierBundle, model)
			store.ClassifierScaler = Available(artifactClassifierScaler, loc.ClassifierBundle, scaler)
		}
	}

	store.RegressorModel = loadOne(artifactRegressorModel, loc.RegressorModel, func() (ports.Predictor[float64], error) {
		m, err := loader.LoadRegressor(ctx, loc.RegressorModel)
		if err != nil {
			return nil, err
		}
		return m, checkColumns(m.FeatureNames(), domain.CropColumns)
	})
	store.RegressorScaler = loadOne(artifactRegressorScaler, loc.RegressorScaler, func() (ports.Scaler, error) {
		s, err := loader.LoadScaler(ctx, loc.RegressorScaler)
		if err != nil {
			return nil, err
		}
		return s, checkColumns(s.FeatureNames(), domain.CropColumns)
	})

	for _, st := range store.Status() {
		entry := log.WithFields(log.Fields{"artifact": st.Name, "location": st.Location})
		if st.Available {
			entry.Info("artifact loaded")
		} else {
			entry.WithField("error", st.Error).Error("artifact load failed")
		}
	}

	return store
}

func loadOne[T any](name, location string, load func() (T, error)) Artifact[T] {
	if location == "" {
		return Unavailable[T](name, location, errNoLocation)
	}
	v, err := load()
	if err != nil {
		return Unavailable[T](name, location, err)
	}
	return Available(name, location, v)
}

// checkColumns rejects artifacts that declare feature names other than the
// expected columns. Artifacts that declare none are accepted.
func checkColumns(declared []string, expected domain.Columns) error {
	if len(declared) == 0 || expected.Equal(declared) {
		return nil
	}
	return fmt.Errorf("%w: artifact fitted on %v, expected %v", domain.ErrSchemaMismatch, declared, []string(expected))
}

// Status reports availability of every artifact.
func (s *ArtifactStore) Status() []ArtifactStatus {
	return []ArtifactStatus{
		statusOf(s.ClassifierModel),
		statusOf(s.ClassifierScaler),
		statusOf(s.RegressorModel),
		statusOf(s.RegressorScaler),
	}
}

func statusOf[T any](a Artifact[T]) ArtifactStatus {
	st := ArtifactStatus{Name: a.Name(), Location: a.Location(), Available: a.Err() == nil}
	if err := a.Err(); err != nil {
		st.Error = err.Error()
	}
	return st
}
