package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"prediction-service/internal/core/domain"
	ports "prediction-service/internal/core/ports/output"
)

// MockProductRecordSource is a mock of ProductRecordSource.
type MockProductRecordSource struct {
	mock.Mock
}

func (m *MockProductRecordSource) GetByID(ctx context.Context, id int64) (*domain.ProductRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductRecord), args.Error(1)
}

func (m *MockProductRecordSource) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProductRecordSource) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockArtifactLoader is a mock of ArtifactLoader.
type MockArtifactLoader struct {
	mock.Mock
}

func (m *MockArtifactLoader) LoadClassifierBundle(ctx context.Context, location string) (ports.Predictor[int], ports.Scaler, error) {
	args := m.Called(ctx, location)
	var model ports.Predictor[int]
	var scaler ports.Scaler
	if v := args.Get(0); v != nil {
		model = v.(ports.Predictor[int])
	}
	if v := args.Get(1); v != nil {
		scaler = v.(ports.Scaler)
	}
	return model, scaler, args.Error(2)
}

func (m *MockArtifactLoader) LoadRegressor(ctx context.Context, location string) (ports.Predictor[float64], error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.Predictor[float64]), args.Error(1)
}

func (m *MockArtifactLoader) LoadScaler(ctx context.Context, location string) (ports.Scaler, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.Scaler), args.Error(1)
}

// MockClassifier is a mock Predictor[int].
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Predict(features []float64) (int, error) {
	args := m.Called(features)
	return args.Int(0), args.Error(1)
}

func (m *MockClassifier) FeatureNames() []string {
	return nil
}

// MockRegressor is a mock Predictor[float64].
type MockRegressor struct {
	mock.Mock
}

func (m *MockRegressor) Predict(features []float64) (float64, error) {
	args := m.Called(features)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRegressor) FeatureNames() []string {
	return nil
}

// MockScaler is a mock Scaler.
type MockScaler struct {
	mock.Mock
}

func (m *MockScaler) Transform(values []float64) ([]float64, error) {
	args := m.Called(values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockScaler) FeatureNames() []string {
	return nil
}

// LinearModel is a deterministic regressor: the dot product of weights and
// features plus bias.
type LinearModel struct {
	Weights []float64
	Bias    float64
	Names   []string
}

func (l LinearModel) Predict(features []float64) (float64, error) {
	sum := l.Bias
	for i, w := range l.Weights {
		sum += w * features[i]
	}
	return sum, nil
}

func (l LinearModel) FeatureNames() []string {
	return l.Names
}

// IdentityScaler returns its input unchanged.
type IdentityScaler struct {
	Names []string
}

func (s IdentityScaler) Transform(values []float64) ([]float64, error) {
	out := make([]float64, len(values))
	copy(out, values)
	return out, nil
}

func (s IdentityScaler) FeatureNames() []string {
	return s.Names
}
