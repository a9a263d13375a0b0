package ports

import "context"

// Predictor is a pre-fitted model. O is the raw output type: an int class
// code for classifiers, a float64 score for regressors.
type Predictor[O any] interface {
	Predict(features []float64) (O, error)
	// FeatureNames returns the columns the model was fitted on, or nil when
	// the artifact does not declare them.
	FeatureNames() []string
}

// Scaler is a fitted per-column transform.
type Scaler interface {
	Transform(values []float64) ([]float64, error)
	FeatureNames() []string
}

// ArtifactLoader resolves an artifact location and decodes what it finds.
type ArtifactLoader interface {
	// LoadClassifierBundle loads a classifier and the scaler it was trained
	// with from one document.
	LoadClassifierBundle(ctx context.Context, location string) (Predictor[int], Scaler, error)
	LoadRegressor(ctx context.Context, location string) (Predictor[float64], error)
	LoadScaler(ctx context.Context, location string) (Scaler, error)
}

// ArtifactSource reads the raw bytes stored at a location.
type ArtifactSource interface {
	Read(ctx context.Context, location string) ([]byte, error)
}
