// Package sklearn decodes fitted scikit-learn scalers exported as JSON.
// Field names follow the fitted attributes of the Python estimators.
package sklearn

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	KindMinMax   = "minmax"
	KindStandard = "standard"
)

var ErrInvalidScaler = errors.New("invalid scaler document")

type scalerDocument struct {
	Kind         string    `json:"kind"`
	FeatureNames []string  `json:"feature_names_in_"`
	Min          []float64 `json:"min_"`
	Mean         []float64 `json:"mean_"`
	Scale        []float64 `json:"scale_"`
}

// Scaler applies a fitted per-column affine transform.
type Scaler struct {
	kind   string
	names  []string
	offset []float64
	scale  []float64
}

// Decode parses a scaler document.
//
// minmax applies x*scale_ + min_ (MinMaxScaler.transform).
// standard applies (x-mean_)/scale_ (StandardScaler.transform); a zero scale
// is treated as 1.
func Decode(raw []byte) (*Scaler, error) {
	var doc scalerDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScaler, err)
	}

	if len(doc.Scale) == 0 {
		return nil, fmt.Errorf("%w: scale_ is empty", ErrInvalidScaler)
	}
	if len(doc.FeatureNames) > 0 && len(doc.FeatureNames) != len(doc.Scale) {
		return nil, fmt.Errorf("%w: %d feature names for %d scale values", ErrInvalidScaler, len(doc.FeatureNames), len(doc.Scale))
	}

	s := &Scaler{kind: doc.Kind, names: doc.FeatureNames}
	switch doc.Kind {
	case KindMinMax:
		if len(doc.Min) != len(doc.Scale) {
			return nil, fmt.Errorf("%w: min_ has %d values, scale_ has %d", ErrInvalidScaler, len(doc.Min), len(doc.Scale))
		}
		s.offset = doc.Min
		s.scale = doc.Scale
	case KindStandard:
		if len(doc.Mean) != len(doc.Scale) {
			return nil, fmt.Errorf("%w: mean_ has %d values, scale_ has %d", ErrInvalidScaler, len(doc.Mean), len(doc.Scale))
		}
		s.offset = make([]float64, len(doc.Scale))
		s.scale = make([]float64, len(doc.Scale))
		for i := range doc.Scale {
			sc := doc.Scale[i]
			if sc == 0 {
				sc = 1
			}
			s.scale[i] = 1 / sc
			s.offset[i] = -doc.Mean[i] / sc
		}
	default:
		return nil, fmt.Errorf("%w: unsupported kind %q", ErrInvalidScaler, doc.Kind)
	}

	return s, nil
}

func (s *Scaler) Kind() string {
	return s.kind
}

func (s *Scaler) FeatureNames() []string {
	return s.names
}

func (s *Scaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.scale) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.scale), len(values))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v*s.scale[i] + s.offset[i]
	}
	return out, nil
}
