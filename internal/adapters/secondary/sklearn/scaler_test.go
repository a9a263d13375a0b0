package sklearn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_MinMax(t *testing.T) {
	// Fitted on column ranges [0, 10] and [100, 300].
	raw := []byte(`{
		"kind": "minmax",
		"feature_names_in_": ["a", "b"],
		"min_": [0, -0.5],
		"scale_": [0.1, 0.005]
	}`)

	s, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, KindMinMax, s.Kind())
	assert.Equal(t, []string{"a", "b"}, s.FeatureNames())

	out, err := s.Transform([]float64{5, 200})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, out, 1e-12)
}

func TestDecode_Standard(t *testing.T) {
	raw := []byte(`{"kind": "standard", "mean_": [10, 3], "scale_": [2, 0]}`)

	s, err := Decode(raw)
	require.NoError(t, err)
	assert.Nil(t, s.FeatureNames())

	out, err := s.Transform([]float64{14, 5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 2}, out, 1e-12)
}

func TestDecode_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":        `{`,
		"unknown kind":    `{"kind": "robust", "scale_": [1]}`,
		"empty scale":     `{"kind": "minmax", "min_": [], "scale_": []}`,
		"length mismatch": `{"kind": "minmax", "min_": [0], "scale_": [1, 2]}`,
		"names mismatch":  `{"kind": "minmax", "feature_names_in_": ["a"], "min_": [0, 0], "scale_": [1, 1]}`,
		"standard means":  `{"kind": "standard", "mean_": [0], "scale_": [1, 1]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(raw))
			assert.ErrorIs(t, err, ErrInvalidScaler)
		})
	}
}

func TestTransform_WrongWidth(t *testing.T) {
	s, err := Decode([]byte(`{"kind": "minmax", "min_": [0, 0], "scale_": [1, 1]}`))
	require.NoError(t, err)

	_, err = s.Transform([]float64{1})
	assert.Error(t, err)
}
