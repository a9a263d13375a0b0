package xgboost

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two stumps over named features: x < 5 and y < 0.5.
const regressorDoc = `{
	"objective": "reg:squarederror",
	"base_score": 0.5,
	"feature_names": ["x", "y"],
	"trees": [
		{"nodeid": 0, "depth": 0, "split": "x", "split_condition": 5, "yes": 1, "no": 2, "missing": 2,
		 "children": [{"nodeid": 1, "leaf": 1.0}, {"nodeid": 2, "leaf": 3.0}]},
		{"nodeid": 0, "depth": 0, "split": "f1", "split_condition": 0.5, "yes": 1, "no": 2, "missing": 1,
		 "children": [{"nodeid": 1, "leaf": -0.25}, {"nodeid": 2, "leaf": 0.25}]}
	]
}`

func TestRegressor_Predict(t *testing.T) {
	b, err := Decode([]byte(regressorDoc))
	require.NoError(t, err)
	r, err := NewRegressor(b)
	require.NoError(t, err)

	tests := []struct {
		name string
		x    []float64
		want float64
	}{
		{"both yes", []float64{1, 0}, 0.5 + 1.0 - 0.25},
		{"both no", []float64{7, 1}, 0.5 + 3.0 + 0.25},
		{"threshold goes no", []float64{5, 0.5}, 0.5 + 3.0 + 0.25},
		{"rounds to threshold in float32", []float64{4.9999999999, 0.5}, 0.5 + 3.0 + 0.25},
		{"just below threshold in float32", []float64{4.999999, 0.4999999}, 0.5 + 1.0 - 0.25},
		{"missing follows missing branch", []float64{math.NaN(), math.NaN()}, 0.5 + 3.0 - 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Predict(tt.x)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestRegressor_WrongWidth(t *testing.T) {
	b, err := Decode([]byte(regressorDoc))
	require.NoError(t, err)
	r, err := NewRegressor(b)
	require.NoError(t, err)

	_, err = r.Predict([]float64{1})
	assert.Error(t, err)
}

// Three classes, one round: each class has a single stump on f0.
const softmaxDoc = `{
	"objective": "multi:softprob",
	"num_class": 3,
	"trees": [
		{"nodeid": 0, "split": "f0", "split_condition": 1, "yes": 1, "no": 2,
		 "children": [{"nodeid": 1, "leaf": 2.0}, {"nodeid": 2, "leaf": -1.0}]},
		{"nodeid": 0, "split": "f0", "split_condition": 2, "yes": 1, "no": 2,
		 "children": [{"nodeid": 1, "leaf": 0.5}, {"nodeid": 2, "leaf": -1.0}]},
		{"nodeid": 0, "split": "f0", "split_condition": 2, "yes": 1, "no": 2,
		 "children": [{"nodeid": 1, "leaf": -1.0}, {"nodeid": 2, "leaf": 1.5}]}
	]
}`

func TestClassifier_Softmax(t *testing.T) {
	b, err := Decode([]byte(softmaxDoc))
	require.NoError(t, err)
	c, err := NewClassifier(b)
	require.NoError(t, err)

	for x, want := range map[float64]int{0: 0, 1.5: 1, 3: 2} {
		got, err := c.Predict([]float64{x})
		require.NoError(t, err)
		assert.Equal(t, want, got, "x=%v", x)
	}
	assert.Nil(t, c.FeatureNames())
}

func TestClassifier_Binary(t *testing.T) {
	doc := `{
		"objective": "binary:logistic",
		"base_score": 0.5,
		"trees": [{"nodeid": 0, "split": "f0", "split_condition": 0, "yes": 1, "no": 2,
			"children": [{"nodeid": 1, "leaf": -0.7}, {"nodeid": 2, "leaf": 0.7}]}]
	}`
	b, err := Decode([]byte(doc))
	require.NoError(t, err)
	c, err := NewClassifier(b)
	require.NoError(t, err)

	got, err := c.Predict([]float64{-1})
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = c.Predict([]float64{1})
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestNewRegressor_RejectsClassifier(t *testing.T) {
	b, err := Decode([]byte(softmaxDoc))
	require.NoError(t, err)

	_, err = NewRegressor(b)
	assert.ErrorIs(t, err, ErrUnsupportedObjective)
}

func TestNewClassifier_RejectsRegressor(t *testing.T) {
	b, err := Decode([]byte(regressorDoc))
	require.NoError(t, err)

	_, err = NewClassifier(b)
	assert.ErrorIs(t, err, ErrUnsupportedObjective)
}

func TestDecode_Invalid(t *testing.T) {
	tests := map[string]struct {
		doc  string
		want error
	}{
		"not json":             {`[`, ErrInvalidModel},
		"no trees":             {`{"objective": "reg:squarederror", "trees": []}`, ErrInvalidModel},
		"unknown objective":    {`{"objective": "rank:pairwise", "trees": [{"nodeid": 0, "leaf": 1}]}`, ErrUnsupportedObjective},
		"softmax no classes":   {`{"objective": "multi:softmax", "trees": [{"nodeid": 0, "leaf": 1}]}`, ErrInvalidModel},
		"uneven class trees":   {`{"objective": "multi:softmax", "num_class": 2, "trees": [{"nodeid": 0, "leaf": 1}]}`, ErrInvalidModel},
		"unknown split":        {`{"trees": [{"nodeid": 0, "split": "z", "split_condition": 1, "yes": 1, "no": 2, "children": [{"nodeid": 1, "leaf": 0}, {"nodeid": 2, "leaf": 0}]}]}`, ErrInvalidModel},
		"dangling child":       {`{"trees": [{"nodeid": 0, "split": "f0", "split_condition": 1, "yes": 1, "no": 5, "children": [{"nodeid": 1, "leaf": 0}, {"nodeid": 2, "leaf": 0}]}]}`, ErrInvalidModel},
		"gap in node ids":      {`{"trees": [{"nodeid": 0, "split": "f0", "split_condition": 1, "yes": 1, "no": 3, "children": [{"nodeid": 1, "leaf": 0}, {"nodeid": 3, "leaf": 0}]}]}`, ErrInvalidModel},
		"feature beyond names": {`{"feature_names": ["a"], "trees": [{"nodeid": 0, "split": "f3", "split_condition": 1, "yes": 1, "no": 2, "children": [{"nodeid": 1, "leaf": 0}, {"nodeid": 2, "leaf": 0}]}]}`, ErrInvalidModel},
		"binary bad base":      {`{"objective": "binary:logistic", "base_score": 1, "trees": [{"nodeid": 0, "leaf": 1}]}`, ErrInvalidModel},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecode_DefaultsToSquaredError(t *testing.T) {
	b, err := Decode([]byte(`{"trees": [{"nodeid": 0, "leaf": 2}]}`))
	require.NoError(t, err)
	assert.Equal(t, ObjectiveSquaredError, b.Objective())

	r, err := NewRegressor(b)
	require.NoError(t, err)
	got, err := r.Predict(nil)
	require.NoError(t, err)
	assert.Equal(t, 2.5, got)
}
