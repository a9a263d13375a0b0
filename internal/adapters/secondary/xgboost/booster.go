// Package xgboost evaluates gradient-boosted tree ensembles exported from
// XGBoost as a JSON tree dump plus the metadata needed to turn leaf sums
// into predictions.
package xgboost

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

const (
	ObjectiveSquaredError  = "reg:squarederror"
	ObjectiveLinear        = "reg:linear"
	ObjectiveAbsoluteError = "reg:absoluteerror"
	ObjectiveSoftmax       = "multi:softmax"
	ObjectiveSoftprob      = "multi:softprob"
	ObjectiveBinary        = "binary:logistic"
)

const defaultBaseScore = 0.5

var (
	ErrInvalidModel         = errors.New("invalid model document")
	ErrUnsupportedObjective = errors.New("unsupported objective")
)

type modelDocument struct {
	Objective    string     `json:"objective"`
	BaseScore    *float64   `json:"base_score"`
	NumClass     int        `json:"num_class"`
	FeatureNames []string   `json:"feature_names"`
	Trees        []dumpNode `json:"trees"`
}

// Booster is a decoded tree ensemble.
type Booster struct {
	objective string
	baseScore float64
	numClass  int
	names     []string
	trees     []tree
}

func Decode(raw []byte) (*Booster, error) {
	var doc modelDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if len(doc.Trees) == 0 {
		return nil, fmt.Errorf("%w: no trees", ErrInvalidModel)
	}

	b := &Booster{
		objective: doc.Objective,
		baseScore: defaultBaseScore,
		numClass:  doc.NumClass,
		names:     doc.FeatureNames,
	}
	if b.objective == "" {
		b.objective = ObjectiveSquaredError
	}
	if doc.BaseScore != nil {
		b.baseScore = *doc.BaseScore
	}

	switch b.objective {
	case ObjectiveSoftmax, ObjectiveSoftprob:
		if b.numClass < 2 {
			return nil, fmt.Errorf("%w: %s needs num_class >= 2", ErrInvalidModel, b.objective)
		}
		if len(doc.Trees)%b.numClass != 0 {
			return nil, fmt.Errorf("%w: %d trees is not a multiple of %d classes", ErrInvalidModel, len(doc.Trees), b.numClass)
		}
	case ObjectiveBinary:
		if b.baseScore <= 0 || b.baseScore >= 1 {
			return nil, fmt.Errorf("%w: binary base_score must be in (0, 1)", ErrInvalidModel)
		}
	case ObjectiveSquaredError, ObjectiveLinear, ObjectiveAbsoluteError:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedObjective, b.objective)
	}

	index := make(map[string]int, len(doc.FeatureNames))
	for i, name := range doc.FeatureNames {
		index[name] = i
	}

	b.trees = make([]tree, 0, len(doc.Trees))
	for i, root := range doc.Trees {
		t, err := compileTree(root, index)
		if err != nil {
			return nil, fmt.Errorf("%w: tree %d: %v", ErrInvalidModel, i, err)
		}
		if len(b.names) > 0 && t.maxFeature() >= len(b.names) {
			return nil, fmt.Errorf("%w: tree %d splits on feature %d of %d", ErrInvalidModel, i, t.maxFeature(), len(b.names))
		}
		b.trees = append(b.trees, t)
	}

	return b, nil
}

func (b *Booster) Objective() string {
	return b.objective
}

func (b *Booster) FeatureNames() []string {
	return b.names
}

func (b *Booster) checkWidth(x []float64) error {
	if len(b.names) > 0 && len(x) != len(b.names) {
		return fmt.Errorf("model expects %d features, got %d", len(b.names), len(x))
	}
	return nil
}

// margins sums leaf values per output group. Tree i contributes to group
// i mod groups.
func (b *Booster) margins(x []float64, groups int, base float64) ([]float64, error) {
	if err := b.checkWidth(x); err != nil {
		return nil, err
	}
	out := make([]float64, groups)
	for g := range out {
		out[g] = base
	}
	for i, t := range b.trees {
		v, err := t.eval(x)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		out[i%groups] += v
	}
	return out, nil
}

func (b *Booster) isRegression() bool {
	switch b.objective {
	case ObjectiveSquaredError, ObjectiveLinear, ObjectiveAbsoluteError:
		return true
	}
	return false
}

// Regressor predicts a continuous score.
type Regressor struct {
	*Booster
}

func NewRegressor(b *Booster) (*Regressor, error) {
	if !b.isRegression() {
		return nil, fmt.Errorf("%w: %q is not a regression objective", ErrUnsupportedObjective, b.objective)
	}
	return &Regressor{Booster: b}, nil
}

func (r *Regressor) Predict(x []float64) (float64, error) {
	m, err := r.margins(x, 1, r.baseScore)
	if err != nil {
		return 0, err
	}
	return m[0], nil
}

// Classifier predicts a class code.
type Classifier struct {
	*Booster
}

func NewClassifier(b *Booster) (*Classifier, error) {
	if b.isRegression() {
		return nil, fmt.Errorf("%w: %q is not a classification objective", ErrUnsupportedObjective, b.objective)
	}
	return &Classifier{Booster: b}, nil
}

func (c *Classifier) Predict(x []float64) (int, error) {
	if c.objective == ObjectiveBinary {
		base := math.Log(c.baseScore / (1 - c.baseScore))
		m, err := c.margins(x, 1, base)
		if err != nil {
			return 0, err
		}
		if m[0] > 0 {
			return 1, nil
		}
		return 0, nil
	}

	m, err := c.margins(x, c.numClass, c.baseScore)
	if err != nil {
		return 0, err
	}
	best := 0
	for k := 1; k < len(m); k++ {
		if m[k] > m[best] {
			best = k
		}
	}
	return best, nil
}
