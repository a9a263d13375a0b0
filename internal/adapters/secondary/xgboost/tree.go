package xgboost

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// dumpNode is one node of an XGBoost JSON model dump
// (Booster.dump_model(..., dump_format="json")).
type dumpNode struct {
	NodeID         int        `json:"nodeid"`
	Split          string     `json:"split"`
	SplitCondition float64    `json:"split_condition"`
	Yes            int        `json:"yes"`
	No             int        `json:"no"`
	Missing        *int       `json:"missing"`
	Leaf           *float64   `json:"leaf"`
	Children       []dumpNode `json:"children"`
}

type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	yes       int
	no        int
	missing   int
}

// tree is a flattened regression tree indexed by node id.
type tree struct {
	nodes []treeNode
}

func compileTree(root dumpNode, features map[string]int) (tree, error) {
	byID := make(map[int]treeNode)
	maxID := 0

	var walk func(n dumpNode) error
	walk = func(n dumpNode) error {
		if _, dup := byID[n.NodeID]; dup {
			return fmt.Errorf("duplicate node id %d", n.NodeID)
		}
		if n.NodeID < 0 {
			return fmt.Errorf("negative node id %d", n.NodeID)
		}
		if n.NodeID > maxID {
			maxID = n.NodeID
		}

		if n.Leaf != nil {
			byID[n.NodeID] = treeNode{leaf: true, value: *n.Leaf}
			return nil
		}

		feature, err := resolveFeature(n.Split, features)
		if err != nil {
			return fmt.Errorf("node %d: %w", n.NodeID, err)
		}
		missing := n.Yes
		if n.Missing != nil {
			missing = *n.Missing
		}
		byID[n.NodeID] = treeNode{
			feature:   feature,
			threshold: n.SplitCondition,
			yes:       n.Yes,
			no:        n.No,
			missing:   missing,
		}
		for _, child := range n.Children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return tree{}, err
	}

	nodes := make([]treeNode, maxID+1)
	for id := 0; id <= maxID; id++ {
		n, ok := byID[id]
		if !ok {
			return tree{}, fmt.Errorf("node id %d referenced by the tree layout is missing", id)
		}
		nodes[id] = n
	}
	for id, n := range nodes {
		if n.leaf {
			continue
		}
		for _, next := range []int{n.yes, n.no, n.missing} {
			if next < 0 || next >= len(nodes) {
				return tree{}, fmt.Errorf("node %d points to unknown node %d", id, next)
			}
		}
	}
	return tree{nodes: nodes}, nil
}

// resolveFeature maps a split name to a column index. Splits use either a
// declared feature name or the positional form "f<index>".
func resolveFeature(split string, features map[string]int) (int, error) {
	if idx, ok := features[split]; ok {
		return idx, nil
	}
	if strings.HasPrefix(split, "f") {
		if idx, err := strconv.Atoi(split[1:]); err == nil && idx >= 0 {
			return idx, nil
		}
	}
	return 0, fmt.Errorf("unknown split feature %q", split)
}

// eval walks the tree for one row. A NaN value follows the missing branch.
// Splits compare in float32, the precision the booster was trained in.
func (t tree) eval(x []float64) (float64, error) {
	id := 0
	for steps := 0; steps <= len(t.nodes); steps++ {
		n := t.nodes[id]
		if n.leaf {
			return n.value, nil
		}
		if n.feature >= len(x) {
			return 0, fmt.Errorf("split on feature %d but row has %d values", n.feature, len(x))
		}
		v := x[n.feature]
		switch {
		case math.IsNaN(v):
			id = n.missing
		case float32(v) < float32(n.threshold):
			id = n.yes
		default:
			id = n.no
		}
	}
	return 0, fmt.Errorf("tree does not terminate")
}

func (t tree) maxFeature() int {
	max := -1
	for _, n := range t.nodes {
		if !n.leaf && n.feature > max {
			max = n.feature
		}
	}
	return max
}
