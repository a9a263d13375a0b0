package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	UnknownCategory = "Unknown"
	UnknownProduct  = "Unknown Product"
)

// LabelMap decodes a code through a static table. Codes missing from the
// table decode to the map's unknown sentinel.
type LabelMap[K comparable] struct {
	labels  map[K]string
	unknown string
}

func NewLabelMap[K comparable](labels map[K]string, unknown string) LabelMap[K] {
	copied := make(map[K]string, len(labels))
	for k, v := range labels {
		copied[k] = v
	}
	return LabelMap[K]{labels: copied, unknown: unknown}
}

func (m LabelMap[K]) Decode(code K) string {
	label, _ := m.Lookup(code)
	return label
}

// Lookup is Decode that also reports whether the code was known.
func (m LabelMap[K]) Lookup(code K) (string, bool) {
	label, ok := m.labels[code]
	if !ok {
		return m.unknown, false
	}
	return label, true
}

// Unknown returns the sentinel used for codes missing from the table.
func (m LabelMap[K]) Unknown() string {
	return m.unknown
}

func (m LabelMap[K]) Len() int {
	return len(m.labels)
}

// CategoryLabels maps the classifier's class codes to demand tiers
// (low, medium, high).
var CategoryLabels = NewLabelMap(map[int]string{
	0: "Sedikit",
	1: "Sedang",
	2: "Banyak",
}, UnknownCategory)

//go:embed data/products.yaml
var productTable []byte

// ProductLabels maps label-encoded product codes to product display names.
var ProductLabels = mustLoadProductLabels(productTable)

type productEntry struct {
	Code int    `yaml:"code"`
	Name string `yaml:"name"`
}

// ParseProductLabels decodes a YAML list of {code, name} entries.
func ParseProductLabels(raw []byte) (LabelMap[int], error) {
	var doc struct {
		Products []productEntry `yaml:"products"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return LabelMap[int]{}, fmt.Errorf("parse product table: %w", err)
	}

	labels := make(map[int]string, len(doc.Products))
	for _, p := range doc.Products {
		if _, dup := labels[p.Code]; dup {
			return LabelMap[int]{}, fmt.Errorf("parse product table: duplicate code %d", p.Code)
		}
		labels[p.Code] = p.Name
	}
	return NewLabelMap(labels, UnknownProduct), nil
}

func mustLoadProductLabels(raw []byte) LabelMap[int] {
	m, err := ParseProductLabels(raw)
	if err != nil {
		panic(err)
	}
	return m
}
