package domain

// Columns is the ordered list of feature names a scaler/model pair was
// fitted on. The order is authoritative for scaling and inference.
type Columns []string

// Equal reports whether c and other name the same columns in the same order.
func (c Columns) Equal(other []string) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// ColumnMapping renames inbound field names to the names used at training time.
type ColumnMapping map[string]string

// FeatureRow is one observation: an ordered mapping of column name to value.
type FeatureRow struct {
	names  []string
	values []float64
	index  map[string]int
}

func NewFeatureRow() *FeatureRow {
	return &FeatureRow{index: make(map[string]int)}
}

// Set assigns value to name, appending the column if it is new.
func (r *FeatureRow) Set(name string, value float64) *FeatureRow {
	if i, ok := r.index[name]; ok {
		r.values[i] = value
		return r
	}
	r.index[name] = len(r.names)
	r.names = append(r.names, name)
	r.values = append(r.values, value)
	return r
}

func (r *FeatureRow) Get(name string) (float64, bool) {
	i, ok := r.index[name]
	if !ok {
		return 0, false
	}
	return r.values[i], true
}

func (r *FeatureRow) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

func (r *FeatureRow) Len() int {
	return len(r.names)
}

// Columns returns a copy of the column names in row order.
func (r *FeatureRow) Columns() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Values returns a copy of the values in row order.
func (r *FeatureRow) Values() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}

// Replace overwrites every value in row order. The caller must pass exactly
// Len() values; column names are left untouched.
func (r *FeatureRow) Replace(values []float64) {
	copy(r.values, values)
}

// Rename applies mapping to the row's column names. Columns absent from the
// mapping keep their name.
func (r *FeatureRow) Rename(mapping ColumnMapping) {
	for i, name := range r.names {
		renamed, ok := mapping[name]
		if !ok {
			continue
		}
		delete(r.index, name)
		r.names[i] = renamed
		r.index[renamed] = i
	}
}

// Map returns the row as a plain map, mainly for log fields.
func (r *FeatureRow) Map() map[string]float64 {
	out := make(map[string]float64, len(r.names))
	for i, name := range r.names {
		out[name] = r.values[i]
	}
	return out
}
