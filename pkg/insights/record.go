package insights

import "encoding/json"

// Value is a populated insights field. The variants mirror FieldCategory:
// StringValue, ActionStatValue and ActionStatListValue.
type Value interface {
	Category() FieldCategory
	isValue()
}

// StringValue carries a SCALAR_STRING field verbatim.
type StringValue string

// ActionStatValue carries a NESTED_RECORD field.
type ActionStatValue ActionStat

// ActionStatListValue carries an ARRAY_OF_NESTED_RECORD field in source order.
type ActionStatListValue []ActionStat

func (StringValue) Category() FieldCategory         { return CategoryScalarString }
func (ActionStatValue) Category() FieldCategory     { return CategoryNestedRecord }
func (ActionStatListValue) Category() FieldCategory { return CategoryArrayOfNestedRecord }

func (StringValue) isValue()         {}
func (ActionStatValue) isValue()     {}
func (ActionStatListValue) isValue() {}

// Row is one transformed output record: *InsightsRow or *TimeSeriesRow.
type Row interface {
	Kind() SchemaKind
	isRow()
}

// InsightsRow is the typed record for one insight row. Fields absent from
// the raw response are unset.
type InsightsRow struct {
	values      map[string]Value
	Diagnostics Diagnostics `json:"-"`
}

// Diagnostics lists raw content the transformer did not carry over.
type Diagnostics struct {
	IgnoredFields     []string `json:"ignored_fields,omitempty"`
	DroppedAttributes []string `json:"dropped_attributes,omitempty"`
}

// Empty reports whether nothing was dropped.
func (d Diagnostics) Empty() bool {
	return len(d.IgnoredFields) == 0 && len(d.DroppedAttributes) == 0
}

func newInsightsRow(capacity int) *InsightsRow {
	return &InsightsRow{values: make(map[string]Value, capacity)}
}

func (*InsightsRow) Kind() SchemaKind { return KindInsights }
func (*InsightsRow) isRow()           {}

// Get returns the value of field name.
func (r *InsightsRow) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Scalar returns a SCALAR_STRING field.
func (r *InsightsRow) Scalar(name string) (string, bool) {
	v, ok := r.values[name].(StringValue)
	return string(v), ok
}

// ActionStat returns a NESTED_RECORD field.
func (r *InsightsRow) ActionStat(name string) (*ActionStat, bool) {
	v, ok := r.values[name].(ActionStatValue)
	if !ok {
		return nil, false
	}
	a := ActionStat(v)
	return &a, true
}

// ActionStats returns an ARRAY_OF_NESTED_RECORD field.
func (r *InsightsRow) ActionStats(name string) ([]ActionStat, bool) {
	v, ok := r.values[name].(ActionStatListValue)
	return []ActionStat(v), ok
}

// Len returns the number of populated fields.
func (r *InsightsRow) Len() int { return len(r.values) }

// FieldNames returns the populated field names in no particular order.
func (r *InsightsRow) FieldNames() []string {
	names := make([]string, 0, len(r.values))
	for n := range r.values {
		names = append(names, n)
	}
	return names
}

// Map renders the row as plain JSON-compatible values.
func (r *InsightsRow) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for name, v := range r.values {
		switch val := v.(type) {
		case StringValue:
			out[name] = string(val)
		case ActionStatValue:
			a := ActionStat(val)
			out[name] = a.Attributes()
		case ActionStatListValue:
			list := make([]any, len(val))
			for i := range val {
				list[i] = val[i].Attributes()
			}
			out[name] = list
		}
	}
	return out
}

// MarshalJSON encodes the populated fields as a flat object.
func (r *InsightsRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// TimeSeriesRow is one flattened (date, metric, value) record.
type TimeSeriesRow struct {
	Date        string  `json:"date"`
	MetricName  string  `json:"metricName"`
	MetricValue float64 `json:"metricValue"`
}

func (*TimeSeriesRow) Kind() SchemaKind { return KindTimeSeries }
func (*TimeSeriesRow) isRow()           {}

// Map renders the row as plain JSON-compatible values.
func (r *TimeSeriesRow) Map() map[string]any {
	return map[string]any{
		ColumnDate:        r.Date,
		ColumnMetricName:  r.MetricName,
		ColumnMetricValue: r.MetricValue,
	}
}
