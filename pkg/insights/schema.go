package insights

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// SchemaKind selects which transformer a schema feeds.
type SchemaKind int

const (
	KindInsights SchemaKind = iota
	KindTimeSeries
)

func (k SchemaKind) String() string {
	switch k {
	case KindInsights:
		return "insights"
	case KindTimeSeries:
		return "time_series"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k SchemaKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Time-series column names.
const (
	ColumnDate        = "date"
	ColumnMetricName  = "metricName"
	ColumnMetricValue = "metricValue"
)

// Column types for the time-series shape, which is not classified through
// the catalog.
const (
	ColumnTypeString = "string"
	ColumnTypeDouble = "double"
)

// Column is one fixed time-series column.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

var timeSeriesColumns = []Column{
	{Name: ColumnDate, Type: ColumnTypeString},
	{Name: ColumnMetricName, Type: ColumnTypeString},
	{Name: ColumnMetricValue, Type: ColumnTypeDouble},
}

// Breakdowns are the dimensions that split an insight aggregate.
type Breakdowns struct {
	ActionBreakdowns []string `json:"action_breakdowns,omitempty" yaml:"action_breakdowns,omitempty"`
	Breakdowns       []string `json:"breakdowns,omitempty" yaml:"breakdowns,omitempty"`
}

// breakdownsWithFields are the breakdown dimensions that materialize as
// direct output fields. Other breakdowns only affect request parameters.
var breakdownsWithFields = map[string]bool{
	"age":               true,
	"country":           true,
	"gender":            true,
	"impression_device": true,
	"product_id":        true,
	"region":            true,
	"dma":               true,
	"frequency_value":   true,
	"hourly_stats_aggregated_by_advertiser_time_zone": true,
	"hourly_stats_aggregated_by_audience_time_zone":   true,
	"place_page_id":      true,
	"publisher_platform": true,
	"platform_position":  true,
	"device_platform":    true,
}

// IsFieldBreakdown reports whether breakdown adds a field to the schema.
func IsFieldBreakdown(breakdown string) bool {
	return breakdownsWithFields[breakdown]
}

// Schema is the immutable target shape of one output record.
type Schema struct {
	kind    SchemaKind
	fields  []SchemaField
	index   map[string]int
	columns []Column
}

// BuildInsightsSchema assembles the insights schema from the requested
// fields plus any breakdown dimensions that materialize as fields.
// Every name must classify; the first failure aborts assembly.
func BuildInsightsSchema(fields []string, breakdowns *Breakdowns) (*Schema, error) {
	names := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		names[f] = struct{}{}
	}
	if breakdowns != nil {
		for _, b := range breakdowns.ActionBreakdowns {
			if breakdownsWithFields[b] {
				names[b] = struct{}{}
			}
		}
		for _, b := range breakdowns.Breakdowns {
			if breakdownsWithFields[b] {
				names[b] = struct{}{}
			}
		}
	}

	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	s := &Schema{
		kind:   KindInsights,
		fields: make([]SchemaField, 0, len(sorted)),
		index:  make(map[string]int, len(sorted)),
	}
	for _, n := range sorted {
		f, err := Classify(n)
		if err != nil {
			return nil, err
		}
		s.index[n] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// BuildTimeSeriesSchema returns the fixed date/metricName/metricValue shape.
// The requested metrics only affect the request, not the schema.
func BuildTimeSeriesSchema(metrics []string) *Schema {
	cols := make([]Column, len(timeSeriesColumns))
	copy(cols, timeSeriesColumns)
	return &Schema{
		kind:    KindTimeSeries,
		index:   map[string]int{},
		columns: cols,
	}
}

// Kind returns the schema shape.
func (s *Schema) Kind() SchemaKind { return s.kind }

// Fields returns a copy of the classified fields in schema order.
// Time-series schemas have no classified fields; see Columns.
func (s *Schema) Fields() []SchemaField {
	out := make([]SchemaField, len(s.fields))
	copy(out, s.fields)
	return out
}

// Columns returns the fixed time-series columns, or nil for insights schemas.
func (s *Schema) Columns() []Column {
	if s.columns == nil {
		return nil
	}
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Field looks up a classified field by name.
func (s *Schema) Field(name string) (SchemaField, bool) {
	i, ok := s.index[name]
	if !ok {
		return SchemaField{}, false
	}
	return s.fields[i], true
}

// Has reports whether name is a field or column of the schema.
func (s *Schema) Has(name string) bool {
	if _, ok := s.index[name]; ok {
		return true
	}
	for _, c := range s.columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Names returns field (or column) names in schema order.
func (s *Schema) Names() []string {
	if s.kind == KindTimeSeries {
		names := make([]string, len(s.columns))
		for i, c := range s.columns {
			names[i] = c.Name
		}
		return names
	}
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of fields or columns.
func (s *Schema) Len() int {
	if s.kind == KindTimeSeries {
		return len(s.columns)
	}
	return len(s.fields)
}

// Fingerprint is a stable identifier for the schema shape.
func (s *Schema) Fingerprint() string {
	var sb strings.Builder
	sb.WriteString(s.kind.String())
	for _, f := range s.fields {
		sb.WriteByte('|')
		sb.WriteString(f.Name)
		sb.WriteByte(':')
		sb.WriteString(f.Category.String())
	}
	for _, c := range s.columns {
		sb.WriteByte('|')
		sb.WriteString(c.Name)
		sb.WriteByte(':')
		sb.WriteString(c.Type)
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:8])
}
