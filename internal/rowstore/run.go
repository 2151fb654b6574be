package rowstore

import (
	"sort"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/adinsights-mcp/pkg/insights"
)

// Run is one immutable batch of transformed rows with its inverted index.
type Run struct {
	ID        string
	CreatedAt time.Time
	Schema    *insights.Schema
	Rows      []insights.Row
	Failures  []Failure

	// idx maps field -> value -> row IDs. Nested action attributes are
	// indexed as "<field>.<attribute>".
	idx map[string]map[string]*roaring.Bitmap
}

func newRun(id string, schema *insights.Schema, rows []insights.Row, failures []Failure) *Run {
	r := &Run{
		ID:        id,
		CreatedAt: time.Now(),
		Schema:    schema,
		Rows:      rows,
		Failures:  failures,
		idx:       make(map[string]map[string]*roaring.Bitmap),
	}
	for i, row := range rows {
		r.index(uint32(i), row)
	}
	return r
}

func (r *Run) index(rowID uint32, row insights.Row) {
	switch v := row.(type) {
	case *insights.InsightsRow:
		for _, name := range v.FieldNames() {
			value, _ := v.Get(name)
			switch val := value.(type) {
			case insights.StringValue:
				r.add(name, string(val), rowID)
			case insights.ActionStatValue:
				stat := insights.ActionStat(val)
				r.addActionStat(name, &stat, rowID)
			case insights.ActionStatListValue:
				for i := range val {
					r.addActionStat(name, &val[i], rowID)
				}
			}
		}
	case *insights.TimeSeriesRow:
		r.add(insights.ColumnDate, v.Date, rowID)
		r.add(insights.ColumnMetricName, v.MetricName, rowID)
	}
}

// addActionStat indexes the dimension attributes of an action record.
// Counters and values are not indexed.
func (r *Run) addActionStat(field string, stat *insights.ActionStat, rowID uint32) {
	for attr, value := range stat.Attributes() {
		if !isDimensionAttribute(attr) {
			continue
		}
		r.add(field+"."+attr, value, rowID)
	}
}

func isDimensionAttribute(attr string) bool {
	return strings.HasPrefix(attr, "action_") || strings.HasPrefix(attr, "interactive_component_")
}

func (r *Run) add(field, value string, rowID uint32) {
	values, ok := r.idx[field]
	if !ok {
		values = make(map[string]*roaring.Bitmap)
		r.idx[field] = values
	}
	bm, ok := values[value]
	if !ok {
		bm = roaring.New()
		values[value] = bm
	}
	bm.Add(rowID)
}

// Summary describes the run without its rows.
func (r *Run) Summary() RunSummary {
	return RunSummary{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		Kind:        r.Schema.Kind(),
		Fingerprint: r.Schema.Fingerprint(),
		Rows:        len(r.Rows),
		Failures:    len(r.Failures),
	}
}

// IndexedFields returns the sorted names of indexed fields.
func (r *Run) IndexedFields() []string {
	fields := make([]string, 0, len(r.idx))
	for f := range r.idx {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// ValueCount is one facet bucket.
type ValueCount struct {
	Value string `json:"value"`
	Count uint64 `json:"count"`
}

// Facet returns value counts for field, most frequent first, limited to
// limit buckets (0 = all).
func (r *Run) Facet(field string, limit int) []ValueCount {
	values := r.idx[field]
	out := make([]ValueCount, 0, len(values))
	for v, bm := range values {
		out = append(out, ValueCount{Value: v, Count: bm.GetCardinality()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
