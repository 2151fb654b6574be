package insights

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/usestring/adinsights-mcp/pkg/jsoncompact"
)

// RawObject is one decoded response object. Numbers should be json.Number
// (see DecodeRaw) so their lexical form survives.
type RawObject = map[string]any

var (
	errNotScalar = errors.New("expected a scalar value")
	errNotObject = errors.New("expected an object")
	errNotArray  = errors.New("expected an array")
	errMissing   = errors.New("missing required key")
)

// DecodeRaw decodes a single JSON object, keeping numbers as json.Number.
func DecodeRaw(data []byte) (RawObject, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj RawObject
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("decoding response object: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("decoding response object: %w", errNotObject)
	}
	return obj, nil
}

// DecodeRawList decodes either a JSON array of objects or a single object.
func DecodeRawList(data []byte) ([]RawObject, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		obj, err := DecodeRaw(trimmed)
		if err != nil {
			return nil, err
		}
		return []RawObject{obj}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var list []RawObject
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding response list: %w", err)
	}
	return list, nil
}

// TimeSeriesMode controls how many rows a metric response yields.
type TimeSeriesMode int

const (
	// RowPerValue emits one row per entry of the values array.
	RowPerValue TimeSeriesMode = iota
	// LastValueOnly emits a single row holding the last entry of the values
	// array, matching the legacy one-record-per-response output.
	LastValueOnly
)

// Transformer converts raw response objects into typed rows. A Transformer
// holds no mutable state and is safe for concurrent use.
type Transformer struct {
	mode    TimeSeriesMode
	snippet *jsoncompact.Options
	logger  *slog.Logger
}

// TransformerOption configures a Transformer.
type TransformerOption func(*Transformer)

// WithTimeSeriesMode selects the time-series row mode.
func WithTimeSeriesMode(mode TimeSeriesMode) TransformerOption {
	return func(t *Transformer) {
		t.mode = mode
	}
}

// WithSnippetOptions bounds the raw snippets attached to errors.
func WithSnippetOptions(opts *jsoncompact.Options) TransformerOption {
	return func(t *Transformer) {
		t.snippet = opts
	}
}

// WithLogger sets the logger used for drift diagnostics.
func WithLogger(l *slog.Logger) TransformerOption {
	return func(t *Transformer) {
		t.logger = l
	}
}

// NewTransformer creates a Transformer.
func NewTransformer(opts ...TransformerOption) *Transformer {
	t := &Transformer{
		mode:    RowPerValue,
		snippet: jsoncompact.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// log returns the configured logger, or the process default at call time so
// the package-level transformer follows slog.SetDefault.
func (t *Transformer) log() *slog.Logger {
	if t.logger != nil {
		return t.logger
	}
	return slog.Default()
}

var defaultTransformer = NewTransformer()

// TransformInsights transforms raw with the default transformer.
func TransformInsights(raw RawObject, schema *Schema) (*InsightsRow, error) {
	return defaultTransformer.TransformInsights(raw, schema)
}

// TransformTimeSeries transforms raw with the default transformer.
func TransformTimeSeries(raw RawObject, schema *Schema) ([]*TimeSeriesRow, error) {
	return defaultTransformer.TransformTimeSeries(raw, schema)
}

// Transform dispatches on the schema kind.
func (t *Transformer) Transform(raw RawObject, schema *Schema) ([]Row, error) {
	switch schema.Kind() {
	case KindInsights:
		row, err := t.TransformInsights(raw, schema)
		if err != nil {
			return nil, err
		}
		return []Row{row}, nil
	case KindTimeSeries:
		rows, err := t.TransformTimeSeries(raw, schema)
		if err != nil {
			return nil, err
		}
		out := make([]Row, len(rows))
		for i, r := range rows {
			out[i] = r
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported schema kind %v", schema.Kind())
	}
}

// TransformInsights builds one typed record from raw. Only keys present in
// both raw and schema are populated; the schema is authoritative for shape.
func (t *Transformer) TransformInsights(raw RawObject, schema *Schema) (*InsightsRow, error) {
	if schema.Kind() != KindInsights {
		return nil, fmt.Errorf("insights transform needs an insights schema, got %v", schema.Kind())
	}

	row := newInsightsRow(schema.Len())

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field, ok := schema.Field(key)
		if !ok {
			row.Diagnostics.IgnoredFields = append(row.Diagnostics.IgnoredFields, key)
			continue
		}
		rawValue := raw[key]
		if rawValue == nil {
			continue
		}

		switch field.Category {
		case CategoryScalarString:
			s, err := stringify(rawValue)
			if err != nil {
				return nil, t.fieldError(key, rawValue, err)
			}
			row.values[key] = StringValue(s)

		case CategoryNestedRecord:
			stat, err := t.extractActionStat(key, rawValue, &row.Diagnostics)
			if err != nil {
				return nil, err
			}
			row.values[key] = ActionStatValue(stat)

		case CategoryArrayOfNestedRecord:
			items, ok := rawValue.([]any)
			if !ok {
				return nil, t.fieldError(key, rawValue, errNotArray)
			}
			stats := make([]ActionStat, 0, len(items))
			for i, item := range items {
				stat, err := t.extractActionStat(fmt.Sprintf("%s[%d]", key, i), item, &row.Diagnostics)
				if err != nil {
					return nil, err
				}
				stats = append(stats, stat)
			}
			row.values[key] = ActionStatListValue(stats)

		default:
			return nil, fmt.Errorf("field %q: unsupported category %v", key, field.Category)
		}
	}

	if !row.Diagnostics.Empty() {
		t.log().Debug("insights row dropped raw content",
			slog.Any("ignored_fields", row.Diagnostics.IgnoredFields),
			slog.Any("dropped_attributes", row.Diagnostics.DroppedAttributes),
		)
	}
	return row, nil
}

// extractActionStat copies known attributes of a nested action object.
// Unknown attributes are dropped and recorded in diag.
func (t *Transformer) extractActionStat(path string, rawValue any, diag *Diagnostics) (ActionStat, error) {
	obj, ok := rawValue.(map[string]any)
	if !ok {
		return ActionStat{}, t.fieldError(path, rawValue, errNotObject)
	}

	var stat ActionStat
	for _, key := range attributeOrder(obj) {
		v := obj[key]
		name := NormalizeFieldName(key)
		if !IsActionStatAttribute(name) {
			diag.DroppedAttributes = append(diag.DroppedAttributes, path+"."+key)
			continue
		}
		if v == nil {
			continue
		}
		s, err := stringify(v)
		if err != nil {
			return ActionStat{}, t.fieldError(path+"."+key, v, err)
		}
		stat.Set(name, s)
	}
	sort.Strings(diag.DroppedAttributes)
	return stat, nil
}

// attributeOrder sorts the keys of a nested action object. Keys in API form
// (1d_click) come after their schema form (click_1d), so the API's own key
// wins when an object carries both.
func attributeOrder(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := NormalizeFieldName(keys[i]) != keys[i], NormalizeFieldName(keys[j]) != keys[j]
		if ri != rj {
			return rj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func (t *Transformer) fieldError(field string, v any, err error) error {
	te := &TransformError{Field: field, Err: err}
	if v != nil {
		te.Snippet = jsoncompact.Snippet(v, t.snippet)
	}
	return te
}

// stringify renders a JSON primitive the way it appeared on the wire.
func stringify(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	default:
		return "", errNotScalar
	}
}
