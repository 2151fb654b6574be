package insights

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/usestring/adinsights-mcp/pkg/jsoncompact"
)

// TransformTimeSeries flattens a metric response {name, values[{value,
// end_time}]} into rows. A non-numeric value aborts the record with
// *MalformedMetricValueError.
func (t *Transformer) TransformTimeSeries(raw RawObject, schema *Schema) ([]*TimeSeriesRow, error) {
	if schema.Kind() != KindTimeSeries {
		return nil, fmt.Errorf("time-series transform needs a time-series schema, got %v", schema.Kind())
	}

	nameValue, ok := raw["name"]
	if !ok || nameValue == nil {
		return nil, t.fieldError("name", nil, errMissing)
	}
	metric, err := stringify(nameValue)
	if err != nil {
		return nil, t.fieldError("name", nameValue, err)
	}

	var values []any
	if v, ok := raw["values"]; ok && v != nil {
		values, ok = v.([]any)
		if !ok {
			return nil, t.fieldError("values", v, errNotArray)
		}
	}

	rows := make([]*TimeSeriesRow, 0, len(values))
	for i, item := range values {
		path := fmt.Sprintf("values[%d]", i)
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, t.fieldError(path, item, errNotObject)
		}

		endTime, ok := obj["end_time"]
		if !ok || endTime == nil {
			return nil, t.fieldError(path+".end_time", obj, errMissing)
		}
		date, err := stringify(endTime)
		if err != nil {
			return nil, t.fieldError(path+".end_time", endTime, err)
		}

		number, err := toFloat(obj["value"])
		if err != nil {
			return nil, &MalformedMetricValueError{
				Metric: metric,
				Index:  i,
				Raw:    jsoncompact.Snippet(obj["value"], t.snippet),
			}
		}

		rows = append(rows, &TimeSeriesRow{
			Date:        date,
			MetricName:  metric,
			MetricValue: number,
		})
	}

	if t.mode == LastValueOnly && len(rows) > 1 {
		rows = rows[len(rows)-1:]
	}
	return rows, nil
}

var errNotFinite = errors.New("metric value is not a finite number")

// toFloat parses a metric value. NaN and infinities parse as floats but have
// no JSON encoding, so they are rejected like any other malformed value.
func toFloat(v any) (float64, error) {
	var (
		f   float64
		err error
	)
	switch val := v.(type) {
	case json.Number:
		f, err = val.Float64()
	case float64:
		f = val
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case string:
		f, err = strconv.ParseFloat(val, 64)
	default:
		return 0, errNotScalar
	}
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}
