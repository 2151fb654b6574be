package insights

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageImpressions = `{
	"name": "page_impressions",
	"period": "day",
	"values": [
		{"value": "10", "end_time": "2020-01-01"},
		{"value": "20", "end_time": "2020-01-02"}
	]
}`

func TestTransformTimeSeries_RowPerValue(t *testing.T) {
	rows, err := TransformTimeSeries(mustDecode(t, pageImpressions), BuildTimeSeriesSchema(nil))
	require.NoError(t, err)

	assert.Equal(t, []*TimeSeriesRow{
		{Date: "2020-01-01", MetricName: "page_impressions", MetricValue: 10.0},
		{Date: "2020-01-02", MetricName: "page_impressions", MetricValue: 20.0},
	}, rows)
}

func TestTransformTimeSeries_LastValueOnly(t *testing.T) {
	tr := NewTransformer(WithTimeSeriesMode(LastValueOnly))

	rows, err := tr.TransformTimeSeries(mustDecode(t, pageImpressions), BuildTimeSeriesSchema(nil))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, &TimeSeriesRow{Date: "2020-01-02", MetricName: "page_impressions", MetricValue: 20.0}, rows[0])
}

func TestTransformTimeSeries_NumericForms(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{"json number", `{"name": "m", "values": [{"value": 3.25, "end_time": "d"}]}`, 3.25},
		{"numeric string", `{"name": "m", "values": [{"value": "1e3", "end_time": "d"}]}`, 1000},
		{"negative", `{"name": "m", "values": [{"value": -4, "end_time": "d"}]}`, -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := TransformTimeSeries(mustDecode(t, tt.body), BuildTimeSeriesSchema(nil))
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.InDelta(t, tt.want, rows[0].MetricValue, 1e-9)
		})
	}
}

func TestTransformTimeSeries_MalformedValue(t *testing.T) {
	tests := []struct {
		name string
		body string
		raw  string
	}{
		{"text", `{"name": "page_fans", "values": [{"value": "1", "end_time": "a"}, {"value": "n/a", "end_time": "b"}]}`, `"n/a"`},
		{"object", `{"name": "page_fans", "values": [{"value": "1", "end_time": "a"}, {"value": {"US": 3}, "end_time": "b"}]}`, `{"US":3}`},
		{"missing", `{"name": "page_fans", "values": [{"value": "1", "end_time": "a"}, {"end_time": "b"}]}`, `null`},
		{"nan", `{"name": "page_fans", "values": [{"value": "1", "end_time": "a"}, {"value": "NaN", "end_time": "b"}]}`, `"NaN"`},
		{"infinity", `{"name": "page_fans", "values": [{"value": "1", "end_time": "a"}, {"value": "Infinity", "end_time": "b"}]}`, `"Infinity"`},
		{"negative inf", `{"name": "page_fans", "values": [{"value": "1", "end_time": "a"}, {"value": "-Inf", "end_time": "b"}]}`, `"-Inf"`},
		{"overflow", `{"name": "page_fans", "values": [{"value": "1", "end_time": "a"}, {"value": "1e400", "end_time": "b"}]}`, `"1e400"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := TransformTimeSeries(mustDecode(t, tt.body), BuildTimeSeriesSchema(nil))
			assert.Nil(t, rows)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedMetricValue))

			var mv *MalformedMetricValueError
			require.True(t, errors.As(err, &mv))
			assert.Equal(t, "page_fans", mv.Metric)
			assert.Equal(t, 1, mv.Index)
			assert.Equal(t, tt.raw, mv.Raw)
		})
	}
}

func TestTransformTimeSeries_Shape(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		rows    int
		wantErr string
	}{
		{name: "no values key", body: `{"name": "page_fans"}`, rows: 0},
		{name: "null values", body: `{"name": "page_fans", "values": null}`, rows: 0},
		{name: "empty values", body: `{"name": "page_fans", "values": []}`, rows: 0},
		{name: "missing name", body: `{"values": []}`, wantErr: "name"},
		{name: "values not array", body: `{"name": "m", "values": {}}`, wantErr: "values"},
		{name: "value entry not object", body: `{"name": "m", "values": [3]}`, wantErr: "values[0]"},
		{name: "missing end_time", body: `{"name": "m", "values": [{"value": 3}]}`, wantErr: "values[0].end_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := TransformTimeSeries(mustDecode(t, tt.body), BuildTimeSeriesSchema(nil))
			if tt.wantErr != "" {
				var te *TransformError
				require.True(t, errors.As(err, &te), "got %v", err)
				assert.Equal(t, tt.wantErr, te.Field)
				return
			}
			require.NoError(t, err)
			assert.Len(t, rows, tt.rows)
		})
	}
}

func TestTransformTimeSeries_WrongSchemaKind(t *testing.T) {
	_, err := TransformTimeSeries(mustDecode(t, pageImpressions), mustSchema(t, "spend"))
	assert.Error(t, err)
}

func TestTimeSeriesRow_Map(t *testing.T) {
	r := &TimeSeriesRow{Date: "2020-01-01", MetricName: "page_fans", MetricValue: 2}
	assert.Equal(t, map[string]any{"date": "2020-01-01", "metricName": "page_fans", "metricValue": 2.0}, r.Map())
}
