package insights

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInsightsSchema(t *testing.T) {
	tests := []struct {
		name       string
		fields     []string
		breakdowns *Breakdowns
		expected   []string
	}{
		{
			name:     "fields only, sorted",
			fields:   []string{"spend", "actions", "impressions"},
			expected: []string{"actions", "impressions", "spend"},
		},
		{
			name:     "duplicates collapse",
			fields:   []string{"spend", "spend", "impressions"},
			expected: []string{"impressions", "spend"},
		},
		{
			name:       "field breakdowns are added",
			fields:     []string{"spend"},
			breakdowns: &Breakdowns{Breakdowns: []string{"age", "gender"}},
			expected:   []string{"age", "gender", "spend"},
		},
		{
			name:   "non-field breakdowns are ignored",
			fields: []string{"spend"},
			breakdowns: &Breakdowns{
				ActionBreakdowns: []string{"action_type", "action_device"},
				Breakdowns:       []string{"body_asset", "country"},
			},
			expected: []string{"country", "spend"},
		},
		{
			name:       "breakdown already requested as field",
			fields:     []string{"age", "spend"},
			breakdowns: &Breakdowns{Breakdowns: []string{"age"}},
			expected:   []string{"age", "spend"},
		},
		{
			name:     "empty request",
			fields:   nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := BuildInsightsSchema(tt.fields, tt.breakdowns)
			require.NoError(t, err)
			assert.Equal(t, KindInsights, s.Kind())
			assert.Equal(t, tt.expected, s.Names())
			assert.Equal(t, len(tt.expected), s.Len())
			assert.Nil(t, s.Columns())
		})
	}
}

func TestBuildInsightsSchema_OrderIndependent(t *testing.T) {
	a, err := BuildInsightsSchema([]string{"spend", "actions", "cpc"}, &Breakdowns{Breakdowns: []string{"age", "region"}})
	require.NoError(t, err)
	b, err := BuildInsightsSchema([]string{"cpc", "spend", "actions", "spend"}, &Breakdowns{Breakdowns: []string{"region", "age"}})
	require.NoError(t, err)

	assert.Equal(t, a.Fields(), b.Fields())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestBuildInsightsSchema_UnknownField(t *testing.T) {
	s, err := BuildInsightsSchema([]string{"spend", "made_up_metric"}, nil)
	assert.Nil(t, s)
	require.Error(t, err)

	var unknown *UnknownFieldError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "made_up_metric", unknown.Name)
}

func TestBuildInsightsSchema_Categories(t *testing.T) {
	s, err := BuildInsightsSchema([]string{"spend", "actions_results", "actions"}, nil)
	require.NoError(t, err)

	f, ok := s.Field("actions")
	require.True(t, ok)
	assert.Equal(t, CategoryArrayOfNestedRecord, f.Category)

	f, ok = s.Field("actions_results")
	require.True(t, ok)
	assert.Equal(t, CategoryNestedRecord, f.Category)

	_, ok = s.Field("cpc")
	assert.False(t, ok)
	assert.True(t, s.Has("spend"))
	assert.False(t, s.Has("date"))
}

func TestSchema_FieldsIsCopy(t *testing.T) {
	s, err := BuildInsightsSchema([]string{"spend"}, nil)
	require.NoError(t, err)

	fields := s.Fields()
	fields[0].Name = "mutated"
	assert.Equal(t, []string{"spend"}, s.Names())
}

func TestBuildTimeSeriesSchema(t *testing.T) {
	a := BuildTimeSeriesSchema([]string{"page_impressions"})
	b := BuildTimeSeriesSchema(nil)

	assert.Equal(t, KindTimeSeries, a.Kind())
	assert.Equal(t, []string{ColumnDate, ColumnMetricName, ColumnMetricValue}, a.Names())
	assert.Equal(t, []Column{
		{Name: "date", Type: ColumnTypeString},
		{Name: "metricName", Type: ColumnTypeString},
		{Name: "metricValue", Type: ColumnTypeDouble},
	}, a.Columns())
	assert.Empty(t, a.Fields())
	assert.True(t, a.Has("metricValue"))
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestSchema_FingerprintDistinguishesShapes(t *testing.T) {
	a, err := BuildInsightsSchema([]string{"spend"}, nil)
	require.NoError(t, err)
	b, err := BuildInsightsSchema([]string{"spend", "cpc"}, nil)
	require.NoError(t, err)
	ts := BuildTimeSeriesSchema(nil)

	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), ts.Fingerprint())
	assert.Len(t, a.Fingerprint(), 16)
}

func TestSchemaKind_Text(t *testing.T) {
	b, err := json.Marshal(map[string]SchemaKind{"kind": KindTimeSeries})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"time_series"}`, string(b))
	assert.Equal(t, "insights", KindInsights.String())
}

func TestIsFieldBreakdown(t *testing.T) {
	assert.True(t, IsFieldBreakdown("age"))
	assert.True(t, IsFieldBreakdown("hourly_stats_aggregated_by_audience_time_zone"))
	assert.False(t, IsFieldBreakdown("action_type"))
	assert.Len(t, breakdownsWithFields, 14)

	for b := range breakdownsWithFields {
		assert.True(t, IsClassifiable(b), "breakdown %q must classify", b)
	}
}

func TestSchema_JSONSchema(t *testing.T) {
	s, err := BuildInsightsSchema([]string{"spend", "actions", "actions_results"}, nil)
	require.NoError(t, err)

	b, err := json.Marshal(s.JSONSchema())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, false, doc["additionalProperties"])

	props := doc["properties"].(map[string]any)
	require.Len(t, props, 3)

	spend := props["spend"].(map[string]any)["anyOf"].([]any)
	assert.Equal(t, "string", spend[0].(map[string]any)["type"])
	assert.Equal(t, "null", spend[1].(map[string]any)["type"])

	actions := props["actions"].(map[string]any)["anyOf"].([]any)[0].(map[string]any)
	assert.Equal(t, "array", actions["type"])
	items := actions["items"].(map[string]any)
	assert.Len(t, items["properties"], 26)
}

func TestSchema_JSONSchemaTimeSeries(t *testing.T) {
	b, err := json.Marshal(BuildTimeSeriesSchema(nil).JSONSchema())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.ElementsMatch(t, []any{"date", "metricName", "metricValue"}, doc["required"])
	props := doc["properties"].(map[string]any)
	assert.Equal(t, "number", props["metricValue"].(map[string]any)["type"])
}
