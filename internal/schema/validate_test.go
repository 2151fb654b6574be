package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/adinsights-mcp/pkg/insights"
)

func newInsightsValidator(t *testing.T, fields ...string) *RecordValidator {
	t.Helper()
	s, err := insights.BuildInsightsSchema(fields, nil)
	require.NoError(t, err)
	v, err := NewRecordValidator(s)
	require.NoError(t, err)
	assert.Equal(t, s.Fingerprint(), v.Fingerprint())
	return v
}

func TestRecordValidator_TransformedRowIsValid(t *testing.T) {
	v := newInsightsValidator(t, "spend", "actions", "actions_results")

	raw, err := insights.DecodeRaw([]byte(`{
		"spend": 4.20,
		"actions": [{"action_type": "like", "1d_click": 2}],
		"actions_results": {"value": "9"}
	}`))
	require.NoError(t, err)
	row, err := insights.TransformInsights(raw, mustSchema(t, "spend", "actions", "actions_results"))
	require.NoError(t, err)

	result := v.ValidateRow(row)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
}

func TestRecordValidator_Invalid(t *testing.T) {
	v := newInsightsValidator(t, "spend", "actions")

	tests := []struct {
		name string
		data string
		want string
	}{
		{"unknown field", `{"spend": "1", "reach": "2"}`, "reach"},
		{"number scalar", `{"spend": 1}`, "/spend"},
		{"unknown action attribute", `{"actions": [{"bogus": "x"}]}`, "/actions/0"},
		{"not an object", `[]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate([]byte(tt.data))
			assert.False(t, result.Valid)
			require.NotEmpty(t, result.Errors)
			if tt.want != "" {
				assert.Contains(t, strings.Join(result.Errors, "\n"), tt.want)
			}
		})
	}
}

func TestRecordValidator_NullFieldAllowed(t *testing.T) {
	v := newInsightsValidator(t, "spend")
	assert.True(t, v.Validate([]byte(`{"spend": null}`)).Valid)
	assert.True(t, v.Validate([]byte(`{}`)).Valid)
}

func TestRecordValidator_InvalidJSON(t *testing.T) {
	v := newInsightsValidator(t, "spend")
	result := v.Validate([]byte(`{"spend":`))
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors[0], "invalid JSON")
}

func TestRecordValidator_TimeSeries(t *testing.T) {
	v, err := NewRecordValidator(insights.BuildTimeSeriesSchema(nil))
	require.NoError(t, err)

	row := &insights.TimeSeriesRow{Date: "2020-01-01", MetricName: "page_fans", MetricValue: 3}
	assert.True(t, v.ValidateRow(row).Valid)

	result := v.Validate([]byte(`{"date": "2020-01-01", "metricName": "page_fans"}`))
	assert.False(t, result.Valid)
	assert.Contains(t, strings.Join(result.Errors, "\n"), "metricValue")
}

func mustSchema(t *testing.T, fields ...string) *insights.Schema {
	t.Helper()
	s, err := insights.BuildInsightsSchema(fields, nil)
	require.NoError(t, err)
	return s
}
