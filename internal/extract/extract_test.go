package extract

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `{
	"data": [
		{"spend": 12.50, "impressions": "100", "actions": [{"action_type": "like", "value": 3}]},
		{"spend": 0.10, "impressions": "7"},
		"not a row"
	],
	"paging": {"cursors": {"after": "abc"}}
}`

func TestRows_DefaultExpressionKeepsNumberText(t *testing.T) {
	ex, err := New(".data[]")
	require.NoError(t, err)
	assert.Equal(t, ".data[]", ex.Expression())

	res, err := ex.Rows(context.Background(), []byte(page), 0)
	require.NoError(t, err)

	assert.True(t, res.ByPath)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, res.Errors)
	assert.Equal(t, json.Number("12.50"), res.Rows[0]["spend"])
	assert.Equal(t, json.Number("0.10"), res.Rows[1]["spend"])

	actions := res.Rows[0]["actions"].([]any)
	assert.Equal(t, json.Number("3"), actions[0].(map[string]any)["value"])
}

func TestRows_MaxRows(t *testing.T) {
	ex, err := New(".data[]")
	require.NoError(t, err)

	res, err := ex.Rows(context.Background(), []byte(page), 1)
	require.NoError(t, err)
	assert.Len(t, res.Rows, 1)
	assert.True(t, res.Truncated)
}

func TestRows_SelectFilter(t *testing.T) {
	ex, err := New(`.data[] | objects | select(.impressions == "7")`)
	require.NoError(t, err)

	res, err := ex.Rows(context.Background(), []byte(page), 0)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, json.Number("0.10"), res.Rows[0]["spend"])
	assert.True(t, res.ByPath)
}

func TestRows_NonPathExpressionFallsBack(t *testing.T) {
	ex, err := New(`.data[] | objects | {spend, source: "x"}`)
	require.NoError(t, err)

	res, err := ex.Rows(context.Background(), []byte(page), 0)
	require.NoError(t, err)
	assert.False(t, res.ByPath)
	assert.False(t, res.NumbersNormalized)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, json.Number("12.50"), res.Rows[0]["spend"])
	assert.Equal(t, "x", res.Rows[0]["source"])
}

func TestRows_NumberTextOnBothRoutes(t *testing.T) {
	body := `{"data": [{"spend": 12.50, "account_id": 12345678901234567890, "clicks": 7}]}`

	tests := []struct {
		name       string
		expression string
		byPath     bool
	}{
		{"path route", ".data[]", true},
		{"value route", "[.data[]][]", false},
		{"value route with construction", ".data[] | {spend, account_id, clicks}", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := New(tt.expression)
			require.NoError(t, err)
			res, err := ex.Rows(context.Background(), []byte(body), 0)
			require.NoError(t, err)

			assert.Equal(t, tt.byPath, res.ByPath)
			assert.False(t, res.NumbersNormalized)
			require.Len(t, res.Rows, 1)
			assert.Equal(t, json.Number("12.50"), res.Rows[0]["spend"])
			assert.Equal(t, json.Number("12345678901234567890"), res.Rows[0]["account_id"])
			assert.Equal(t, json.Number("7"), res.Rows[0]["clicks"])
		})
	}
}

func TestRows_ComputedDecimalsFlagged(t *testing.T) {
	ex, err := New(`.data[] | {spend: (.spend * 2), clicks: (.clicks + 1)}`)
	require.NoError(t, err)
	res, err := ex.Rows(context.Background(), []byte(`{"data": [{"spend": 1.25, "clicks": 3}]}`), 0)
	require.NoError(t, err)

	assert.False(t, res.ByPath)
	assert.True(t, res.NumbersNormalized)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, json.Number("2.5"), res.Rows[0]["spend"])
	assert.Equal(t, json.Number("4"), res.Rows[0]["clicks"])
}

func TestRows_TrailingData(t *testing.T) {
	ex, err := New(".data[]")
	require.NoError(t, err)
	_, err = ex.Rows(context.Background(), []byte(`{"data": []} {"data": []}`), 0)
	assert.Error(t, err)
}

func TestRows_WholeBodyAsRow(t *testing.T) {
	ex, err := New(".")
	require.NoError(t, err)

	res, err := ex.Rows(context.Background(), []byte(`{"name": "page_fans", "values": [{"value": 10, "end_time": "2020-01-01"}]}`), 0)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "page_fans", res.Rows[0]["name"])
}

func TestRows_MissingPath(t *testing.T) {
	ex, err := New(".data[]")
	require.NoError(t, err)

	res, err := ex.Rows(context.Background(), []byte(`{"error": {"message": "bad token"}}`), 0)
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "may not exist")
}

func TestRows_InvalidBody(t *testing.T) {
	ex, err := New(".data[]")
	require.NoError(t, err)

	_, err = ex.Rows(context.Background(), []byte(`{"data": [`), 0)
	assert.Error(t, err)
}

func TestNew_InvalidExpression(t *testing.T) {
	_, err := New(".data[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")
}

func TestFollow(t *testing.T) {
	v := map[string]any{"a": []any{"x", map[string]any{"b": "y"}}}

	got, err := follow(v, []any{"a", 1, "b"})
	require.NoError(t, err)
	assert.Equal(t, "y", got)

	got, err = follow(v, []any{"a", 5})
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = follow(v, []any{"a", "b"})
	assert.Error(t, err)
}
