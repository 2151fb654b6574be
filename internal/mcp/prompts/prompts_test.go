package prompts

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptText(t *testing.T, res *sdkmcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, res.Messages, 1)
	text, ok := res.Messages[0].Content.(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandleMapInsightsReport(t *testing.T) {
	cfg := &Config{RowsExpression: ".data[]"}
	req := &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{
		Name: "map_insights_report",
		Arguments: map[string]string{
			"object_type": "adset",
			"fields":      "spend, actions",
			"breakdowns":  "age",
		},
	}}

	res, err := HandleMapInsightsReport(cfg)(context.Background(), req)
	require.NoError(t, err)
	text := promptText(t, res)

	assert.Contains(t, text, `insights_build_schema(object_type="adset", fields=["spend", "actions"], breakdowns=["age"])`)
	assert.Contains(t, text, "`.data[]`")
}

func TestHandleMapInsightsReport_DefaultObjectType(t *testing.T) {
	cfg := &Config{RowsExpression: ".data[]", DefaultObjectType: "page"}
	req := &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{Name: "map_insights_report"}}

	res, err := HandleMapInsightsReport(cfg)(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, promptText(t, res), `insights_build_schema(object_type="page")`)
}

func TestHandleGuide(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"row per value", Config{RowsExpression: ".data[]"}, "one row per value entry"},
		{"last value only", Config{RowsExpression: ".data[]", TimeSeriesLastValue: true}, "only the last value"},
		{"default spec", Config{RowsExpression: ".data[]", DefaultObjectType: "ad"}, "object type `ad`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := HandleGuide(&tt.cfg)(context.Background(), &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{}})
			require.NoError(t, err)
			assert.Contains(t, promptText(t, res), tt.want)
		})
	}
}

func TestQuoteList(t *testing.T) {
	assert.Equal(t, `"a", "b"`, quoteList(" a ,b,, "))
	assert.Equal(t, "", quoteList(""))
}
