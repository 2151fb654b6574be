package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleGuide serves the tool usage guide.
func HandleGuide(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# Ad Insights Tool Guide\n\n")

		sb.WriteString("## Two Response Shapes\n\n")
		sb.WriteString("| Object type | Shape | Output |\n")
		sb.WriteString("|-------------|-------|--------|\n")
		sb.WriteString("| account, campaign, adset, ad | insight rows | one record per row, fields from the request plus field-producing breakdowns |\n")
		sb.WriteString("| page | metric time series | `date`, `metricName`, `metricValue` columns |\n")

		sb.WriteString("\n## Field Categories\n")
		sb.WriteString("- `SCALAR_STRING`: copied verbatim as text. Numbers are NOT converted (`\"12.50\"` stays `\"12.50\"`)\n")
		sb.WriteString("- `NESTED_RECORD`: one action record (action_type, value, click_1d ... view_28d)\n")
		sb.WriteString("- `ARRAY_OF_NESTED_RECORD`: list of action records, order preserved\n")
		sb.WriteString("- Attribution keys such as `28d_click` are renamed to `click_28d`\n")
		sb.WriteString("- Missing and null fields are left unset\n")

		sb.WriteString("\n## Workflow\n")
		sb.WriteString("1. `insights_classify_fields(fields=[...])` - check names before building a request\n")
		sb.WriteString("2. `insights_build_schema(fields=[...], breakdowns=[...])` - see the output record shape\n")
		sb.WriteString("3. `insights_request_params(spec=...)` - render query parameters; check `not_queryable`\n")
		sb.WriteString("4. `insights_transform(body=..., fields=[...])` - map a saved response; keep the `run_id`\n")
		sb.WriteString("5. `insights_query_rows(run_id=..., where={age: [\"18-24\"]})` - slice stored rows\n")

		sb.WriteString("\n## Row Selection\n")
		sb.WriteString(fmt.Sprintf("- Rows are selected with the jq expression `%s` unless `rows_expression` is given\n", cfg.RowsExpression))
		sb.WriteString("- Use `.` when the body is a single row object, `.[]` when it is a bare array\n")
		if cfg.TimeSeriesLastValue {
			sb.WriteString("- Time series keep only the last value of each metric (TIMESERIES_LAST_VALUE_ONLY is set)\n")
		} else {
			sb.WriteString("- Time series emit one row per value entry\n")
		}

		sb.WriteString("\n## Error Codes\n")
		sb.WriteString("- `UNKNOWN_FIELD`: a field or field-producing breakdown is not in the catalog\n")
		sb.WriteString("- `MALFORMED_RESPONSE`: a value does not match its category; reported per record in `failures`\n")
		sb.WriteString("- `NOT_FOUND`: the run was evicted or never existed\n")

		if cfg.DefaultObjectType != "" {
			sb.WriteString(fmt.Sprintf("\nA default request spec (object type `%s`) is loaded; spec arguments may be omitted.\n", cfg.DefaultObjectType))
		}

		return &sdkmcp.GetPromptResult{
			Description: "Guide to the ad insights tools",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
