package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleMapInsightsReport walks through mapping a saved insights response
// onto typed records.
func HandleMapInsightsReport(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		objectType := ""
		fields := ""
		breakdowns := ""
		if args != nil {
			objectType = args["object_type"]
			fields = args["fields"]
			breakdowns = args["breakdowns"]
		}
		if objectType == "" {
			objectType = cfg.DefaultObjectType
		}

		var sb strings.Builder

		sb.WriteString("# Map an Insights Report\n\n")
		sb.WriteString("You are turning a raw advertising insights response into typed records and summarizing them. ")
		sb.WriteString("Work from tool outputs; do not recompute numbers by hand from the raw body.\n\n")

		sb.WriteString("## Steps\n\n")
		sb.WriteString("1. **Check names**\n")
		if fields != "" {
			sb.WriteString(fmt.Sprintf("   `insights_classify_fields(fields=[%s], breakdowns=[%s])`\n", quoteList(fields), quoteList(breakdowns)))
		} else {
			sb.WriteString("   `insights_classify_fields(fields=[...])`\n")
		}
		sb.WriteString("   - Drop or rename anything listed under `unknown`\n\n")

		sb.WriteString("2. **Build the schema**\n")
		call := "insights_build_schema("
		var parts []string
		if objectType != "" {
			parts = append(parts, fmt.Sprintf("object_type=%q", objectType))
		}
		if fields != "" {
			parts = append(parts, fmt.Sprintf("fields=[%s]", quoteList(fields)))
		}
		if breakdowns != "" {
			parts = append(parts, fmt.Sprintf("breakdowns=[%s]", quoteList(breakdowns)))
		}
		sb.WriteString(fmt.Sprintf("   `%s%s)`\n", call, strings.Join(parts, ", ")))
		sb.WriteString("   - `request_only_breakdowns` shape the request but add no column\n\n")

		sb.WriteString("3. **Transform the response**\n")
		sb.WriteString("   `insights_transform(body=<response JSON>, ...same spec..., validate=true)`\n")
		sb.WriteString(fmt.Sprintf("   - Rows come from `%s`; pass `rows_expression` if the body is shaped differently\n", cfg.RowsExpression))
		sb.WriteString("   - Read `failures`, `ignored_fields` and `dropped_attributes` before trusting the output\n\n")

		sb.WriteString("4. **Slice the run**\n")
		sb.WriteString("   `insights_query_rows(run_id=<run_id>, facet_field=\"age\")`\n")
		sb.WriteString("   `insights_query_rows(run_id=<run_id>, where={\"actions.action_type\": [\"purchase\"]})`\n\n")

		sb.WriteString("## Expected Output\n\n")
		sb.WriteString("- Schema fingerprint and field list\n")
		sb.WriteString("- Row count, failures with their error codes\n")
		sb.WriteString("- Any API drift: ignored fields and dropped nested attributes\n")
		sb.WriteString("- The breakdown slices the user asked about, with values quoted from tool output\n\n")

		sb.WriteString("## If Things Go Wrong\n\n")
		sb.WriteString("- **UNKNOWN_FIELD?** Run `insights_classify_fields(list_catalog=true)` and pick a listed name\n")
		sb.WriteString("- **Zero rows selected?** Check `extraction.errors`; the body may not have a `data` array\n")
		sb.WriteString("- **Run NOT_FOUND?** Runs are evicted oldest first; transform again\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for mapping an insights response to typed records",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}

// quoteList renders "a, b" as `"a", "b"`.
func quoteList(csv string) string {
	var out []string
	for _, p := range strings.Split(csv, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, fmt.Sprintf("%q", p))
		}
	}
	return strings.Join(out, ", ")
}
