package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: insights_classify_fields
	AddTool(srv, &sdkmcp.Tool{
		Name:        "insights_classify_fields",
		Description: "Classify insight field names (SCALAR_STRING, NESTED_RECORD, ARRAY_OF_NESTED_RECORD), check whether fields and page metrics are accepted as request parameters, and whether breakdowns add output fields. Set list_catalog=true to list every known field.",
	}, ToolClassifyFields(d))

	// Tool 2: insights_build_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "insights_build_schema",
		Description: "Assemble the output schema for a request spec. Insights objects get one field per requested field plus field-producing breakdowns; page objects get the fixed date/metricName/metricValue time-series columns. Unknown fields fail with UNKNOWN_FIELD.",
	}, ToolBuildSchema(d))

	// Tool 3: insights_request_params
	AddTool(srv, &sdkmcp.Tool{
		Name:        "insights_request_params",
		Description: "Validate a request spec and render its API query parameters (fields, breakdowns, metric, period, filtering, level, date_preset). Fields the API refuses as parameters are dropped from the query and listed in not_queryable.",
	}, ToolRequestParams(d))

	// Tool 4: insights_transform
	AddTool(srv, &sdkmcp.Tool{
		Name:        "insights_transform",
		Description: "Transform a raw API response body into typed records for a request spec. Rows are selected with a jq expression (default .data[]), transformed in parallel and stored as a run. Per-record failures are reported without failing the call. Returns a row preview and the run_id for insights_query_rows.",
	}, ToolTransform(d))

	// Tool 5: insights_query_rows
	AddTool(srv, &sdkmcp.Tool{
		Name:        "insights_query_rows",
		Description: "Filter the rows of a stored run by field values (breakdown dimensions, scalar fields, nested action attributes such as actions.action_type), with paging and value facets. Omit run_id to list stored runs.",
	}, ToolQueryRows(d))
}
