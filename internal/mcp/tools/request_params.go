package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/adinsights-mcp/pkg/insights"
	"github.com/usestring/adinsights-mcp/pkg/types"
)

// RequestParamsInput is the input for insights_request_params.
type RequestParamsInput struct {
	SpecInput
}

// RequestParamsOutput is the output for insights_request_params.
type RequestParamsOutput struct {
	Params map[string]string `json:"params,omitzero"`
	Query  string            `json:"query"`
	// Requested fields the API does not accept as parameters. They still
	// appear in the schema.
	NotQueryable []string            `json:"not_queryable,omitzero"`
	Schema       types.SchemaSummary `json:"schema"`
}

// ToolRequestParams validates a request spec and renders its query
// parameters.
func ToolRequestParams(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input RequestParamsInput) (*sdkmcp.CallToolResult, RequestParamsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input RequestParamsInput) (*sdkmcp.CallToolResult, RequestParamsOutput, error) {
		spec, err := d.ResolveSpec(input.SpecInput)
		if err != nil {
			return nil, RequestParamsOutput{}, err
		}
		if err := spec.Validate(); err != nil {
			return nil, RequestParamsOutput{}, WrapInsightsError(err)
		}

		values, err := insights.BuildRequestParams(spec)
		if err != nil {
			return nil, RequestParamsOutput{}, WrapInsightsError(err)
		}
		s, err := d.Schema(spec)
		if err != nil {
			return nil, RequestParamsOutput{}, err
		}

		out := RequestParamsOutput{
			Params: make(map[string]string, len(values)),
			Query:  values.Encode(),
			Schema: NewSchemaSummary(s),
		}
		for k := range values {
			out.Params[k] = values.Get(k)
		}
		if !spec.ObjectType.IsTimeSeries() {
			for _, f := range spec.Fields {
				if !insights.IsQueryableField(f) {
					out.NotQueryable = append(out.NotQueryable, f)
				}
			}
		}
		return nil, out, nil
	}
}
