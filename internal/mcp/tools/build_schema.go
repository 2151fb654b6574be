package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/adinsights-mcp/pkg/insights"
	"github.com/usestring/adinsights-mcp/pkg/types"
)

// BuildSchemaInput is the input for insights_build_schema.
type BuildSchemaInput struct {
	SpecInput
	IncludeJSONSchema bool `json:"include_json_schema,omitempty" jsonschema:"Inline the JSON Schema document of one output record"`
}

// BuildSchemaOutput is the output for insights_build_schema.
type BuildSchemaOutput struct {
	Schema types.SchemaSummary `json:"schema"`
	// Breakdowns that only shape the request and add no output field.
	RequestOnlyBreakdowns []string `json:"request_only_breakdowns,omitzero"`
	JSONSchema            any      `json:"json_schema,omitempty"`
}

// ToolBuildSchema assembles the output schema for a request spec.
func ToolBuildSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input BuildSchemaInput) (*sdkmcp.CallToolResult, BuildSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input BuildSchemaInput) (*sdkmcp.CallToolResult, BuildSchemaOutput, error) {
		spec, err := d.ResolveSpec(input.SpecInput)
		if err != nil {
			return nil, BuildSchemaOutput{}, err
		}
		s, err := d.Schema(spec)
		if err != nil {
			return nil, BuildSchemaOutput{}, err
		}

		out := BuildSchemaOutput{Schema: NewSchemaSummary(s)}
		if !spec.ObjectType.IsTimeSeries() {
			for _, b := range spec.Breakdowns.Breakdowns {
				if !insights.IsFieldBreakdown(b) {
					out.RequestOnlyBreakdowns = append(out.RequestOnlyBreakdowns, b)
				}
			}
		}
		if input.IncludeJSONSchema {
			doc, err := types.ToAny(s.JSONSchema())
			if err != nil {
				return nil, BuildSchemaOutput{}, err
			}
			out.JSONSchema = doc
		}
		return nil, out, nil
	}
}
