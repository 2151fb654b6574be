package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/adinsights-mcp/internal/mcp/tools"
	"github.com/usestring/adinsights-mcp/internal/rowstore"
	"github.com/usestring/adinsights-mcp/pkg/types"
)

// Resource URI scheme: insights://
// Supported URIs:
//   insights://schema/{fingerprint}
//   insights://run/{run_id}

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: tools.SchemaURIPrefix + "{fingerprint}",
		Name:        "Record Schema",
		Description: "JSON Schema (draft 2020-12) of one output record for an assembled schema. insights_build_schema already returns the field list; fetch this to validate records elsewhere.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceSchema)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: tools.RunURIPrefix + "{run_id}",
		Name:        "Transform Run",
		Description: "Every row and failure of a stored transform run. High context cost - insights_query_rows pages and filters the same rows.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceRun)
}

type schemaResource struct {
	Schema     types.SchemaSummary `json:"schema"`
	JSONSchema any                 `json:"json_schema"`
}

type runResource struct {
	Run      types.RunInfo      `json:"run"`
	Rows     []map[string]any   `json:"rows"`
	Failures []rowstore.Failure `json:"failures"`
}

func (s *Server) handleResourceSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	schema, ok := s.deps.Schemas.ByFingerprint(params["fingerprint"])
	if !ok {
		return nil, tools.ErrNotFound("schema", params["fingerprint"])
	}

	return toResourceResult(req.Params.URI, schemaResource{
		Schema:     tools.NewSchemaSummary(schema),
		JSONSchema: schema.JSONSchema(),
	})
}

func (s *Server) handleResourceRun(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	run, ok := s.deps.Runs.Get(params["run_id"])
	if !ok {
		return nil, tools.ErrNotFound("run", params["run_id"])
	}

	failures := run.Failures
	if failures == nil {
		failures = []rowstore.Failure{}
	}
	return toResourceResult(req.Params.URI, runResource{
		Run:      tools.NewRunInfo(run.Summary()),
		Rows:     tools.RowMaps(run.Rows),
		Failures: failures,
	})
}

// parseResourceURI extracts parameters from an insights:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	rest, ok := strings.CutPrefix(uri, "insights://")
	if !ok {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected insights://")
	}

	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[1] == "" {
		return nil, tools.ErrInvalidInput(fmt.Sprintf("resource URI %s is missing an ID", uri))
	}

	params := make(map[string]string)
	switch parts[0] {
	case "schema":
		params["fingerprint"] = parts[1]
	case "run":
		params["run_id"] = parts[1]
	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", parts[0]))
	}
	return params, nil
}

// toResourceResult serializes content as the JSON body of a resource.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
