package tools

import (
	"context"
	"slices"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/adinsights-mcp/internal/rowstore"
	"github.com/usestring/adinsights-mcp/pkg/types"
)

// QueryRowsInput is the input for insights_query_rows.
type QueryRowsInput struct {
	RunID      string              `json:"run_id,omitempty" jsonschema:"Run to query. Omit to list stored runs"`
	Where      map[string][]string `json:"where,omitempty" jsonschema:"Field -> accepted values. Fields are ANDed, values ORed. Nested action attributes are addressed as field.attribute, e.g. actions.action_type"`
	Offset     int                 `json:"offset,omitempty" jsonschema:"Rows to skip"`
	Limit      int                 `json:"limit,omitempty" jsonschema:"Max rows to return (default: 50)"`
	FacetField string              `json:"facet_field,omitempty" jsonschema:"Return value counts for this field across the whole run"`
	FacetLimit int                 `json:"facet_limit,omitempty" jsonschema:"Max facet buckets (default: 20)"`
}

// QueryRowsOutput is the output for insights_query_rows.
type QueryRowsOutput struct {
	Runs          []types.RunInfo       `json:"runs,omitzero"`
	Run           *types.RunInfo        `json:"run,omitempty"`
	Total         int                   `json:"total"`
	RowIDs        []int                 `json:"row_ids,omitzero"`
	Rows          []map[string]any      `json:"rows,omitzero"`
	IndexedFields []string              `json:"indexed_fields,omitzero"`
	Facet         []rowstore.ValueCount `json:"facet,omitzero"`
}

const defaultFacetLimit = 20

// ToolQueryRows filters the rows of a stored run by field values.
func ToolQueryRows(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryRowsInput) (*sdkmcp.CallToolResult, QueryRowsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryRowsInput) (*sdkmcp.CallToolResult, QueryRowsOutput, error) {
		if input.RunID == "" {
			var out QueryRowsOutput
			for _, s := range d.Runs.List() {
				out.Runs = append(out.Runs, NewRunInfo(s))
			}
			out.Total = len(out.Runs)
			return nil, out, nil
		}

		run, ok := d.Runs.Get(input.RunID)
		if !ok {
			return nil, QueryRowsOutput{}, ErrNotFound("run", input.RunID)
		}

		indexed := run.IndexedFields()
		for field := range input.Where {
			if _, found := slices.BinarySearch(indexed, field); !found {
				return nil, QueryRowsOutput{}, ErrInvalidInput("field " + field + " is not indexed; indexed fields: " + strings.Join(indexed, ", "))
			}
		}
		if input.FacetField != "" {
			if _, found := slices.BinarySearch(indexed, input.FacetField); !found {
				return nil, QueryRowsOutput{}, ErrInvalidInput("facet_field " + input.FacetField + " is not indexed")
			}
		}

		limit := input.Limit
		if limit <= 0 {
			limit = d.Config.DefaultQueryLimit
		}
		if limit > d.Config.MaxRowsPerCall {
			limit = d.Config.MaxRowsPerCall
		}

		res := run.Query(rowstore.Query{Where: input.Where, Offset: input.Offset, Limit: limit})
		info := NewRunInfo(run.Summary())
		out := QueryRowsOutput{
			Run:           &info,
			Total:         int(res.Total),
			IndexedFields: indexed,
		}
		for _, id := range res.RowIDs {
			out.RowIDs = append(out.RowIDs, int(id))
		}
		if len(res.Rows) > 0 {
			out.Rows = RowMaps(res.Rows)
		}

		if input.FacetField != "" {
			facetLimit := input.FacetLimit
			if facetLimit <= 0 {
				facetLimit = defaultFacetLimit
			}
			out.Facet = run.Facet(input.FacetField, facetLimit)
		}
		return nil, out, nil
	}
}
