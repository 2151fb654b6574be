// Package tools contains MCP tool implementations for adinsights.
package tools

import (
	"time"

	"github.com/usestring/adinsights-mcp/internal/rowstore"
	"github.com/usestring/adinsights-mcp/pkg/insights"
	"github.com/usestring/adinsights-mcp/pkg/types"
)

// MIME type constant.
const MimeJSON = "application/json"

// Resource URI prefixes.
const (
	SchemaURIPrefix = "insights://schema/"
	RunURIPrefix    = "insights://run/"
)

// SchemaURI returns the resource URI of a schema.
func SchemaURI(fingerprint string) string {
	return SchemaURIPrefix + fingerprint
}

// RunURI returns the resource URI of a stored run.
func RunURI(runID string) string {
	return RunURIPrefix + runID
}

// NewSchemaSummary describes s for tool and resource output.
func NewSchemaSummary(s *insights.Schema) types.SchemaSummary {
	summary := types.SchemaSummary{
		Kind:        s.Kind().String(),
		Fingerprint: s.Fingerprint(),
		Resource: types.ResourceRef{
			URI:  SchemaURI(s.Fingerprint()),
			MIME: MimeJSON,
			Hint: "JSON Schema of one output record",
		},
	}
	for _, f := range s.Fields() {
		summary.Fields = append(summary.Fields, types.FieldInfo{
			Name:     f.Name,
			Category: f.Category.String(),
			Nullable: f.Nullable,
		})
	}
	for _, c := range s.Columns() {
		summary.Columns = append(summary.Columns, types.ColumnInfo{Name: c.Name, Type: c.Type})
	}
	return summary
}

// NewRunInfo describes a stored run.
func NewRunInfo(summary rowstore.RunSummary) types.RunInfo {
	return types.RunInfo{
		RunID:             summary.ID,
		CreatedAt:         summary.CreatedAt.UTC().Format(time.RFC3339),
		Kind:              summary.Kind.String(),
		SchemaFingerprint: summary.Fingerprint,
		Rows:              summary.Rows,
		Failures:          summary.Failures,
		Resource: types.ResourceRef{
			URI:  RunURI(summary.ID),
			MIME: MimeJSON,
			Hint: "All rows and failures of the run",
		},
	}
}

// RowMaps renders rows as plain JSON objects.
func RowMaps(rows []insights.Row) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		switch v := r.(type) {
		case *insights.InsightsRow:
			out = append(out, v.Map())
		case *insights.TimeSeriesRow:
			out = append(out, v.Map())
		}
	}
	return out
}
