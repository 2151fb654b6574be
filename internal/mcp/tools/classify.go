package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/adinsights-mcp/pkg/insights"
)

// ClassifyFieldsInput is the input for insights_classify_fields.
type ClassifyFieldsInput struct {
	Fields      []string `json:"fields,omitempty" jsonschema:"Insight field names to classify"`
	Metrics     []string `json:"metrics,omitempty" jsonschema:"Page metric names to check"`
	Breakdowns  []string `json:"breakdowns,omitempty" jsonschema:"Breakdown dimensions to check"`
	ListCatalog bool     `json:"list_catalog,omitempty" jsonschema:"Also return every classifiable field and nested attribute name"`
}

// FieldClassification is the verdict for one field name.
type FieldClassification struct {
	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name,omitempty"`
	Category       string `json:"category,omitempty"`
	Classifiable   bool   `json:"classifiable"`
	Queryable      bool   `json:"queryable"`
}

// MetricCheck is the verdict for one page metric.
type MetricCheck struct {
	Name      string `json:"name"`
	Queryable bool   `json:"queryable"`
}

// BreakdownCheck is the verdict for one breakdown dimension.
type BreakdownCheck struct {
	Name      string `json:"name"`
	AddsField bool   `json:"adds_field"`
}

// CatalogListing lists the classifiable names per category.
type CatalogListing struct {
	Scalar               []string `json:"scalar"`
	Nested               []string `json:"nested"`
	ArrayOfNested        []string `json:"array_of_nested"`
	ActionStatAttributes []string `json:"action_stat_attributes"`
}

// ClassifyFieldsOutput is the output for insights_classify_fields.
type ClassifyFieldsOutput struct {
	Fields     []FieldClassification `json:"fields,omitzero"`
	Metrics    []MetricCheck         `json:"metrics,omitzero"`
	Breakdowns []BreakdownCheck      `json:"breakdowns,omitzero"`
	Unknown    []string              `json:"unknown,omitzero"`
	Catalog    *CatalogListing       `json:"catalog,omitempty"`
}

// ToolClassifyFields reports catalog categories and request-parameter
// support for field, metric and breakdown names.
func ToolClassifyFields(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ClassifyFieldsInput) (*sdkmcp.CallToolResult, ClassifyFieldsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ClassifyFieldsInput) (*sdkmcp.CallToolResult, ClassifyFieldsOutput, error) {
		if len(input.Fields) == 0 && len(input.Metrics) == 0 && len(input.Breakdowns) == 0 && !input.ListCatalog {
			return nil, ClassifyFieldsOutput{}, ErrInvalidInput("fields, metrics, breakdowns or list_catalog is required")
		}

		var out ClassifyFieldsOutput
		for _, name := range input.Fields {
			fc := FieldClassification{
				Name:      name,
				Queryable: insights.IsQueryableField(name),
			}
			if n := insights.NormalizeFieldName(name); n != name {
				fc.NormalizedName = n
			}
			if f, err := insights.Classify(name); err == nil {
				fc.Classifiable = true
				fc.Category = f.Category.String()
			} else {
				out.Unknown = append(out.Unknown, name)
			}
			out.Fields = append(out.Fields, fc)
		}
		for _, name := range input.Metrics {
			out.Metrics = append(out.Metrics, MetricCheck{Name: name, Queryable: insights.IsQueryableMetric(name)})
		}
		for _, name := range input.Breakdowns {
			out.Breakdowns = append(out.Breakdowns, BreakdownCheck{Name: name, AddsField: insights.IsFieldBreakdown(name)})
		}

		if input.ListCatalog {
			out.Catalog = &CatalogListing{
				Scalar:               insights.CatalogNames(insights.CategoryScalarString),
				Nested:               insights.CatalogNames(insights.CategoryNestedRecord),
				ArrayOfNested:        insights.CatalogNames(insights.CategoryArrayOfNestedRecord),
				ActionStatAttributes: insights.ActionStatAttributes(),
			}
		}
		return nil, out, nil
	}
}
