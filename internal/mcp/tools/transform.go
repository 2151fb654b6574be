package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/adinsights-mcp/internal/extract"
	"github.com/usestring/adinsights-mcp/internal/rowstore"
	"github.com/usestring/adinsights-mcp/internal/schema"
	"github.com/usestring/adinsights-mcp/pkg/insights"
	"github.com/usestring/adinsights-mcp/pkg/types"
)

// maxValidationErrors bounds the validation messages returned per call.
const maxValidationErrors = 20

// TransformInput is the input for insights_transform.
type TransformInput struct {
	SpecInput
	Body           string `json:"body" jsonschema:"required,Raw API response body (JSON text)"`
	RowsExpression string `json:"rows_expression,omitempty" jsonschema:"jq expression selecting row objects from the body (default: configured ROWS_EXPRESSION, usually .data[])"`
	Validate       bool   `json:"validate,omitempty" jsonschema:"Check every output record against the schema's JSON Schema"`
	MaxRows        int    `json:"max_rows,omitempty" jsonschema:"Rows to return inline (default: 50). All rows are stored in the run"`
}

// ExtractionInfo reports how rows were selected from the body.
type ExtractionInfo struct {
	Expression string   `json:"expression"`
	Selected   int      `json:"selected"`
	Skipped    int      `json:"skipped"`
	Truncated  bool     `json:"truncated,omitempty"`
	ByPath     bool     `json:"by_path"`
	Errors     []string `json:"errors,omitzero"`

	// Set when rows_expression is not a path expression and computes
	// decimals, whose text is rendered by jq rather than copied.
	NumbersNormalized bool `json:"numbers_normalized,omitempty"`
}

// ValidationSummary counts records that failed schema validation.
type ValidationSummary struct {
	Checked int      `json:"checked"`
	Invalid int      `json:"invalid"`
	Errors  []string `json:"errors,omitzero"`
}

// TransformOutput is the output for insights_transform.
type TransformOutput struct {
	Run               types.RunInfo         `json:"run"`
	Schema            types.SchemaSummary   `json:"schema"`
	Extraction        ExtractionInfo        `json:"extraction"`
	Rows              []map[string]any      `json:"rows,omitzero"`
	Failures          []types.RecordFailure `json:"failures,omitzero"`
	IgnoredFields     []string              `json:"ignored_fields,omitzero"`
	DroppedAttributes []string              `json:"dropped_attributes,omitzero"`
	Validation        *ValidationSummary    `json:"validation,omitempty"`
}

// ToolTransform maps a raw response body onto the spec's schema and stores
// the result as a queryable run.
func ToolTransform(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input TransformInput) (*sdkmcp.CallToolResult, TransformOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input TransformInput) (*sdkmcp.CallToolResult, TransformOutput, error) {
		if input.Body == "" {
			return nil, TransformOutput{}, ErrInvalidInput("body is required")
		}
		spec, err := d.ResolveSpec(input.SpecInput)
		if err != nil {
			return nil, TransformOutput{}, err
		}
		s, err := d.Schema(spec)
		if err != nil {
			return nil, TransformOutput{}, err
		}

		ex := d.Extractor
		if input.RowsExpression != "" {
			ex, err = extract.New(input.RowsExpression)
			if err != nil {
				return nil, TransformOutput{}, ErrInvalidInput(err.Error())
			}
		}
		extracted, err := ex.Rows(ctx, []byte(input.Body), d.Config.MaxRowsPerCall)
		if err != nil {
			if ctx.Err() != nil {
				return nil, TransformOutput{}, WrapInsightsError(err)
			}
			return nil, TransformOutput{}, &CodedError{Code: ErrCodeMalformedResponse, Message: "cannot select rows", Cause: err}
		}

		results, err := d.Transformer.TransformBatch(ctx, extracted.Rows, s, d.Config.TransformWorkers)
		if err != nil {
			return nil, TransformOutput{}, WrapInsightsError(err)
		}
		rows, failed := insights.CollectRows(results)

		out := TransformOutput{
			Schema: NewSchemaSummary(s),
			Extraction: ExtractionInfo{
				Expression: ex.Expression(),
				Selected:   len(extracted.Rows),
				Skipped:    extracted.Skipped,
				Truncated:  extracted.Truncated,
				ByPath:     extracted.ByPath,
				Errors:     extracted.Errors,

				NumbersNormalized: extracted.NumbersNormalized,
			},
		}

		stored := make([]rowstore.Failure, 0, len(failed))
		for _, f := range failed {
			code := ErrCodeMalformedResponse
			var coded *CodedError
			if errors.As(WrapInsightsError(f.Err), &coded) {
				code = coded.Code
			}
			stored = append(stored, rowstore.Failure{Index: f.Index, Error: f.Err.Error()})
			out.Failures = append(out.Failures, types.RecordFailure{Index: f.Index, Code: code, Error: f.Err.Error()})
		}

		out.IgnoredFields, out.DroppedAttributes = mergeDiagnostics(rows)

		if input.Validate {
			v, err := d.Validator(s)
			if err != nil {
				return nil, TransformOutput{}, err
			}
			out.Validation = validateRows(v, rows)
		}

		run := d.Runs.Put(s, rows, stored)
		out.Run = NewRunInfo(run.Summary())

		limit := input.MaxRows
		if limit <= 0 {
			limit = d.Config.DefaultQueryLimit
		}
		preview := rows
		if len(preview) > limit {
			preview = preview[:limit]
		}
		if len(preview) > 0 {
			out.Rows = RowMaps(preview)
		}

		slog.Debug("transformed response",
			slog.String("run_id", run.ID),
			slog.String("schema", s.Fingerprint()),
			slog.Int("rows", len(rows)),
			slog.Int("failures", len(failed)),
		)
		return nil, out, nil
	}
}

// Validator returns a record validator for s.
func (d *Deps) Validator(s *insights.Schema) (*schema.RecordValidator, error) {
	v, err := schema.NewRecordValidator(s)
	if err != nil {
		return nil, &CodedError{Code: ErrCodeInvalidInput, Message: "cannot compile record schema", Cause: err}
	}
	return v, nil
}

func validateRows(v *schema.RecordValidator, rows []insights.Row) *ValidationSummary {
	summary := &ValidationSummary{Checked: len(rows)}
	for i, row := range rows {
		res := v.ValidateRow(row)
		if res.Valid {
			continue
		}
		summary.Invalid++
		for _, e := range res.Errors {
			if len(summary.Errors) >= maxValidationErrors {
				break
			}
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %s", i, e))
		}
	}
	return summary
}

// mergeDiagnostics unions the per-row diagnostics of insights rows.
func mergeDiagnostics(rows []insights.Row) (ignored, dropped []string) {
	ignoredSet := make(map[string]bool)
	droppedSet := make(map[string]bool)
	for _, r := range rows {
		ir, ok := r.(*insights.InsightsRow)
		if !ok || ir.Diagnostics.Empty() {
			continue
		}
		for _, f := range ir.Diagnostics.IgnoredFields {
			ignoredSet[f] = true
		}
		for _, a := range ir.Diagnostics.DroppedAttributes {
			droppedSet[a] = true
		}
	}
	return sortedKeys(ignoredSet), sortedKeys(droppedSet)
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
