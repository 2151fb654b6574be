package tools

import (
	"strings"

	"github.com/usestring/adinsights-mcp/internal/cache"
	"github.com/usestring/adinsights-mcp/internal/config"
	"github.com/usestring/adinsights-mcp/internal/extract"
	"github.com/usestring/adinsights-mcp/internal/rowstore"
	"github.com/usestring/adinsights-mcp/pkg/insights"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config      *config.Config
	Schemas     *cache.SchemaCache
	Runs        *rowstore.Store
	Extractor   *extract.Extractor
	Transformer *insights.Transformer

	// DefaultSpec is used when a call names no request spec. May be nil.
	DefaultSpec *insights.RequestSpec
}

// SpecInput names a request spec either as YAML/JSON text or through
// individual fields. Text wins when both are given.
type SpecInput struct {
	Spec             string   `json:"spec,omitempty" jsonschema:"Request spec as YAML or JSON text. Overrides the individual fields below"`
	ObjectType       string   `json:"object_type,omitempty" jsonschema:"account, campaign, adset, ad or page"`
	ObjectID         string   `json:"object_id,omitempty" jsonschema:"ID of the object to read"`
	Fields           []string `json:"fields,omitempty" jsonschema:"Insight fields (non-page objects)"`
	ActionBreakdowns []string `json:"action_breakdowns,omitempty" jsonschema:"Action breakdown dimensions"`
	Breakdowns       []string `json:"breakdowns,omitempty" jsonschema:"Breakdown dimensions; some add output fields"`
	Metrics          []string `json:"metrics,omitempty" jsonschema:"Page metrics (page objects)"`
	Period           string   `json:"period,omitempty" jsonschema:"Metric period, e.g. day"`
	Level            string   `json:"level,omitempty" jsonschema:"Aggregation level"`
	DatePreset       string   `json:"date_preset,omitempty" jsonschema:"Date preset, e.g. last_7d"`
}

func (in SpecInput) empty() bool {
	return in.Spec == "" && in.ObjectType == "" && len(in.Fields) == 0 && len(in.Metrics) == 0
}

// ResolveSpec turns in into a request spec, falling back to DefaultSpec when
// in names nothing.
func (d *Deps) ResolveSpec(in SpecInput) (*insights.RequestSpec, error) {
	if in.Spec != "" {
		spec, err := insights.ParseRequestSpec([]byte(in.Spec))
		if err != nil {
			return nil, ErrInvalidInput(err.Error())
		}
		return spec, nil
	}
	if in.empty() {
		if d.DefaultSpec == nil {
			return nil, ErrInvalidInput("spec, object_type or fields is required (no default request spec configured)")
		}
		spec := *d.DefaultSpec
		return &spec, nil
	}

	objectType := insights.ObjectType(strings.ToLower(in.ObjectType))
	if objectType == "" {
		objectType = insights.ObjectAdSet
		if len(in.Fields) == 0 && len(in.Metrics) > 0 {
			objectType = insights.ObjectPage
		}
	}
	return &insights.RequestSpec{
		ObjectType: objectType,
		ObjectID:   in.ObjectID,
		Fields:     in.Fields,
		Breakdowns: insights.Breakdowns{
			ActionBreakdowns: in.ActionBreakdowns,
			Breakdowns:       in.Breakdowns,
		},
		Metrics:    in.Metrics,
		Period:     in.Period,
		Level:      in.Level,
		DatePreset: in.DatePreset,
	}, nil
}

// Schema returns the cached schema for spec.
func (d *Deps) Schema(spec *insights.RequestSpec) (*insights.Schema, error) {
	if !spec.ObjectType.Valid() {
		return nil, ErrInvalidInput("object_type " + string(spec.ObjectType) + " is not supported")
	}
	s, err := d.Schemas.ForSpec(spec)
	if err != nil {
		return nil, WrapInsightsError(err)
	}
	return s, nil
}
