package insights

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ObjectType is the advertising object whose insights are requested.
type ObjectType string

const (
	ObjectAccount  ObjectType = "account"
	ObjectCampaign ObjectType = "campaign"
	ObjectAdSet    ObjectType = "adset"
	ObjectAd       ObjectType = "ad"
	ObjectPage     ObjectType = "page"
)

// ObjectTypes lists the supported object types.
var ObjectTypes = []ObjectType{ObjectAccount, ObjectCampaign, ObjectAdSet, ObjectAd, ObjectPage}

// IsTimeSeries reports whether the object answers with metric time series
// instead of insight rows.
func (o ObjectType) IsTimeSeries() bool {
	return o == ObjectPage
}

// Valid reports whether o is one of ObjectTypes.
func (o ObjectType) Valid() bool {
	return slices.Contains(ObjectTypes, o)
}

// LevelDefault leaves the aggregation level to the API.
const LevelDefault = "default"

var validLevels = []string{LevelDefault, "account", "campaign", "adset", "ad"}

var validPeriods = []string{"day", "week", "days_28", "month", "lifetime", "total_over_range"}

var validDatePresets = []string{
	"today", "yesterday", "this_month", "last_month", "this_quarter", "maximum",
	"last_3d", "last_7d", "last_14d", "last_28d", "last_30d", "last_90d",
	"last_week_mon_sun", "last_week_sun_sat", "last_quarter", "last_year",
	"this_week_mon_today", "this_week_sun_today", "this_year",
}

// Filter is one entry of the filtering request parameter.
type Filter struct {
	Field    string `json:"field" yaml:"field"`
	Operator string `json:"operator" yaml:"operator"`
	Value    any    `json:"value" yaml:"value"`
}

// RequestSpec describes one insights request: which object to read, which
// fields or metrics to ask for and how to slice them.
type RequestSpec struct {
	ObjectType ObjectType `json:"object_type" yaml:"object_type"`
	ObjectID   string     `json:"object_id" yaml:"object_id"`
	Fields     []string   `json:"fields,omitempty" yaml:"fields,omitempty"`
	Breakdowns Breakdowns `json:"breakdowns,omitzero" yaml:"breakdowns,omitempty"`
	Metrics    []string   `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Period     string     `json:"period,omitempty" yaml:"period,omitempty"`
	Level      string     `json:"level,omitempty" yaml:"level,omitempty"`
	Filtering  []Filter   `json:"filtering,omitempty" yaml:"filtering,omitempty"`
	DatePreset string     `json:"date_preset,omitempty" yaml:"date_preset,omitempty"`
}

// ParseRequestSpec decodes a request spec from YAML. JSON input is accepted
// since it is valid YAML.
func ParseRequestSpec(data []byte) (*RequestSpec, error) {
	var spec RequestSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing request spec: %w", err)
	}
	spec.ObjectType = ObjectType(strings.ToLower(string(spec.ObjectType)))
	return &spec, nil
}

// Validate checks the spec and reports every problem at once.
func (s *RequestSpec) Validate() error {
	var errs []error

	if !s.ObjectType.Valid() {
		errs = append(errs, fmt.Errorf("object_type %q is not one of %v", s.ObjectType, ObjectTypes))
	}
	if strings.TrimSpace(s.ObjectID) == "" {
		errs = append(errs, errors.New("object_id is required"))
	}

	if s.ObjectType.IsTimeSeries() {
		if len(s.Metrics) == 0 {
			errs = append(errs, errors.New("metrics are required for page objects"))
		}
		for _, m := range s.Metrics {
			if !IsQueryableMetric(m) {
				errs = append(errs, fmt.Errorf("metric %q is not supported", m))
			}
		}
		if s.Period != "" && !slices.Contains(validPeriods, s.Period) {
			errs = append(errs, fmt.Errorf("period %q is not one of %v", s.Period, validPeriods))
		}
	} else if s.ObjectType.Valid() {
		if len(s.Fields) == 0 {
			errs = append(errs, errors.New("fields are required for insights objects"))
		}
		for _, f := range s.Fields {
			if !IsClassifiable(f) {
				errs = append(errs, &UnknownFieldError{Name: f})
			}
		}
	}

	if s.Level != "" && !slices.Contains(validLevels, s.Level) {
		errs = append(errs, fmt.Errorf("level %q is not one of %v", s.Level, validLevels))
	}
	if s.DatePreset != "" && !slices.Contains(validDatePresets, s.DatePreset) {
		errs = append(errs, fmt.Errorf("date_preset %q is not supported", s.DatePreset))
	}
	for i, f := range s.Filtering {
		if f.Field == "" || f.Operator == "" {
			errs = append(errs, fmt.Errorf("filtering[%d] needs field and operator", i))
		}
	}

	return errors.Join(errs...)
}

// BuildSchema assembles the output schema the spec's responses map onto.
func (s *RequestSpec) BuildSchema() (*Schema, error) {
	if s.ObjectType.IsTimeSeries() {
		return BuildTimeSeriesSchema(s.Metrics), nil
	}
	return BuildInsightsSchema(s.Fields, &s.Breakdowns)
}
