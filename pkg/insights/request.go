package insights

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Request parameter names.
const (
	ParamFields           = "fields"
	ParamMetric           = "metric"
	ParamPeriod           = "period"
	ParamBreakdowns       = "breakdowns"
	ParamActionBreakdowns = "action_breakdowns"
	ParamFiltering        = "filtering"
	ParamLevel            = "level"
	ParamDatePreset       = "date_preset"
)

// BuildRequestParams renders the query parameters for spec. Fields and
// metrics the API refuses as parameters are filtered out rather than
// rejected, so a schema may name breakdown-generated fields freely.
func BuildRequestParams(spec *RequestSpec) (url.Values, error) {
	if !spec.ObjectType.Valid() {
		return nil, fmt.Errorf("object_type %q is not supported", spec.ObjectType)
	}

	params := url.Values{}

	if spec.ObjectType.IsTimeSeries() {
		params.Set(ParamFields, "name,values")
		if metrics := filterNames(spec.Metrics, IsQueryableMetric); len(metrics) > 0 {
			params.Set(ParamMetric, strings.Join(metrics, ","))
		}
		if spec.Period != "" {
			params.Set(ParamPeriod, spec.Period)
		}
	} else {
		if fields := filterNames(spec.Fields, IsQueryableField); len(fields) > 0 {
			params.Set(ParamFields, strings.Join(fields, ","))
		}
		if len(spec.Breakdowns.ActionBreakdowns) > 0 {
			params.Set(ParamActionBreakdowns, strings.Join(spec.Breakdowns.ActionBreakdowns, ","))
		}
		if len(spec.Breakdowns.Breakdowns) > 0 {
			params.Set(ParamBreakdowns, strings.Join(spec.Breakdowns.Breakdowns, ","))
		}
	}

	if len(spec.Filtering) > 0 {
		b, err := json.Marshal(spec.Filtering)
		if err != nil {
			return nil, fmt.Errorf("encoding filtering: %w", err)
		}
		params.Set(ParamFiltering, string(b))
	}
	if spec.Level != "" && spec.Level != LevelDefault {
		params.Set(ParamLevel, spec.Level)
	}
	if spec.DatePreset != "" {
		params.Set(ParamDatePreset, spec.DatePreset)
	}
	return params, nil
}

func filterNames(names []string, keep func(string) bool) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] || !keep(n) {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
