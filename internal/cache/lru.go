// Package cache provides caching utilities for the MCP server.
package cache

import (
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/adinsights-mcp/pkg/insights"
)

// SchemaCache keeps recently assembled schemas. Entries are reachable by
// request key and by schema fingerprint.
type SchemaCache struct {
	byKey         *lru.Cache[string, *insights.Schema]
	byFingerprint *lru.Cache[string, *insights.Schema]
	group         singleflight.Group
}

// NewSchemaCache creates a new LRU cache with the specified maximum number of items.
func NewSchemaCache(maxItems int) (*SchemaCache, error) {
	byKey, err := lru.New[string, *insights.Schema](maxItems)
	if err != nil {
		return nil, err
	}
	byFingerprint, err := lru.New[string, *insights.Schema](maxItems)
	if err != nil {
		return nil, err
	}
	return &SchemaCache{byKey: byKey, byFingerprint: byFingerprint}, nil
}

// InsightsKey is the canonical cache key for an insights schema request.
// Field and breakdown order does not matter.
func InsightsKey(fields []string, breakdowns *insights.Breakdowns) string {
	var sb strings.Builder
	sb.WriteString("insights|")
	sb.WriteString(canonical(fields))
	if breakdowns != nil {
		sb.WriteString("|ab=")
		sb.WriteString(canonical(breakdowns.ActionBreakdowns))
		sb.WriteString("|b=")
		sb.WriteString(canonical(breakdowns.Breakdowns))
	}
	return sb.String()
}

// TimeSeriesKey is the cache key for the fixed time-series schema.
const TimeSeriesKey = "time_series"

func canonical(names []string) string {
	sorted := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			sorted = append(sorted, n)
		}
	}
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// GetOrBuild returns the cached schema for key, building it once on a miss.
// Concurrent misses for the same key share one build. Build errors are not
// cached.
func (c *SchemaCache) GetOrBuild(key string, build func() (*insights.Schema, error)) (*insights.Schema, error) {
	if s, ok := c.byKey.Get(key); ok {
		return s, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if s, ok := c.byKey.Get(key); ok {
			return s, nil
		}
		s, err := build()
		if err != nil {
			return nil, err
		}
		c.Put(key, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	s, ok := v.(*insights.Schema)
	if !ok {
		return nil, fmt.Errorf("schema cache: unexpected value %T", v)
	}
	return s, nil
}

// Insights returns the cached insights schema for the request.
func (c *SchemaCache) Insights(fields []string, breakdowns *insights.Breakdowns) (*insights.Schema, error) {
	return c.GetOrBuild(InsightsKey(fields, breakdowns), func() (*insights.Schema, error) {
		return insights.BuildInsightsSchema(fields, breakdowns)
	})
}

// ForSpec returns the cached schema for a request spec.
func (c *SchemaCache) ForSpec(spec *insights.RequestSpec) (*insights.Schema, error) {
	if spec.ObjectType.IsTimeSeries() {
		return c.GetOrBuild(TimeSeriesKey, func() (*insights.Schema, error) {
			return insights.BuildTimeSeriesSchema(spec.Metrics), nil
		})
	}
	return c.Insights(spec.Fields, &spec.Breakdowns)
}

// Put adds or updates a schema in the cache.
func (c *SchemaCache) Put(key string, s *insights.Schema) {
	c.byKey.Add(key, s)
	c.byFingerprint.Add(s.Fingerprint(), s)
}

// ByFingerprint looks up a schema by its fingerprint.
func (c *SchemaCache) ByFingerprint(fingerprint string) (*insights.Schema, bool) {
	return c.byFingerprint.Get(fingerprint)
}

// Len returns the current number of items in the cache.
func (c *SchemaCache) Len() int {
	return c.byKey.Len()
}
