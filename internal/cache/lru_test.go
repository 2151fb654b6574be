package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/adinsights-mcp/pkg/insights"
)

func TestInsightsKey_OrderIndependent(t *testing.T) {
	a := InsightsKey([]string{"spend", "cpc", "spend"}, &insights.Breakdowns{Breakdowns: []string{"age", "gender"}})
	b := InsightsKey([]string{"cpc", "spend"}, &insights.Breakdowns{Breakdowns: []string{"gender", "age"}})
	assert.Equal(t, a, b)

	c := InsightsKey([]string{"cpc", "spend"}, nil)
	assert.NotEqual(t, a, c)
}

func TestSchemaCache_GetOrBuildOnce(t *testing.T) {
	c, err := NewSchemaCache(4)
	require.NoError(t, err)

	var builds atomic.Int32
	build := func() (*insights.Schema, error) {
		builds.Add(1)
		return insights.BuildInsightsSchema([]string{"spend"}, nil)
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := c.GetOrBuild("k", build)
			assert.NoError(t, err)
			assert.Equal(t, []string{"spend"}, s.Names())
		}()
	}
	wg.Wait()

	_, err = c.GetOrBuild("k", build)
	require.NoError(t, err)
	before := builds.Load()
	_, err = c.GetOrBuild("k", build)
	require.NoError(t, err)
	assert.Equal(t, before, builds.Load())
	assert.Equal(t, 1, c.Len())
}

func TestSchemaCache_ErrorsNotCached(t *testing.T) {
	c, err := NewSchemaCache(4)
	require.NoError(t, err)

	_, err = c.Insights([]string{"bogus"}, nil)
	assert.True(t, errors.Is(err, insights.ErrUnknownField))
	assert.Equal(t, 0, c.Len())
}

func TestSchemaCache_ByFingerprint(t *testing.T) {
	c, err := NewSchemaCache(4)
	require.NoError(t, err)

	s, err := c.Insights([]string{"spend", "actions"}, nil)
	require.NoError(t, err)

	got, ok := c.ByFingerprint(s.Fingerprint())
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = c.ByFingerprint("missing")
	assert.False(t, ok)
}

func TestSchemaCache_ForSpec(t *testing.T) {
	c, err := NewSchemaCache(4)
	require.NoError(t, err)

	ts, err := c.ForSpec(&insights.RequestSpec{ObjectType: insights.ObjectPage, Metrics: []string{"page_fans"}})
	require.NoError(t, err)
	assert.Equal(t, insights.KindTimeSeries, ts.Kind())

	s, err := c.ForSpec(&insights.RequestSpec{ObjectType: insights.ObjectAd, Fields: []string{"spend"}})
	require.NoError(t, err)
	assert.Equal(t, insights.KindInsights, s.Kind())
	assert.Equal(t, 2, c.Len())
}

func TestSchemaCache_Eviction(t *testing.T) {
	c, err := NewSchemaCache(1)
	require.NoError(t, err)

	_, err = c.Insights([]string{"spend"}, nil)
	require.NoError(t, err)
	_, err = c.Insights([]string{"cpc"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestNewSchemaCache_InvalidSize(t *testing.T) {
	_, err := NewSchemaCache(0)
	assert.Error(t, err)
}
