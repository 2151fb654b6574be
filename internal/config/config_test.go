package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/adinsights-mcp/pkg/insights"
	"github.com/usestring/adinsights-mcp/pkg/jsoncompact"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 64, cfg.SchemaCacheMaxItems)
	assert.Equal(t, insights.DefaultBatchWorkers, cfg.TransformWorkers)
	assert.Equal(t, 32, cfg.RunStoreMaxRuns)
	assert.Equal(t, DefaultRowsExpression, cfg.RowsExpression)
	assert.Equal(t, MaxRowsPerCallValue, cfg.MaxRowsPerCall)
	assert.False(t, cfg.TimeSeriesLastValue)
	assert.Equal(t, insights.RowPerValue, cfg.TimeSeriesMode())
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, jsoncompact.DefaultMaxBytes, cfg.SnippetOptions().MaxBytes)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SCHEMA_CACHE_MAX_ITEMS", "8")
	t.Setenv("TRANSFORM_WORKERS", "2")
	t.Setenv("ROWS_EXPRESSION", ".rows[]")
	t.Setenv("TIMESERIES_LAST_VALUE_ONLY", "yes")
	t.Setenv("SNIPPET_MAX_STRING_LEN", "16")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()

	assert.Equal(t, 8, cfg.SchemaCacheMaxItems)
	assert.Equal(t, 2, cfg.TransformWorkers)
	assert.Equal(t, ".rows[]", cfg.RowsExpression)
	assert.True(t, cfg.TimeSeriesLastValue)
	assert.Equal(t, insights.LastValueOnly, cfg.TimeSeriesMode())
	assert.Equal(t, 16, cfg.SnippetOptions().MaxStringLen)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("CFG_TEST_INT", "not-a-number")
	t.Setenv("CFG_TEST_BOOL", "maybe")

	assert.Equal(t, 7, getEnvInt("CFG_TEST_INT", 7))
	assert.True(t, getEnvBool("CFG_TEST_BOOL", true))
	assert.Equal(t, "fallback", getEnvString("CFG_TEST_UNSET", "fallback"))
}

func TestLoadEnvFile(t *testing.T) {
	_, set := os.LookupEnv("RUN_STORE_MAX_RUNS")
	require.False(t, set, "RUN_STORE_MAX_RUNS must not be set for this test")
	t.Setenv("SNIPPET_MAX_BYTES", "99")

	path := filepath.Join(t.TempDir(), "adinsights.env")
	require.NoError(t, os.WriteFile(path, []byte("RUN_STORE_MAX_RUNS=7\nSNIPPET_MAX_BYTES=1\n"), 0o600))
	t.Setenv(EnvFileVar, path)
	t.Cleanup(func() { os.Unsetenv("RUN_STORE_MAX_RUNS") })

	cfg := Load()
	assert.Equal(t, 7, cfg.RunStoreMaxRuns)
	assert.Equal(t, 99, cfg.SnippetMaxBytes, "process env wins over the file")
}

func TestLoadEnvFile_MissingExplicit(t *testing.T) {
	t.Setenv(EnvFileVar, filepath.Join(t.TempDir(), "missing.env"))
	cfg := Load()
	assert.Equal(t, 32, cfg.RunStoreMaxRuns)
}
