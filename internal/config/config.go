// Package config provides configuration loading from environment variables.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/usestring/adinsights-mcp/pkg/insights"
	"github.com/usestring/adinsights-mcp/pkg/jsoncompact"
)

// Tool output limit defaults
const (
	DefaultQueryLimitValue = 50
	MaxRowsPerCallValue    = 5000
)

// DefaultRowsExpression selects insight rows out of a paged response body.
const DefaultRowsExpression = ".data[]"

// Config holds all configuration for the MCP server.
type Config struct {
	SchemaCacheMaxItems    int    // SCHEMA_CACHE_MAX_ITEMS, default 64
	TransformWorkers       int    // TRANSFORM_WORKERS, default 8
	RunStoreMaxRuns        int    // RUN_STORE_MAX_RUNS, default 32
	RowsExpression         string // ROWS_EXPRESSION, default ".data[]"
	MaxRowsPerCall         int    // MAX_ROWS_PER_CALL, default 5000
	TimeSeriesLastValue    bool   // TIMESERIES_LAST_VALUE_ONLY, default false
	DefaultRequestSpecFile string // DEFAULT_REQUEST_SPEC_FILE, default ""

	// Error snippet bounds
	SnippetMaxStringLen  int // SNIPPET_MAX_STRING_LEN
	SnippetMaxArrayItems int // SNIPPET_MAX_ARRAY_ITEMS
	SnippetMaxBytes      int // SNIPPET_MAX_BYTES

	DefaultQueryLimit int // DEFAULT_QUERY_LIMIT

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// EnvFileVar names a dotenv file read before the environment. Without it
// ./.env is used when present. Variables already set in the process win.
const EnvFileVar = "ADINSIGHTS_ENV_FILE"

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	loadEnvFile()
	return &Config{
		SchemaCacheMaxItems:    getEnvInt("SCHEMA_CACHE_MAX_ITEMS", 64),
		TransformWorkers:       getEnvInt("TRANSFORM_WORKERS", insights.DefaultBatchWorkers),
		RunStoreMaxRuns:        getEnvInt("RUN_STORE_MAX_RUNS", 32),
		RowsExpression:         getEnvString("ROWS_EXPRESSION", DefaultRowsExpression),
		MaxRowsPerCall:         getEnvInt("MAX_ROWS_PER_CALL", MaxRowsPerCallValue),
		TimeSeriesLastValue:    getEnvBool("TIMESERIES_LAST_VALUE_ONLY", false),
		DefaultRequestSpecFile: getEnvString("DEFAULT_REQUEST_SPEC_FILE", ""),

		SnippetMaxStringLen:  getEnvInt("SNIPPET_MAX_STRING_LEN", jsoncompact.DefaultMaxStringLen),
		SnippetMaxArrayItems: getEnvInt("SNIPPET_MAX_ARRAY_ITEMS", jsoncompact.DefaultMaxArrayItems),
		SnippetMaxBytes:      getEnvInt("SNIPPET_MAX_BYTES", jsoncompact.DefaultMaxBytes),

		DefaultQueryLimit: getEnvInt("DEFAULT_QUERY_LIMIT", DefaultQueryLimitValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// SnippetOptions returns the compaction bounds for error snippets.
func (c *Config) SnippetOptions() *jsoncompact.Options {
	return &jsoncompact.Options{
		MaxArrayItems: c.SnippetMaxArrayItems,
		MaxStringLen:  c.SnippetMaxStringLen,
		MaxDepth:      jsoncompact.DefaultMaxDepth,
		MaxBytes:      c.SnippetMaxBytes,
	}
}

// TimeSeriesMode maps TIMESERIES_LAST_VALUE_ONLY onto a transformer mode.
func (c *Config) TimeSeriesMode() insights.TimeSeriesMode {
	if c.TimeSeriesLastValue {
		return insights.LastValueOnly
	}
	return insights.RowPerValue
}

func loadEnvFile() {
	path, explicit := os.LookupEnv(EnvFileVar)
	if !explicit || path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return
	}
	slog.Warn("ignoring env file", slog.String("path", path), slog.String("error", err.Error()))
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
