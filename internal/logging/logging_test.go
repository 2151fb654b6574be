package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/adinsights-mcp/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestRedactSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler("json", &buf, &slog.HandlerOptions{ReplaceAttr: redactSecrets}))
	logger.Info("request params",
		slog.String("access_token", "EAAB..."),
		slog.String("fields", "spend,impressions"),
	)

	line := decodeLine(t, &buf)
	assert.Equal(t, redacted, line["access_token"])
	assert.Equal(t, "spend,impressions", line["fields"])
}

func TestNewHandler_TextDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler("", &buf, &slog.HandlerOptions{}))
	logger.Info("schema built", slog.String("fingerprint", "abc"))
	assert.Contains(t, buf.String(), "fingerprint=abc")
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{LogLevel: "debug", LogFormat: "json", LogFile: "/tmp/x.log", LogMaxSizeMB: 3, LogCompress: true}
	opts := FromConfig(cfg)
	assert.Equal(t, Options{Level: "debug", Format: "json", File: "/tmp/x.log", MaxSizeMB: 3, Compress: true}, opts)
}

func TestSetup_FileWithComponent(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "server.log")
	closeFn, err := Setup(Options{Format: "json", File: path, MaxSizeMB: 1})
	require.NoError(t, err)
	Component("transform").Info("batch done", slog.Int("rows", 3))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := decodeLine(t, bytes.NewBuffer(data))
	assert.Equal(t, Service, line["service"])
	assert.Equal(t, "transform", line["component"])
	assert.Equal(t, float64(3), line["rows"])
}
