// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/usestring/adinsights-mcp/internal/config"
)

// Service is attached to every record written by the default logger.
const Service = "adinsights-mcp"

const redacted = "[redacted]"

// Graph API credentials that may travel inside request params or spec files.
var secretKeys = map[string]struct{}{
	"access_token":    {},
	"appsecret_proof": {},
	"client_secret":   {},
}

// Options selects the handler and where records go.
type Options struct {
	Level  string
	Format string // text or json
	File   string // empty writes to stderr

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// FromConfig copies the LOG_* settings out of cfg.
func FromConfig(cfg *config.Config) Options {
	return Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	}
}

// Setup installs the default logger. The returned func closes the rotated
// log file, if any, and is safe to call when logging goes to stderr.
func Setup(opts Options) (func() error, error) {
	w, closeFn, err := output(opts)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{
		Level:       parseLevel(opts.Level),
		ReplaceAttr: redactSecrets,
	}
	slog.SetDefault(slog.New(newHandler(opts.Format, w, handlerOpts)).With(slog.String("service", Service)))
	return closeFn, nil
}

// Component returns the default logger tagged with a component name.
func Component(name string) *slog.Logger {
	return slog.Default().With(slog.String("component", name))
}

func output(opts Options) (io.Writer, func() error, error) {
	if opts.File == "" {
		return os.Stderr, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, err
	}
	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
		LocalTime:  true,
	}
	return lj, lj.Close, nil
}

func redactSecrets(_ []string, a slog.Attr) slog.Attr {
	if _, ok := secretKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, redacted)
	}
	return a
}

func newHandler(format string, w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
