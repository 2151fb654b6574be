package mcpsrv

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/adinsights-mcp/internal/cache"
	"github.com/usestring/adinsights-mcp/internal/config"
	"github.com/usestring/adinsights-mcp/internal/extract"
	"github.com/usestring/adinsights-mcp/internal/logging"
	"github.com/usestring/adinsights-mcp/internal/mcp"
	"github.com/usestring/adinsights-mcp/internal/mcp/tools"
	"github.com/usestring/adinsights-mcp/internal/rowstore"
	"github.com/usestring/adinsights-mcp/pkg/insights"
)

// Server is the adinsights MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with the builtin insights tools.
// Use functional options to configure logging, add custom tools, etc.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &serverConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.config == nil {
		cfg.config = config.Load()
	}

	logOpts := logging.FromConfig(cfg.config)
	if cfg.logLevel != "" {
		logOpts.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logOpts.File = cfg.logFile
	}
	logCleanup, err := logging.Setup(logOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	// Create infrastructure
	schemas, err := cache.NewSchemaCache(cfg.config.SchemaCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema cache: %w", err)
	}
	extractor, err := extract.New(cfg.config.RowsExpression)
	if err != nil {
		return nil, fmt.Errorf("invalid ROWS_EXPRESSION: %w", err)
	}
	transformer := insights.NewTransformer(
		insights.WithTimeSeriesMode(cfg.config.TimeSeriesMode()),
		insights.WithSnippetOptions(cfg.config.SnippetOptions()),
		insights.WithLogger(logging.Component("transform")),
	)
	runs := rowstore.New(cfg.config.RunStoreMaxRuns)

	defaultSpec := cfg.defaultSpec
	if defaultSpec == nil && cfg.config.DefaultRequestSpecFile != "" {
		defaultSpec, err = loadRequestSpec(cfg.config.DefaultRequestSpecFile)
		if err != nil {
			return nil, err
		}
	}

	// Create deps for internal tools and custom tools
	toolDeps := &tools.Deps{
		Config:      cfg.config,
		Schemas:     schemas,
		Runs:        runs,
		Extractor:   extractor,
		Transformer: transformer,
		DefaultSpec: defaultSpec,
	}

	// Create public deps (same values, different type for public API)
	deps := &Deps{
		Config:      cfg.config,
		Schemas:     schemas,
		Runs:        runs,
		Extractor:   extractor,
		Transformer: transformer,
		DefaultSpec: defaultSpec,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.noBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.noBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}
	for _, fn := range cfg.extensions {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// loadRequestSpec reads and validates a YAML or JSON request spec file.
func loadRequestSpec(path string) (*insights.RequestSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request spec: %w", err)
	}
	spec, err := insights.ParseRequestSpec(data)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("request spec %s: %w", path, err)
	}
	slog.Info("loaded default request spec",
		slog.String("path", path),
		slog.String("object_type", string(spec.ObjectType)),
	)
	return spec, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
