package mcp

import (
	"context"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/adinsights-mcp/internal/mcp/prompts"
	"github.com/usestring/adinsights-mcp/internal/mcp/tools"
)

const (
	serverName    = "adinsights-mcp"
	serverVersion = "1.0.0"
)

const instructions = `Maps advertising insights API responses onto typed records.
Start with insights_build_schema or insights_request_params for a request spec,
then pass raw response pages to insights_transform. Each transform stores a run
that insights_query_rows and the insights://run/{run_id} resource can read back.`

// Server owns the SDK server and decides which builtin capabilities it exposes.
type Server struct {
	mcpServer *sdkmcp.Server
	deps      *tools.Deps

	tools   bool
	prompts bool
	extras  []func(*sdkmcp.Server)
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithBuiltinTools registers the insights tools and the schema/run resources.
func WithBuiltinTools() ServerOption {
	return func(s *Server) { s.tools = true }
}

// WithBuiltinPrompts registers the insights prompts.
func WithBuiltinPrompts() ServerOption {
	return func(s *Server) { s.prompts = true }
}

// WithCustomRegistration runs fn against the SDK server after the builtins
// are registered, so callers can add or shadow tools, prompts and resources.
func WithCustomRegistration(fn func(*sdkmcp.Server)) ServerOption {
	return func(s *Server) { s.extras = append(s.extras, fn) }
}

// NewServer builds the MCP server over deps.
func NewServer(deps *tools.Deps, opts ...ServerOption) (*Server, error) {
	if err := checkDeps(deps); err != nil {
		return nil, err
	}

	s := &Server{deps: deps}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: serverName, Version: serverVersion},
		&sdkmcp.ServerOptions{Instructions: instructions},
	)
	s.mcpServer.AddReceivingMiddleware(LoggingMiddleware())

	if s.tools {
		tools.Register(s.mcpServer, deps)
		s.registerResources()
	}
	if s.prompts {
		prompts.Register(s.mcpServer, promptConfig(deps))
	}
	for _, fn := range s.extras {
		fn(s.mcpServer)
	}
	return s, nil
}

func checkDeps(deps *tools.Deps) error {
	switch {
	case deps == nil:
		return errors.New("deps is required")
	case deps.Config == nil:
		return errors.New("deps.Config is required")
	case deps.Schemas == nil || deps.Runs == nil:
		return errors.New("schema cache and run store are required")
	case deps.Extractor == nil || deps.Transformer == nil:
		return errors.New("extractor and transformer are required")
	}
	return nil
}

// promptConfig surfaces the server defaults the prompts mention.
func promptConfig(deps *tools.Deps) *prompts.Config {
	cfg := &prompts.Config{
		RowsExpression:      deps.Extractor.Expression(),
		TimeSeriesLastValue: deps.Config.TimeSeriesLastValue,
	}
	if deps.DefaultSpec != nil {
		cfg.DefaultObjectType = string(deps.DefaultSpec.ObjectType)
	}
	return cfg
}

// Run serves over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.mcpServer
}
