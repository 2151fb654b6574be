package mcpsrv

import (
	"context"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/adinsights-mcp/internal/config"
	"github.com/usestring/adinsights-mcp/pkg/insights"
)

// serverConfig collects option values before NewServer wires anything.
type serverConfig struct {
	config      *config.Config
	defaultSpec *insights.RequestSpec

	logLevel string
	logFile  string

	noBuiltinTools   bool
	noBuiltinPrompts bool

	// Extensions run in option order after the builtins. Each one gets the
	// public Deps so generic handlers can close over the run store.
	extensions []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

// WithLogLevel overrides LOG_LEVEL (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) { cfg.logLevel = level }
}

// WithLogFile overrides LOG_FILE. Rotation settings still come from config.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) { cfg.logFile = path }
}

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(c *config.Config) Option {
	return func(cfg *serverConfig) { cfg.config = c }
}

// WithDefaultRequestSpec sets the request spec used by tool calls that name
// none. It takes precedence over DEFAULT_REQUEST_SPEC_FILE.
func WithDefaultRequestSpec(spec *insights.RequestSpec) Option {
	return func(cfg *serverConfig) { cfg.defaultSpec = spec }
}

// WithoutBuiltinTools drops the insights_* tools and the insights:// resources.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) { cfg.noBuiltinTools = true }
}

// WithoutBuiltinPrompts drops the builtin prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) { cfg.noBuiltinPrompts = true }
}

// WithTool registers a tool that needs nothing from the server.
//
//	type CountInput struct {
//	    Fields []string `json:"fields"`
//	}
//
//	func countQueryable(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	    n := 0
//	    for _, f := range in.Fields {
//	        if insights.IsQueryableField(f) {
//	            n++
//	        }
//	    }
//	    return nil, CountOutput{Queryable: n}, nil
//	}
//
//	mcpsrv.WithTool(&mcp.Tool{Name: "count_queryable", Description: "Count requestable fields"}, countQueryable)
//
// The output type is checked the same way the builtin tools are; see AddTool.
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, _ *Deps) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a tool built from Deps, for tools that read stored
// runs, cached schemas or reuse the configured transformer.
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "run_count", Description: "Count stored runs"},
//	    func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, struct{}) (*mcp.CallToolResult, RunCount, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, RunCount, error) {
//	            return nil, RunCount{Runs: d.Runs.Len()}, nil
//	        }
//	    },
//	)
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, deps *Deps) {
			AddTool(srv, tool, builder(deps))
		})
	}
}

// WithPrompt registers a custom prompt.
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, _ *Deps) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResourceTemplate registers a custom resource template, for example a
// CSV view of a stored run:
//
//	mcpsrv.WithResourceTemplate(
//	    &mcp.ResourceTemplate{URITemplate: "csv://run/{run_id}", Name: "run-csv", MIMEType: "text/csv"},
//	    handler,
//	)
func WithResourceTemplate(template *mcp.ResourceTemplate, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, _ *Deps) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}
