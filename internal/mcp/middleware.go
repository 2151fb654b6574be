package mcp

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/adinsights-mcp/internal/mcp/tools"
)

// LoggingMiddleware logs every incoming method with its target and latency.
// Tool calls that come back as error results are logged at warn level.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)

			attrs := append([]slog.Attr{
				slog.String("method", method),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}, targetAttrs(req)...)

			switch {
			case err != nil:
				var coded *tools.CodedError
				if errors.As(err, &coded) {
					attrs = append(attrs, slog.String("code", coded.Code))
				}
				attrs = append(attrs, slog.String("error", err.Error()))
				slog.LogAttrs(ctx, slog.LevelError, "method call failed", attrs...)
			case isErrorResult(result):
				attrs = append(attrs, slog.String("error", resultText(result)))
				slog.LogAttrs(ctx, slog.LevelWarn, "tool returned error", attrs...)
			default:
				slog.LogAttrs(ctx, methodLevel(method), "method call completed", attrs...)
			}
			return result, err
		}
	}
}

// targetAttrs names the tool, prompt or resource a request addresses.
func targetAttrs(req sdkmcp.Request) []slog.Attr {
	switch r := req.(type) {
	case *sdkmcp.CallToolRequest:
		if r.Params != nil {
			return []slog.Attr{slog.String("tool", r.Params.Name)}
		}
	case *sdkmcp.GetPromptRequest:
		if r.Params != nil {
			return []slog.Attr{slog.String("prompt", r.Params.Name)}
		}
	case *sdkmcp.ReadResourceRequest:
		if r.Params != nil {
			return []slog.Attr{slog.String("uri", r.Params.URI)}
		}
	}
	return nil
}

// Listing and handshake traffic is only interesting when debugging.
func methodLevel(method string) slog.Level {
	if method == "initialize" || method == "ping" ||
		strings.HasSuffix(method, "/list") || strings.HasPrefix(method, "notifications/") {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func isErrorResult(result sdkmcp.Result) bool {
	r, ok := result.(*sdkmcp.CallToolResult)
	return ok && r != nil && r.IsError
}

func resultText(result sdkmcp.Result) string {
	r := result.(*sdkmcp.CallToolResult)
	for _, c := range r.Content {
		if text, ok := c.(*sdkmcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}
