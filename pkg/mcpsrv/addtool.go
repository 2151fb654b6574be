package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/adinsights-mcp/internal/mcp/tools"
)

// AddTool registers a tool with the server. It panics at registration when the
// zero value of Out would fail the output schema the SDK infers for it, which
// is what happens to nil slices without omitzero.
//
// Use this instead of [sdkmcp.AddTool] to get the check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
