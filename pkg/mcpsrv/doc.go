// Package mcpsrv provides an extensible MCP server for ad insights.
//
// The server exposes the builtin insights tools, prompts and resources:
// field classification, schema assembly, request parameters, response
// transformation and querying of stored runs. Callers can add their own
// tools, prompts and resources with functional options.
//
// # Basic Usage
//
// Create a server with configuration loaded from the environment:
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type MyInput struct {
//	    Fields []string `json:"fields"`
//	}
//
//	type MyOutput struct {
//	    Unknown int `json:"unknown"`
//	}
//
//	func myHandler(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	    n := 0
//	    for _, f := range input.Fields {
//	        if !insights.IsClassifiable(f) {
//	            n++
//	        }
//	    }
//	    return nil, MyOutput{Unknown: n}, nil
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithTool(&mcp.Tool{Name: "count_unknown", Description: "Count unknown fields"}, myHandler),
//	)
//
// # Configuration
//
// Configure logging and the default request spec:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/adinsights-mcp.log"),
//	    mcpsrv.WithDefaultRequestSpec(spec),
//	)
package mcpsrv
