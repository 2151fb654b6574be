// Package prompts contains MCP prompt implementations for adinsights.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	RowsExpression      string
	TimeSeriesLastValue bool
	DefaultObjectType   string // empty when no default request spec is loaded
}
