package mcpsrv

import (
	"github.com/usestring/adinsights-mcp/internal/cache"
	"github.com/usestring/adinsights-mcp/internal/config"
	"github.com/usestring/adinsights-mcp/internal/extract"
	"github.com/usestring/adinsights-mcp/internal/rowstore"
	"github.com/usestring/adinsights-mcp/pkg/insights"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config      *config.Config
	Schemas     *cache.SchemaCache
	Runs        *rowstore.Store
	Extractor   *extract.Extractor
	Transformer *insights.Transformer
	DefaultSpec *insights.RequestSpec
}
