package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "insights_guide",
		Description: "Reference for the ad insights tools: response shapes, field categories, workflow and error codes.",
	}, HandleGuide(cfg))

	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "map_insights_report",
		Description: "RECOMMENDED: Map a saved insights API response onto typed records and summarize it. Start here.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "object_type",
				Description: "account, campaign, adset, ad or page",
				Required:    false,
			},
			{
				Name:        "fields",
				Description: "Comma-separated insight fields (e.g. 'spend,impressions,actions')",
				Required:    false,
			},
			{
				Name:        "breakdowns",
				Description: "Comma-separated breakdowns (e.g. 'age,gender')",
				Required:    false,
			},
		},
	}, HandleMapInsightsReport(cfg))
}
