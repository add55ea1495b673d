package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listCountriesTool defines the list_countries MCP tool.
var listCountriesTool = mcp.NewTool("list_countries",
	mcp.WithDescription("List African countries with their Malabo Convention status and national strategy tags, ordered by name."),
	mcp.WithString("category",
		mcp.Description("Only list countries with this status"),
		mcp.Enum("RATIFIED", "SIGNED", "NOT_SIGNED"),
	),
	mcp.WithString("tags",
		mcp.Description("Comma-separated tag ids; a country matches if it carries any of them"),
	),
)

// getCountryTool defines the get_country MCP tool.
var getCountryTool = mcp.NewTool("get_country",
	mcp.WithDescription("Get a country's treaty dates, derived status, strategy tags and detail sections."),
	mcp.WithString("code",
		mcp.Required(),
		mcp.Description("Two-letter country code, e.g. KE"),
	),
)

// categoryCountsTool defines the category_counts MCP tool.
var categoryCountsTool = mcp.NewTool("category_counts",
	mcp.WithDescription("Count countries per Malabo Convention status, optionally restricted to countries carrying any of the given tags."),
	mcp.WithString("tags",
		mcp.Description("Comma-separated tag ids; empty counts every country"),
	),
)

// listTagsTool defines the list_tags MCP tool.
var listTagsTool = mcp.NewTool("list_tags",
	mcp.WithDescription("List the national strategy tags with their labels and how many countries carry each."),
)
