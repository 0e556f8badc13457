package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchDocsTool defines the search_docs MCP tool.
var searchDocsTool = mcp.NewTool("search_docs",
	mcp.WithDescription("Search the Q&A knowledge base by keyword. Returns ranked documents with category, title and score."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search query terms"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
	mcp.WithString("category",
		mcp.Description("Restrict results to one category folder"),
	),
	mcp.WithString("tag",
		mcp.Description("Restrict results to documents carrying this tag"),
	),
)

// getDocumentTool defines the get_document MCP tool.
var getDocumentTool = mcp.NewTool("get_document",
	mcp.WithDescription("Get the full text of one document by id."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Document id as returned by search_docs"),
	),
)

// listCategoriesTool defines the list_categories MCP tool.
var listCategoriesTool = mcp.NewTool("list_categories",
	mcp.WithDescription("List the corpus categories and how many documents each contains."),
)
