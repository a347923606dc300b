package mcp

import "github.com/mark3labs/mcp-go/mcp"

// askTool defines the ask MCP tool.
var askTool = mcp.NewTool("ask",
	mcp.WithDescription("Ask the financial assistant a question. Questions matching a known intent are answered from live handlers; everything else is answered from the indexed knowledge base."),
	mcp.WithString("question",
		mcp.Required(),
		mcp.Description("Natural language question, e.g. 'what is the stock price of TCS'"),
	),
	mcp.WithString("user_id",
		mcp.Description("Stable caller identity; a fresh one is assigned when omitted"),
	),
)

// searchKnowledgeTool defines the search_knowledge MCP tool.
var searchKnowledgeTool = mcp.NewTool("search_knowledge",
	mcp.WithDescription("Search the indexed knowledge base semantically. Returns the most relevant passages with their sources and scores."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of passages to return (default 5)"),
	),
)

// listIntentsTool defines the list_intents MCP tool.
var listIntentsTool = mcp.NewTool("list_intents",
	mcp.WithDescription("List the intent tags the assistant answers with live handlers, in routing priority order."),
)
