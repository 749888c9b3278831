package mcp

import "github.com/mark3labs/mcp-go/mcp"

// explainTextTool defines the explain_text MCP tool.
var explainTextTool = mcp.NewTool("explain_text",
	mcp.WithDescription("Explain a piece of text in context. Returns a concise AI-generated explanation in the requested language."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The text to explain"),
	),
	mcp.WithString("mode",
		mcp.Description("Explanation style (default explain)"),
		mcp.Enum("explain", "simplify", "implication"),
	),
	mcp.WithString("language",
		mcp.Description("Response language code, e.g. en, es, fr (default en)"),
	),
	mcp.WithString("follow_up",
		mcp.Description("A follow-up question about previously explained text"),
	),
)

// explainPageTool defines the explain_page MCP tool.
var explainPageTool = mcp.NewTool("explain_page",
	mcp.WithDescription("Explain text selected from an HTML page. The page is parsed and the surrounding sentence and paragraph are extracted as context."),
	mcp.WithString("html_path",
		mcp.Required(),
		mcp.Description("Path to the HTML file containing the text"),
	),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("The selected text to explain"),
	),
	mcp.WithString("url",
		mcp.Description("The page URL, used for the domain in the context"),
	),
	mcp.WithString("mode",
		mcp.Description("Explanation style (default explain)"),
		mcp.Enum("explain", "simplify", "implication"),
	),
	mcp.WithString("language",
		mcp.Description("Response language code, e.g. en, es, fr (default en)"),
	),
)
