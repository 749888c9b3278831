package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/exply-app/exply/internal/explain"
	"github.com/exply-app/exply/internal/extract"
	"github.com/exply-app/exply/internal/prompt"
)

// handleExplainText explains bare text with a minimal synthetic context.
func (s *Server) handleExplainText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	req := explain.Request{
		Context:          extract.Synthetic(text),
		Mode:             prompt.Mode(request.GetString("mode", string(prompt.ModeExplain))),
		Language:         request.GetString("language", "en"),
		FollowUpQuestion: request.GetString("follow_up", ""),
	}

	result, err := s.client.Explain(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(userMessage(err)), nil
	}
	return mcp.NewToolResultText(result), nil
}

// handleExplainPage parses an HTML file and explains the selection with
// the sentence and paragraph windows extracted around it.
func (s *Server) handleExplainPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	htmlPath, err := request.RequireString("html_path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: html_path"), nil
	}
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}

	f, err := os.Open(htmlPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to open page: %v", err)), nil
	}
	defer f.Close()

	page, err := extract.ParsePage(f, request.GetString("url", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse page: %v", err)), nil
	}

	req := explain.Request{
		Context:  page.Context(text),
		Mode:     prompt.Mode(request.GetString("mode", string(prompt.ModeExplain))),
		Language: request.GetString("language", "en"),
	}

	result, err := s.client.Explain(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(userMessage(err)), nil
	}
	return mcp.NewToolResultText(result), nil
}

// userMessage extracts the classified message from an explanation error.
func userMessage(err error) string {
	var e *explain.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return fmt.Sprintf("explanation failed: %v", err)
}
