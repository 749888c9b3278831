package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/exply-app/exply/internal/explain"
)

// mockClient implements explain.Client for testing.
type mockClient struct {
	reqs []explain.Request
	text string
	err  error
}

func (m *mockClient) Explain(_ context.Context, req explain.Request) (string, error) {
	m.reqs = append(m.reqs, req)
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"explain_text", explainTextTool, "explain_text"},
		{"explain_page", explainPageTool, "explain_page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	client := &mockClient{text: "ok"}
	srv := NewServer(client)

	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.client != client {
		t.Error("client not set correctly")
	}
}

func TestHandleExplainText(t *testing.T) {
	client := &mockClient{text: "it means X"}
	srv := NewServer(client)
	ctx := context.Background()

	t.Run("missing text", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleExplainText(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected a tool error for missing text")
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"text": "a sufficiently long selection",
		}

		result, err := srv.handleExplainText(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}

		last := client.reqs[len(client.reqs)-1]
		if last.Mode != "explain" {
			t.Errorf("mode = %q, want explain default", last.Mode)
		}
		if last.Language != "en" {
			t.Errorf("language = %q, want en default", last.Language)
		}
		if last.Context.HighlightedText != "a sufficiently long selection" {
			t.Errorf("context text = %q", last.Context.HighlightedText)
		}
	})

	t.Run("classified error surfaced", func(t *testing.T) {
		failing := &mockClient{err: &explain.Error{Kind: explain.KindAuth, Message: "Authentication required."}}
		srv := NewServer(failing)

		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"text": "something to explain"}

		result, err := srv.handleExplainText(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected a tool error from the failing client")
		}
	})
}

func TestHandleExplainPage(t *testing.T) {
	dir := t.TempDir()
	pagePath := filepath.Join(dir, "page.html")
	page := `<html><head><title>Doc</title></head><body><p>Setup text here. The core claim stands on its own. Closing line.</p></body></html>`
	if err := os.WriteFile(pagePath, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}

	client := &mockClient{text: "explained"}
	srv := NewServer(client)
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"html_path": pagePath,
		"text":      "core claim",
		"url":       "https://docs.example.com/page",
		"mode":      "simplify",
	}

	result, err := srv.handleExplainPage(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}

	last := client.reqs[len(client.reqs)-1]
	if last.Context.PageTitle != "Doc" {
		t.Errorf("page title = %q", last.Context.PageTitle)
	}
	if last.Context.Domain != "docs.example.com" {
		t.Errorf("domain = %q", last.Context.Domain)
	}
	if last.Context.ContainingSentence != "The core claim stands on its own" {
		t.Errorf("sentence = %q", last.Context.ContainingSentence)
	}
	if last.Mode != "simplify" {
		t.Errorf("mode = %q", last.Mode)
	}
}

func TestHandleExplainPageMissingFile(t *testing.T) {
	srv := NewServer(&mockClient{text: "x"})

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"html_path": "/nonexistent/page.html",
		"text":      "anything",
	}

	result, err := srv.handleExplainPage(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("expected a tool error for a missing file")
	}
}
