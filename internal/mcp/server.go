// Package mcp exposes the explanation pipeline to MCP hosts over stdio,
// so agent tooling can request the same contextual explanations the
// card UI shows.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/exply-app/exply/internal/explain"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes explanation tools.
type Server struct {
	client explain.Client
	mcp    *server.MCPServer
}

// NewServer creates an MCP server backed by the given explanation client.
func NewServer(client explain.Client) *Server {
	s := &Server{client: client}

	s.mcp = server.NewMCPServer(
		"exply",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(explainTextTool, s.handleExplainText)
	s.mcp.AddTool(explainPageTool, s.handleExplainPage)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
