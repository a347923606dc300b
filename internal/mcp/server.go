// Package mcp exposes the assistant over the Model Context Protocol so
// agent hosts can ask questions and search the knowledge base directly.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/finchat-dev/finchat/internal/assistant"
	"github.com/finchat-dev/finchat/internal/retrieval"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the assistant's tools.
type Server struct {
	assistant *assistant.Assistant
	engine    *retrieval.Engine // nil until a knowledge index is loaded
	mcp       *server.MCPServer
}

// NewServer creates an MCP server around the assistant. The engine powers
// the knowledge search tool and may be nil when no index exists yet.
func NewServer(a *assistant.Assistant, engine *retrieval.Engine) *Server {
	s := &Server{
		assistant: a,
		engine:    engine,
	}

	s.mcp = server.NewMCPServer(
		"finchat",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(askTool, s.handleAsk)
	s.mcp.AddTool(searchKnowledgeTool, s.handleSearchKnowledge)
	s.mcp.AddTool(listIntentsTool, s.handleListIntents)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
