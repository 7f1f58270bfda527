// Package mcp exposes the catalog to AI agents over the Model Context
// Protocol: dataset listing, variant detail, schemas, and citations.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/rlhub/datacat/internal/catalog"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes catalog lookup tools.
type Server struct {
	store *catalog.Store
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server backed by the catalog store.
func NewServer(store *catalog.Store) *Server {
	s := &Server{store: store}

	s.mcp = server.NewMCPServer(
		"datacat",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// registerTools adds all tool definitions and their handlers.
func (s *Server) registerTools() {
	s.mcp.AddTool(listDatasetsTool, s.handleListDatasets)
	s.mcp.AddTool(getDatasetTool, s.handleGetDataset)
	s.mcp.AddTool(getSchemaTool, s.handleGetSchema)
	s.mcp.AddTool(getCitationTool, s.handleGetCitation)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
