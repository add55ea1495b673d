package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/malabomap/internal/atlas"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the ratification dataset.
type Server struct {
	ds  *atlas.Dataset
	mcp *server.MCPServer
}

// NewServer creates a new MCP server over a validated dataset.
func NewServer(ds *atlas.Dataset) *Server {
	s := &Server{ds: ds}

	s.mcp = server.NewMCPServer(
		"malabomap",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listCountriesTool, s.handleListCountries)
	s.mcp.AddTool(getCountryTool, s.handleGetCountry)
	s.mcp.AddTool(categoryCountsTool, s.handleCategoryCounts)
	s.mcp.AddTool(listTagsTool, s.handleListTags)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
