package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers the mimic analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all mimic tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "mimic",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools adds the duplication analysis tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "detect_duplicates",
		Description: describeDuplicates(),
	}, handleDetectDuplicates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "similar_files",
		Description: describeSimilarFiles(),
	}, handleSimilarFiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "scan_patterns",
		Description: describeScanPatterns(),
	}, handleScanPatterns)
}
