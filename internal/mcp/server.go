// ABOUTME: MCP server setup for the yoroi wellness store.
// ABOUTME: Wraps the MCP server with a storage Repository and a logger.
package mcp

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/yoroi/internal/logging"
	"github.com/harperreed/yoroi/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	log       *log.Logger
	now       func() time.Time
}

// NewServer creates a new MCP server with the given storage.
// A nil logger discards output.
func NewServer(repo storage.Repository, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "yoroi",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		log:       logger,
		now:       time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Debug("serving mcp over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
