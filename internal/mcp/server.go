package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/docview-mcp/internal/service"
)

const (
	// ServerName is the MCP server name.
	ServerName = "docview-mcp"
	// ServerVersion is the current server version.
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with the content service it exposes.
type Server struct {
	mcp       *server.MCPServer
	service   *service.Service
	chunkSize int // default when a tool call omits chunk_size
	logger    *slog.Logger
}

// NewServer creates an MCP server over the given content service.
// defaultChunkSize applies when tool calls omit chunk_size. A nil logger
// discards log output.
func NewServer(svc *service.Service, defaultChunkSize int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		mcp:       server.NewMCPServer(ServerName, ServerVersion),
		service:   svc,
		chunkSize: defaultChunkSize,
		logger:    logger,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("MCP server listening on stdio", "name", ServerName, "version", ServerVersion)
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools.
func (s *Server) registerTools() {
	s.mcp.AddTool(putContentTool(), s.handlePutContent)
	s.mcp.AddTool(loadFileTool(), s.handleLoadFile)
	s.mcp.AddTool(getInfoTool(), s.handleGetInfo)
	s.mcp.AddTool(getChunkTool(), s.handleGetChunk)
	s.mcp.AddTool(getAllTool(), s.handleGetAll)
	s.mcp.AddTool(formatContentTool(), s.handleFormatContent)
	s.mcp.AddTool(clearContentTool(), s.handleClearContent)
	s.mcp.AddTool(listTransformsTool(), s.handleListTransforms)
}
