package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/docview-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams   = -32602 // Invalid method parameters
	ErrorCodeInternalError   = -32603 // Internal JSON-RPC error
	ErrorCodeContentNotFound = -32001 // Unknown entry id
	ErrorCodeChunkOutOfRange = -32002 // Chunk index at or past chunk count
	ErrorCodeTransformFailed = -32003 // Transform rejected its input
	ErrorCodeContentTooLarge = -32004 // get_all on multi-chunk content
)

// handlePutContent handles the put_content tool invocation
func (s *Server) handlePutContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing",
		})
	}

	id := getStringDefault(args, "id", "")
	chunkSize := getIntDefault(args, "chunk_size", s.chunkSize)

	info, err := s.service.PutContent(ctx, id, types.KindRaw, text, chunkSize)
	if err != nil {
		return nil, serviceError(err)
	}

	return mcp.NewToolResultText(formatJSON(infoResponse(info))), nil
}

// handleLoadFile handles the load_file tool invocation
func (s *Server) handleLoadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}

	id := getStringDefault(args, "id", "")
	chunkSize := getIntDefault(args, "chunk_size", s.chunkSize)

	info, err := s.service.PutFile(ctx, id, path, chunkSize)
	if err != nil {
		return nil, serviceError(err)
	}

	return mcp.NewToolResultText(formatJSON(infoResponse(info))), nil
}

// handleGetInfo handles the get_info tool invocation
func (s *Server) handleGetInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(request)
	if err != nil {
		return nil, err
	}

	info, err := s.service.GetInfo(ctx, id)
	if err != nil {
		return nil, serviceError(err)
	}

	return mcp.NewToolResultText(formatJSON(infoResponse(info))), nil
}

// handleGetChunk handles the get_chunk tool invocation
func (s *Server) handleGetChunk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id, err := requireID(request)
	if err != nil {
		return nil, err
	}

	var resp types.ChunkResponse
	if _, hasIndex := args["index"]; hasIndex {
		resp, err = s.service.FetchChunk(ctx, id, getIntDefault(args, "index", 0))
	} else if _, hasOffset := args["offset"]; hasOffset {
		resp, err = s.service.FetchChunkAt(ctx, id, getIntDefault(args, "offset", 0))
	} else {
		return nil, newMCPError(ErrorCodeInvalidParams, "index or offset parameter is required", map[string]interface{}{
			"param":  "index",
			"reason": "missing",
		})
	}
	if err != nil {
		return nil, serviceError(err)
	}

	return mcp.NewToolResultText(formatJSON(chunkResponse(resp))), nil
}

// handleGetAll handles the get_all tool invocation
func (s *Server) handleGetAll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(request)
	if err != nil {
		return nil, err
	}

	resp, err := s.service.FetchAll(ctx, id)
	if err != nil {
		return nil, serviceError(err)
	}

	return mcp.NewToolResultText(formatJSON(chunkResponse(resp))), nil
}

// handleFormatContent handles the format_content tool invocation
func (s *Server) handleFormatContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id, err := requireID(request)
	if err != nil {
		return nil, err
	}

	name, ok := args["transform"].(string)
	if !ok || name == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "transform parameter is required", map[string]interface{}{
			"param":   "transform",
			"reason":  "missing or empty",
			"allowed": s.service.Transforms(),
		})
	}

	// Zero means "inherit the source entry's chunk size".
	chunkSize := getIntDefault(args, "chunk_size", 0)

	info, err := s.service.Format(ctx, id, name, chunkSize)
	if err != nil {
		return nil, serviceError(err)
	}

	return mcp.NewToolResultText(formatJSON(infoResponse(info))), nil
}

// handleClearContent handles the clear_content tool invocation
func (s *Server) handleClearContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(request)
	if err != nil {
		return nil, err
	}

	s.service.Clear(ctx, id)

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"cleared": true,
		"id":      id,
	})), nil
}

// handleListTransforms handles the list_transforms tool invocation
func (s *Server) handleListTransforms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"transforms": s.service.Transforms(),
	})), nil
}

// Helper functions

// requireID extracts the mandatory id parameter.
func requireID(request mcp.CallToolRequest) (string, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return "", newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	id, ok := args["id"].(string)
	if !ok || id == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "id parameter is required", map[string]interface{}{
			"param":  "id",
			"reason": "missing or empty",
		})
	}
	return id, nil
}

// serviceError maps service failures onto MCP error codes.
func serviceError(err error) error {
	var terr *types.TransformError
	switch {
	case errors.As(err, &terr):
		return newMCPError(ErrorCodeTransformFailed, terr.Error(), map[string]interface{}{
			"transform": terr.Name,
			"detail":    terr.Err.Error(),
		})
	case errors.Is(err, types.ErrNotFound):
		return newMCPError(ErrorCodeContentNotFound, err.Error(), nil)
	case errors.Is(err, types.ErrOutOfRange):
		return newMCPError(ErrorCodeChunkOutOfRange, err.Error(), nil)
	case errors.Is(err, types.ErrTooLarge):
		return newMCPError(ErrorCodeContentTooLarge, err.Error(), nil)
	case errors.Is(err, types.ErrInvalidArgument):
		return newMCPError(ErrorCodeInvalidParams, err.Error(), nil)
	default:
		return newMCPError(ErrorCodeInternalError, err.Error(), nil)
	}
}

func infoResponse(info types.EntryInfo) map[string]interface{} {
	return map[string]interface{}{
		"id":          info.ID,
		"kind":        string(info.Kind),
		"length":      info.Length,
		"chunk_size":  info.ChunkSize,
		"chunk_count": info.ChunkCount,
	}
}

func chunkResponse(resp types.ChunkResponse) map[string]interface{} {
	return map[string]interface{}{
		"content":      resp.Content,
		"has_more":     resp.HasMore,
		"total_length": resp.TotalLength,
		"next_index":   resp.NextIndex,
	}
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
