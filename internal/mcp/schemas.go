package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// putContentTool returns the tool definition for put_content
func putContentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "put_content",
		Description: "Store a text document so it can be transformed and fetched in chunks",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "The document text to store",
				},
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Entry id to store under; generated when omitted. Reusing an id replaces the prior entry",
				},
				"chunk_size": map[string]interface{}{
					"type":        "integer",
					"description": "Chunk size in characters; server default when omitted",
					"minimum":     1,
				},
			},
			Required: []string{"text"},
		},
	}
}

// loadFileTool returns the tool definition for load_file
func loadFileTool() mcp.Tool {
	return mcp.Tool{
		Name:        "load_file",
		Description: "Load a document from disk into the content store as a raw entry",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path of the file to load",
				},
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Entry id to store under; generated when omitted",
				},
				"chunk_size": map[string]interface{}{
					"type":        "integer",
					"description": "Chunk size in characters; server default when omitted",
					"minimum":     1,
				},
			},
			Required: []string{"path"},
		},
	}
}

// getInfoTool returns the tool definition for get_info
func getInfoTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_info",
		Description: "Get an entry's length and chunk layout, for deciding chunked vs. whole-content handling",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Entry id",
				},
			},
			Required: []string{"id"},
		},
	}
}

// getChunkTool returns the tool definition for get_chunk
func getChunkTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_chunk",
		Description: "Fetch one chunk of an entry by index, or by character offset normalized to its owning chunk",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Entry id",
				},
				"index": map[string]interface{}{
					"type":        "integer",
					"description": "Chunk index (0-based)",
					"minimum":     0,
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Character offset; used instead of index when index is omitted",
					"minimum":     0,
				},
			},
			Required: []string{"id"},
		},
	}
}

// getAllTool returns the tool definition for get_all
func getAllTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_all",
		Description: "Fetch an entry's whole content in one call; fails for content spanning more than one chunk",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Entry id",
				},
			},
			Required: []string{"id"},
		},
	}
}

// formatContentTool returns the tool definition for format_content
func formatContentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "format_content",
		Description: "Apply a transform (json, json-summary, xml, jwt, encode, decode) to an entry, producing a derived entry",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Source entry id",
				},
				"transform": map[string]interface{}{
					"type":        "string",
					"description": "Transform name; see list_transforms",
				},
				"chunk_size": map[string]interface{}{
					"type":        "integer",
					"description": "Chunk size for the derived entry; inherits the source's when omitted",
					"minimum":     1,
				},
			},
			Required: []string{"id", "transform"},
		},
	}
}

// clearContentTool returns the tool definition for clear_content
func clearContentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "clear_content",
		Description: "Release a stored entry; clearing an absent id is a no-op",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Entry id",
				},
			},
			Required: []string{"id"},
		},
	}
}

// listTransformsTool returns the tool definition for list_transforms
func listTransformsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_transforms",
		Description: "List the transform names format_content accepts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
