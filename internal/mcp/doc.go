// Package mcp implements the Model Context Protocol (MCP) server for
// DocView.
//
// The server exposes the chunked content pipeline to a viewer frontend as
// MCP tools over stdio:
//
//   - put_content: store a document for transforming and chunked fetching
//   - load_file: ingest a document from disk
//   - get_info: query an entry's length and chunk layout
//   - get_chunk: fetch one chunk by index (or by normalized offset)
//   - get_all: fetch single-chunk content in one call
//   - format_content: apply a transform, producing a derived entry
//   - clear_content: release an entry
//   - list_transforms: enumerate the transform catalog
//
// stdout carries the JSON-RPC protocol; all logging goes to stderr.
//
// # Error Handling
//
// Service failures map onto JSON-RPC error codes:
//
//   - -32602: invalid params (missing arguments, bad chunk size)
//   - -32603: internal error
//   - -32001: unknown entry id
//   - -32002: chunk index out of range
//   - -32003: transform rejected its input (message carries the detail)
//   - -32004: get_all on content spanning more than one chunk
//
// Transform failures are the only expected, user-actionable errors; the
// transform's own message (parse position, bad encoding) is passed through
// untouched so the frontend can display it.
package mcp
