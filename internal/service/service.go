// Package service exposes the boundary operations a viewer frontend
// consumes: ingest, metadata, chunked reads, transforms, and clearing.
// Both transports (MCP stdio and the REST API) are thin layers over this
// package, so chunk addressing has exactly one implementation.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/dshills/docview-mcp/internal/chunk"
	"github.com/dshills/docview-mcp/internal/pipeline"
	"github.com/dshills/docview-mcp/internal/store"
	"github.com/dshills/docview-mcp/pkg/types"
)

// Service wires the store and pipeline behind the boundary contract.
type Service struct {
	store    *store.Store
	pipeline *pipeline.Pipeline
	logger   *slog.Logger

	// group collapses duplicate concurrent reads of the same chunk.
	// Chunk reads are deterministic while an entry is unreplaced, so
	// concurrent scroll-driven duplicates can share one store access.
	group singleflight.Group
}

// New creates a service. A nil logger discards log output.
func New(st *store.Store, pl *pipeline.Pipeline, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: st, pipeline: pl, logger: logger}
}

// PutContent stores text under id (generated when empty) and returns the
// entry's metadata. Non-UTF-8 input is rejected before it can poison
// character-based chunk addressing.
func (s *Service) PutContent(ctx context.Context, id string, kind types.Kind, text string, chunkSize int) (types.EntryInfo, error) {
	if err := ctx.Err(); err != nil {
		return types.EntryInfo{}, err
	}
	if !store.ValidUTF8(text) {
		return types.EntryInfo{}, fmt.Errorf("content is not valid UTF-8: %w", types.ErrInvalidArgument)
	}
	return s.store.Put(id, kind, text, chunkSize)
}

// PutFile ingests a document from disk as a raw entry.
func (s *Service) PutFile(ctx context.Context, id, path string, chunkSize int) (types.EntryInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.EntryInfo{}, fmt.Errorf("failed to read file: %w", err)
	}
	s.logger.Info("file loaded", "path", path, "bytes", len(data))
	return s.PutContent(ctx, id, types.KindRaw, string(data), chunkSize)
}

// GetInfo returns an entry's metadata. Callers use it to decide chunked
// vs. whole-content handling before issuing fetches.
func (s *Service) GetInfo(ctx context.Context, id string) (types.EntryInfo, error) {
	if err := ctx.Err(); err != nil {
		return types.EntryInfo{}, err
	}
	return s.store.GetInfo(id)
}

// FetchChunk is the canonical read operation: one chunk by index, plus
// everything the caller needs to compute the next request.
func (s *Service) FetchChunk(ctx context.Context, id string, index int) (types.ChunkResponse, error) {
	if err := ctx.Err(); err != nil {
		return types.ChunkResponse{}, err
	}

	key := id + "#" + strconv.Itoa(index)
	v, err, _ := s.group.Do(key, func() (any, error) {
		// One store snapshot: content and counts always describe the same
		// entry version even when a concurrent Put replaces the id.
		content, info, err := s.store.GetChunkWithInfo(id, index)
		if err != nil {
			return nil, err
		}
		return types.ChunkResponse{
			Content:     content,
			HasMore:     index+1 < info.ChunkCount,
			TotalLength: info.Length,
			NextIndex:   index + 1,
		}, nil
	})
	if err != nil {
		return types.ChunkResponse{}, err
	}
	return v.(types.ChunkResponse), nil
}

// FetchChunkAt serves requests addressed by character offset instead of
// chunk index. The offset is normalized through the chunk addressing law
// against the entry's own chunk size; there is no second addressing scheme.
func (s *Service) FetchChunkAt(ctx context.Context, id string, offset int) (types.ChunkResponse, error) {
	info, err := s.GetInfo(ctx, id)
	if err != nil {
		return types.ChunkResponse{}, err
	}
	if offset < 0 || (offset > 0 && offset >= info.Length) {
		return types.ChunkResponse{}, fmt.Errorf("offset %d of %d: %w", offset, info.Length, types.ErrOutOfRange)
	}
	return s.FetchChunk(ctx, id, chunk.IndexForOffset(offset, info.ChunkSize))
}

// FetchAll returns an entry's whole content in one response. It is only a
// convenience for content that fits a single chunk; anything larger fails
// with ErrTooLarge and must be fetched progressively. Built strictly on
// chunk 0 so the addressing law stays the single code path.
func (s *Service) FetchAll(ctx context.Context, id string) (types.ChunkResponse, error) {
	info, err := s.GetInfo(ctx, id)
	if err != nil {
		return types.ChunkResponse{}, err
	}
	switch {
	case info.ChunkCount == 0:
		return types.ChunkResponse{Content: "", HasMore: false, TotalLength: 0, NextIndex: 0}, nil
	case info.ChunkCount > 1:
		return types.ChunkResponse{}, fmt.Errorf("%d chunks: %w", info.ChunkCount, types.ErrTooLarge)
	default:
		return s.FetchChunk(ctx, id, 0)
	}
}

// Format applies a named transform to an entry's full content and stores
// the result as a derived entry. A non-positive chunkSize inherits the
// source entry's chunk size.
func (s *Service) Format(ctx context.Context, sourceID, name string, chunkSize int) (types.EntryInfo, error) {
	if err := ctx.Err(); err != nil {
		return types.EntryInfo{}, err
	}
	if chunkSize <= 0 {
		info, err := s.store.GetInfo(sourceID)
		if err != nil {
			return types.EntryInfo{}, err
		}
		chunkSize = info.ChunkSize
	}
	return s.pipeline.Format(sourceID, name, chunkSize)
}

// Clear releases an entry. Idempotent.
func (s *Service) Clear(ctx context.Context, id string) {
	s.store.Clear(id)
}

// Transforms lists the names Format accepts.
func (s *Service) Transforms() []string {
	return s.pipeline.Transforms()
}
