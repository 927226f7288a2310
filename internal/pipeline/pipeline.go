// Package pipeline applies named transforms to stored content, writing the
// result back into the store as a derived entry.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/dshills/docview-mcp/internal/store"
	"github.com/dshills/docview-mcp/internal/transform"
	"github.com/dshills/docview-mcp/pkg/types"
)

// Pipeline runs transforms over whole documents. A transform either
// succeeds wholly, producing a new derived entry, or fails wholly, leaving
// the store untouched; no partial output is ever observable.
type Pipeline struct {
	store    *store.Store
	registry *transform.Registry
	logger   *slog.Logger
}

// New creates a pipeline over the given store and transform catalog.
// A nil logger discards log output.
func New(st *store.Store, registry *transform.Registry, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{store: st, registry: registry, logger: logger}
}

// Format reads the entire content of sourceID, applies the named transform,
// and stores the result as a derived entry chunked at chunkSize. Transforms
// parse whole documents, so the read is a single full read, never
// chunk-by-chunk. The derived entry id is deterministic per (source,
// transform), so re-running a transform replaces its prior output.
func (p *Pipeline) Format(sourceID, name string, chunkSize int) (types.EntryInfo, error) {
	if name == "" {
		return types.EntryInfo{}, fmt.Errorf("empty transform name: %w", types.ErrInvalidArgument)
	}
	if chunkSize <= 0 {
		return types.EntryInfo{}, fmt.Errorf("chunk size %d: %w", chunkSize, types.ErrInvalidArgument)
	}

	fn, err := p.registry.Get(name)
	if err != nil {
		return types.EntryInfo{}, err
	}

	content, err := p.store.Content(sourceID)
	if err != nil {
		return types.EntryInfo{}, err
	}

	formatted, err := fn(content)
	if err != nil {
		// Deterministic failure: retrying the same input cannot succeed,
		// so surface the transform's own message and write nothing.
		return types.EntryInfo{}, types.NewTransformError(name, err)
	}

	info, err := p.store.Put(DerivedID(sourceID, name), types.KindDerived, formatted, chunkSize)
	if err != nil {
		return types.EntryInfo{}, err
	}

	p.logger.Info("transform applied",
		"source", sourceID, "transform", name,
		"in_length", len(content), "out_length", info.Length)

	return info, nil
}

// Transforms lists the names available to Format.
func (p *Pipeline) Transforms() []string {
	return p.registry.Names()
}

// DerivedID is the entry id a transform's output is stored under.
func DerivedID(sourceID, name string) string {
	return sourceID + "#" + name
}
