// Package store holds named content entries in memory, split into
// addressable chunks on write. Entries live for the process lifetime;
// there is no persistence.
package store

import (
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/docview-mcp/internal/chunk"
	"github.com/dshills/docview-mcp/pkg/types"
)

// entry is an immutable-once-written blob plus its chunk boundary table.
// offsets holds the byte offset of each chunk start (plus a final
// end-of-content sentinel), computed once at write time so every GetChunk
// is a constant-time byte slice. Boundaries are rune-aligned: a chunk never
// splits a UTF-8 sequence, so chunks survive JSON framing on the wire.
type entry struct {
	info    types.EntryInfo
	content string
	offsets []int
}

// Store is the authoritative holder of content entries, keyed by id.
// Put and Clear are mutually exclusive with concurrent reads on the same
// id; a single RWMutex suffices for the handful of named slots a viewer
// session creates.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	logger  *slog.Logger
}

// New creates an empty store. A nil logger discards log output.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

// Put stores content under the given id, replacing any prior entry there.
// An empty id gets a generated one. chunkSize is in characters and must be
// positive. The returned info is a value copy; the stored entry is never
// mutated afterwards.
func (s *Store) Put(id string, kind types.Kind, content string, chunkSize int) (types.EntryInfo, error) {
	if chunkSize <= 0 {
		return types.EntryInfo{}, fmt.Errorf("chunk size %d: %w", chunkSize, types.ErrInvalidArgument)
	}
	if !kind.Valid() {
		return types.EntryInfo{}, fmt.Errorf("kind %q: %w", kind, types.ErrInvalidArgument)
	}
	if id == "" {
		id = uuid.NewString()
	}

	length, offsets := splitOffsets(content, chunkSize)

	e := &entry{
		info: types.EntryInfo{
			ID:         id,
			Kind:       kind,
			Length:     length,
			ChunkSize:  chunkSize,
			ChunkCount: chunk.Count(length, chunkSize),
		},
		content: content,
		offsets: offsets,
	}

	s.mu.Lock()
	s.entries[id] = e
	s.mu.Unlock()

	s.logger.Debug("content stored",
		"id", id, "kind", kind, "length", length, "chunks", e.info.ChunkCount)

	return e.info, nil
}

// GetChunk returns the text of one chunk. Side-effect-free.
func (s *Store) GetChunk(id string, index int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return "", fmt.Errorf("entry %q: %w", id, types.ErrNotFound)
	}
	if index < 0 || index >= e.info.ChunkCount {
		return "", fmt.Errorf("chunk %d of %d: %w", index, e.info.ChunkCount, types.ErrOutOfRange)
	}
	return e.content[e.offsets[index]:e.offsets[index+1]], nil
}

// GetChunkWithInfo returns one chunk's text together with the metadata of
// the entry it was sliced from, under a single lock acquisition. Readers
// racing a Put that replaces the id get either the old entry or the new one,
// never the content of one with the counts of the other.
func (s *Store) GetChunkWithInfo(id string, index int) (string, types.EntryInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return "", types.EntryInfo{}, fmt.Errorf("entry %q: %w", id, types.ErrNotFound)
	}
	if index < 0 || index >= e.info.ChunkCount {
		return "", types.EntryInfo{}, fmt.Errorf("chunk %d of %d: %w", index, e.info.ChunkCount, types.ErrOutOfRange)
	}
	return e.content[e.offsets[index]:e.offsets[index+1]], e.info, nil
}

// GetInfo returns the entry's metadata.
func (s *Store) GetInfo(id string) (types.EntryInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return types.EntryInfo{}, fmt.Errorf("entry %q: %w", id, types.ErrNotFound)
	}
	return e.info, nil
}

// Content returns the entry's full content in one read. The transform
// pipeline uses this; transforms consume whole documents, never chunks.
func (s *Store) Content(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		return "", fmt.Errorf("entry %q: %w", id, types.ErrNotFound)
	}
	return e.content, nil
}

// Clear releases the entry. Clearing an absent id is a no-op.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	_, existed := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()

	if existed {
		s.logger.Debug("content cleared", "id", id)
	}
}

// Len reports how many entries the store currently holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// splitOffsets walks the content once, returning its rune count and the
// byte offset of every chunk boundary. len(offsets) == chunkCount+1, so
// chunk i is content[offsets[i]:offsets[i+1]].
func splitOffsets(content string, chunkSize int) (length int, offsets []int) {
	offsets = []int{}
	n := 0
	for i := range content {
		if n%chunkSize == 0 {
			offsets = append(offsets, i)
		}
		n++
	}
	offsets = append(offsets, len(content))
	return n, offsets
}

// ValidUTF8 reports whether content can be stored without byte/character
// ambiguity. Ingest paths reject binary data before it reaches Put.
func ValidUTF8(content string) bool {
	return utf8.ValidString(content)
}
