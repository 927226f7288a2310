// Package loader implements client-side progressive loading of chunked
// content. A Loader tracks the frontier between retrieved and pending
// chunks for one displayed entry, fetches strictly in index order, and
// exposes the accumulated buffer plus completion state.
package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/docview-mcp/pkg/types"
)

// DefaultThreshold is the fraction of scrolled content past which the
// loader considers the user near the frontier.
const DefaultThreshold = 0.8

// Fetcher pulls one chunk of an entry. The in-process service and the
// HTTP client both satisfy this.
type Fetcher interface {
	FetchChunk(ctx context.Context, id string, index int) (types.ChunkResponse, error)
}

// State describes where a loader is in its lifecycle for the open entry.
type State int

const (
	// StateEmpty means no chunk has been retrieved yet.
	StateEmpty State = iota
	// StateLoading means a fetch is in flight.
	StateLoading
	// StateLoaded means at least one chunk is applied and more remain.
	StateLoaded
	// StateComplete means every chunk of the entry has been applied.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Loader accumulates an entry's chunks in strictly increasing index order.
// At most one fetch is in flight at a time, so responses can never be
// applied out of order; a duplicate trigger while a fetch is outstanding
// is an idempotent no-op. Switching entries bumps an internal generation
// counter, and a response carrying a stale generation is discarded
// silently, never applied.
type Loader struct {
	fetcher   Fetcher
	threshold float64

	flight flightGuard

	mu       sync.Mutex
	id       string
	gen      uint64
	buf      strings.Builder
	next     int
	total    int
	complete bool
}

// New creates a loader over the given fetcher. A non-positive threshold
// falls back to DefaultThreshold.
func New(fetcher Fetcher, threshold float64) *Loader {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Loader{fetcher: fetcher, threshold: threshold}
}

// Open selects the entry to load and discards all state from the previous
// one. Any in-flight fetch for the prior entry loses its effect.
func (l *Loader) Open(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	l.id = id
	l.buf.Reset()
	l.next = 0
	l.total = 0
	l.complete = false
}

// LoadNext fetches the chunk at the frontier and appends it to the buffer.
// It is a no-op when the entry is fully loaded or when another fetch is
// already in flight, so scroll handlers may call it freely.
func (l *Loader) LoadNext(ctx context.Context) error {
	if !l.flight.TryAcquire() {
		return nil
	}
	defer l.flight.Release()

	l.mu.Lock()
	if l.id == "" {
		l.mu.Unlock()
		return fmt.Errorf("no entry open: %w", types.ErrInvalidArgument)
	}
	if l.complete {
		l.mu.Unlock()
		return nil
	}
	id, gen, index := l.id, l.gen, l.next
	l.mu.Unlock()

	resp, err := l.fetcher.FetchChunk(ctx, id, index)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.gen != gen {
		// The entry changed while the fetch was outstanding. The response
		// belongs to a superseded view; drop it without surfacing an error.
		return nil
	}
	if err != nil {
		// An empty entry has no chunk 0 to fetch; there is nothing left to
		// load, so the loader is complete with an empty buffer.
		if index == 0 && errors.Is(err, types.ErrOutOfRange) {
			l.complete = true
			return nil
		}
		return err
	}
	if index != l.next {
		// Already applied by an earlier trigger; re-requests are no-ops.
		return nil
	}

	l.buf.WriteString(resp.Content)
	l.next++
	l.total = resp.TotalLength
	if !resp.HasMore {
		l.complete = true
	}
	return nil
}

// NearFrontier reports whether the scroll position has passed the
// configured fraction of the currently rendered content height.
func (l *Loader) NearFrontier(scrollOffset, viewportHeight, contentHeight float64) bool {
	if contentHeight <= 0 {
		return true
	}
	return scrollOffset+viewportHeight >= l.threshold*contentHeight
}

// OnScroll is the renderer's scroll-position callback: it loads the next
// chunk when the user approaches the frontier. Repeated scroll events while
// a fetch is in flight collapse into no-ops.
func (l *Loader) OnScroll(ctx context.Context, scrollOffset, viewportHeight, contentHeight float64) error {
	if !l.NearFrontier(scrollOffset, viewportHeight, contentHeight) {
		return nil
	}
	return l.LoadNext(ctx)
}

// Content returns the concatenation of every chunk applied so far.
func (l *Loader) Content() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

// Complete reports whether every chunk of the open entry has been applied.
func (l *Loader) Complete() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.complete
}

// Retrieved returns the number of chunks applied so far.
func (l *Loader) Retrieved() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.next
}

// TotalLength returns the entry's total length as reported by the last
// response, or 0 before the first chunk arrives.
func (l *Loader) TotalLength() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// EntryID returns the id of the open entry.
func (l *Loader) EntryID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.id
}

// State reports the loader's current lifecycle state.
func (l *Loader) State() State {
	inFlight := l.flight.Held()
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.complete:
		return StateComplete
	case inFlight:
		return StateLoading
	case l.next > 0:
		return StateLoaded
	default:
		return StateEmpty
	}
}
