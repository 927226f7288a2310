package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docview-mcp/pkg/types"
)

// stubFetcher serves fixed chunk slices per entry id. An optional gate
// makes fetches block so tests can hold a request in flight.
type stubFetcher struct {
	mu      sync.Mutex
	chunks  map[string][]string
	calls   int
	started chan struct{} // signaled when a fetch begins, if non-nil
	gate    chan struct{} // fetch blocks until closed/receives, if non-nil
	err     error
}

func (f *stubFetcher) FetchChunk(ctx context.Context, id string, index int) (types.ChunkResponse, error) {
	f.mu.Lock()
	f.calls++
	started, gate, err := f.started, f.gate, f.err
	chunks, ok := f.chunks[id]
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return types.ChunkResponse{}, err
	}
	if !ok {
		return types.ChunkResponse{}, types.ErrNotFound
	}
	if index >= len(chunks) {
		return types.ChunkResponse{}, types.ErrOutOfRange
	}

	total := 0
	for _, c := range chunks {
		total += utf8.RuneCountInString(c)
	}
	return types.ChunkResponse{
		Content:     chunks[index],
		HasMore:     index+1 < len(chunks),
		TotalLength: total,
		NextIndex:   index + 1,
	}, nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestLoader_FullLoadInOrder(t *testing.T) {
	f := &stubFetcher{chunks: map[string][]string{"doc": {"ab", "cd", "ef"}}}
	l := New(f, 0)
	l.Open("doc")
	ctx := context.Background()

	assert.Equal(t, StateEmpty, l.State())

	for !l.Complete() {
		require.NoError(t, l.LoadNext(ctx))
	}

	assert.Equal(t, "abcdef", l.Content())
	assert.Equal(t, 3, l.Retrieved())
	assert.Equal(t, 6, l.TotalLength())
	assert.Equal(t, StateComplete, l.State())
}

func TestLoader_LoadNextAfterCompleteIsNoOp(t *testing.T) {
	f := &stubFetcher{chunks: map[string][]string{"doc": {"only"}}}
	l := New(f, 0)
	l.Open("doc")
	ctx := context.Background()

	require.NoError(t, l.LoadNext(ctx))
	require.True(t, l.Complete())
	calls := f.callCount()

	require.NoError(t, l.LoadNext(ctx))
	assert.Equal(t, calls, f.callCount(), "complete loader must not fetch again")
}

// An entry with no content has no chunk 0 to fetch; the loader reports it
// complete with an empty buffer instead of erroring on every trigger.
func TestLoader_EmptyEntryCompletes(t *testing.T) {
	f := &stubFetcher{chunks: map[string][]string{"empty": {}}}
	l := New(f, 0)
	l.Open("empty")
	ctx := context.Background()

	require.NoError(t, l.LoadNext(ctx))
	assert.True(t, l.Complete())
	assert.Equal(t, "", l.Content())
	assert.Equal(t, 0, l.TotalLength())
	assert.Equal(t, StateComplete, l.State())

	calls := f.callCount()
	require.NoError(t, l.LoadNext(ctx))
	assert.Equal(t, calls, f.callCount(), "complete loader must not fetch again")
}

func TestLoader_NoEntryOpen(t *testing.T) {
	l := New(&stubFetcher{chunks: map[string][]string{}}, 0)
	err := l.LoadNext(context.Background())
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

// While a fetch is outstanding, further triggers must collapse into no-ops:
// at most one request in flight per entry, so chunks can never be applied
// out of order no matter how the transport reorders completions.
func TestLoader_SingleInFlight(t *testing.T) {
	f := &stubFetcher{
		chunks:  map[string][]string{"doc": {"ab", "cd", "ef"}},
		started: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
	l := New(f, 0)
	l.Open("doc")
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- l.LoadNext(ctx) }()
	<-f.started // first fetch is now in flight

	// Duplicate scroll triggers while in flight: all dropped.
	for i := 0; i < 5; i++ {
		require.NoError(t, l.LoadNext(ctx))
	}
	assert.Equal(t, 1, f.callCount())
	assert.Equal(t, StateLoading, l.State())

	close(f.gate)
	require.NoError(t, <-done)

	assert.Equal(t, "ab", l.Content())
	assert.Equal(t, 1, l.Retrieved())
	assert.Equal(t, StateLoaded, l.State())
}

// A response that arrives after the active entry changed is discarded:
// the buffer of the new entry never sees the old entry's bytes.
func TestLoader_StaleResponseDiscarded(t *testing.T) {
	f := &stubFetcher{
		chunks:  map[string][]string{"old": {"OLD"}, "new": {"NEW"}},
		started: make(chan struct{}, 1),
		gate:    make(chan struct{}),
	}
	l := New(f, 0)
	l.Open("old")
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- l.LoadNext(ctx) }()
	<-f.started

	l.Open("new") // user switched entries mid-fetch

	close(f.gate)
	require.NoError(t, <-done, "stale responses are dropped, not surfaced")

	assert.Equal(t, "", l.Content())
	assert.Equal(t, 0, l.Retrieved())

	require.NoError(t, l.LoadNext(ctx))
	assert.Equal(t, "NEW", l.Content())
}

func TestLoader_FetchErrorSurfaces(t *testing.T) {
	f := &stubFetcher{chunks: map[string][]string{}, err: errors.New("boom")}
	l := New(f, 0)
	l.Open("doc")

	err := l.LoadNext(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, l.Retrieved(), "failed fetch must not advance the frontier")
}

func TestLoader_NearFrontier(t *testing.T) {
	l := New(&stubFetcher{}, 0.8)

	assert.False(t, l.NearFrontier(0, 100, 1000))
	assert.False(t, l.NearFrontier(600, 100, 1000))
	assert.True(t, l.NearFrontier(700, 100, 1000))
	assert.True(t, l.NearFrontier(900, 100, 1000))
	assert.True(t, l.NearFrontier(0, 0, 0), "no content yet always wants more")
}

func TestLoader_OnScroll(t *testing.T) {
	f := &stubFetcher{chunks: map[string][]string{"doc": {"ab", "cd"}}}
	l := New(f, 0.8)
	l.Open("doc")
	ctx := context.Background()

	// Far from the frontier: nothing fetched.
	require.NoError(t, l.OnScroll(ctx, 0, 10, 1000))
	assert.Equal(t, 0, f.callCount())

	// Past the threshold: one chunk loads.
	require.NoError(t, l.OnScroll(ctx, 850, 100, 1000))
	assert.Equal(t, "ab", l.Content())
}

func TestLoader_OpenResetsState(t *testing.T) {
	f := &stubFetcher{chunks: map[string][]string{"a": {"aa"}, "b": {"b1", "b2"}}}
	l := New(f, 0)
	ctx := context.Background()

	l.Open("a")
	require.NoError(t, l.LoadNext(ctx))
	require.True(t, l.Complete())

	l.Open("b")
	assert.Equal(t, StateEmpty, l.State())
	assert.Equal(t, "", l.Content())
	assert.False(t, l.Complete())
	assert.Equal(t, "b", l.EntryID())
}

// Hammer the loader from many goroutines; the buffer must still be the
// chunks in exact order with no duplication.
func TestLoader_ConcurrentTriggers(t *testing.T) {
	chunks := make([]string, 20)
	want := ""
	for i := range chunks {
		chunks[i] = fmt.Sprintf("[chunk-%02d]", i)
		want += chunks[i]
	}
	f := &stubFetcher{chunks: map[string][]string{"doc": chunks}}
	l := New(f, 0)
	l.Open("doc")
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for !l.Complete() {
				_ = l.LoadNext(ctx)
				time.Sleep(time.Microsecond)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, want, l.Content())
	assert.Equal(t, len(chunks), l.Retrieved())
}
