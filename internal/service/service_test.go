package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docview-mcp/internal/pipeline"
	"github.com/dshills/docview-mcp/internal/store"
	"github.com/dshills/docview-mcp/internal/transform"
	"github.com/dshills/docview-mcp/pkg/types"
)

func newService(t *testing.T) *Service {
	t.Helper()
	st := store.New(nil)
	return New(st, pipeline.New(st, transform.Default(), nil), nil)
}

func TestPutContent_AndFetchChunk(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	info, err := s.PutContent(ctx, "doc", types.KindRaw, "abcdef", 2)
	require.NoError(t, err)
	require.Equal(t, 3, info.ChunkCount)

	resp, err := s.FetchChunk(ctx, "doc", 0)
	require.NoError(t, err)
	assert.Equal(t, "ab", resp.Content)
	assert.True(t, resp.HasMore)
	assert.Equal(t, 6, resp.TotalLength)
	assert.Equal(t, 1, resp.NextIndex)

	resp, err = s.FetchChunk(ctx, "doc", 2)
	require.NoError(t, err)
	assert.Equal(t, "ef", resp.Content)
	assert.False(t, resp.HasMore)
}

func TestFetchChunk_Errors(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.FetchChunk(ctx, "missing", 0)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = s.PutContent(ctx, "doc", types.KindRaw, "ab", 10)
	require.NoError(t, err)

	_, err = s.FetchChunk(ctx, "doc", 1)
	assert.ErrorIs(t, err, types.ErrOutOfRange)
}

func TestFetchChunkAt_NormalizesOffsets(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.PutContent(ctx, "doc", types.KindRaw, "abcdefghij", 4)
	require.NoError(t, err)

	// Any offset inside a chunk maps to the whole owning chunk.
	for _, offset := range []int{4, 5, 6, 7} {
		resp, err := s.FetchChunkAt(ctx, "doc", offset)
		require.NoError(t, err)
		assert.Equal(t, "efgh", resp.Content, "offset %d", offset)
	}

	_, err = s.FetchChunkAt(ctx, "doc", 10)
	assert.ErrorIs(t, err, types.ErrOutOfRange)
	_, err = s.FetchChunkAt(ctx, "doc", -1)
	assert.ErrorIs(t, err, types.ErrOutOfRange)
}

func TestFetchAll(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.PutContent(ctx, "small", types.KindRaw, "tiny", 100)
	require.NoError(t, err)
	resp, err := s.FetchAll(ctx, "small")
	require.NoError(t, err)
	assert.Equal(t, "tiny", resp.Content)
	assert.False(t, resp.HasMore)

	_, err = s.PutContent(ctx, "empty", types.KindRaw, "", 100)
	require.NoError(t, err)
	resp, err = s.FetchAll(ctx, "empty")
	require.NoError(t, err)
	assert.Equal(t, "", resp.Content)
	assert.False(t, resp.HasMore)

	_, err = s.PutContent(ctx, "big", types.KindRaw, strings.Repeat("x", 250), 100)
	require.NoError(t, err)
	_, err = s.FetchAll(ctx, "big")
	assert.ErrorIs(t, err, types.ErrTooLarge)
}

func TestPutContent_RejectsInvalidUTF8(t *testing.T) {
	s := newService(t)
	_, err := s.PutContent(context.Background(), "bin", types.KindRaw, string([]byte{0xff, 0xfe}), 10)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}

func TestPutFile(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0644))

	info, err := s.PutFile(ctx, "loaded", path, 10000)
	require.NoError(t, err)
	assert.Equal(t, types.KindRaw, info.Kind)
	assert.Equal(t, 7, info.Length)

	_, err = s.PutFile(ctx, "nope", filepath.Join(t.TempDir(), "absent"), 10000)
	assert.Error(t, err)
}

func TestFormat_InheritsSourceChunkSize(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.PutContent(ctx, "raw", types.KindRaw, `{"a":1}`, 5)
	require.NoError(t, err)

	info, err := s.Format(ctx, "raw", "json", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, info.ChunkSize)
	assert.Equal(t, types.KindDerived, info.Kind)
}

func TestClear_Idempotent(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.PutContent(ctx, "doc", types.KindRaw, "x", 10)
	require.NoError(t, err)

	s.Clear(ctx, "doc")
	_, err = s.GetInfo(ctx, "doc")
	assert.ErrorIs(t, err, types.ErrNotFound)

	s.Clear(ctx, "doc") // second clear is a no-op
}

func TestFetchChunk_ConcurrentReadsAgree(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	content := strings.Repeat("paragraph of text\n", 500)
	info, err := s.PutContent(ctx, "doc", types.KindRaw, content, 1000)
	require.NoError(t, err)

	const readers = 8
	results := make([]string, readers)
	var wg sync.WaitGroup
	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			var sb strings.Builder
			for i := 0; i < info.ChunkCount; i++ {
				resp, err := s.FetchChunk(ctx, "doc", i)
				assert.NoError(t, err)
				sb.WriteString(resp.Content)
			}
			results[r] = sb.String()
		}(r)
	}
	wg.Wait()

	for r := 0; r < readers; r++ {
		assert.Equal(t, content, results[r])
	}
}

// A fetch racing a Put that replaces the same id must see one entry version
// throughout: the old content with the old counts, or the new with the new,
// never a mix.
func TestFetchChunk_NoTornReadDuringReplace(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	// Both versions share chunk size 4 but differ in length, so a torn
	// response would pair one version's content with the other's counts.
	_, err := s.PutContent(ctx, "doc", types.KindRaw, "aaaa", 4)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			text := "aaaa"
			if i%2 == 1 {
				text = "bbbbbbbb"
			}
			_, err := s.PutContent(ctx, "doc", types.KindRaw, text, 4)
			assert.NoError(t, err)
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
		}
		resp, err := s.FetchChunk(ctx, "doc", 0)
		require.NoError(t, err)
		switch resp.Content {
		case "aaaa":
			assert.Equal(t, 4, resp.TotalLength)
			assert.False(t, resp.HasMore)
		case "bbbb":
			assert.Equal(t, 8, resp.TotalLength)
			assert.True(t, resp.HasMore)
		default:
			t.Fatalf("impossible chunk content %q", resp.Content)
		}
	}
}

func TestFetchChunk_CancelledContext(t *testing.T) {
	s := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FetchChunk(ctx, "doc", 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTransforms(t *testing.T) {
	s := newService(t)
	assert.Contains(t, s.Transforms(), "json")
	assert.Contains(t, s.Transforms(), "jwt")
}
