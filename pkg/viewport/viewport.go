// Package viewport computes which slice of a large text buffer a renderer
// should materialize. It never triggers content fetching; that belongs to
// the progressive loader, so these types work over any string source.
package viewport

import (
	"strings"
	"sync"
)

// Default window tuning. A renderer materializes the visible lines plus a
// margin on each side, never the whole document.
const (
	DefaultVisibleLines = 40
	DefaultMarginLines  = 10
)

// Config sizes the rendered window in line units.
type Config struct {
	VisibleLines int
	MarginLines  int
}

// withDefaults fills non-positive fields. A zero-value Config renders the
// default 40-line window with a 10-line margin on each side.
func (c Config) withDefaults() Config {
	if c.VisibleLines <= 0 {
		c.VisibleLines = DefaultVisibleLines
	}
	if c.MarginLines <= 0 {
		c.MarginLines = DefaultMarginLines
	}
	return c
}

// MaxLines is the hard cap on materialized lines: visible plus a margin
// above and below, independent of document size.
func (c Config) MaxLines() int {
	c = c.withDefaults()
	return c.VisibleLines + 2*c.MarginLines
}

// Window is a half-open line range [Start, End) to materialize.
type Window struct {
	Start int
	End   int
}

// Len returns the number of lines in the window.
func (w Window) Len() int { return w.End - w.Start }

// WindowFor computes the render window around topLine for a document of
// totalLines, clamped to the document.
func (c Config) WindowFor(topLine, totalLines int) Window {
	c = c.withDefaults()

	start := topLine - c.MarginLines
	if start < 0 {
		start = 0
	}
	end := topLine + c.VisibleLines + c.MarginLines
	if end > totalLines {
		end = totalLines
	}
	if start > end {
		start = end
	}
	return Window{Start: start, End: end}
}

// TopLineForOffset converts a pixel scroll offset to the first visible
// line index.
func TopLineForOffset(scrollOffset, lineHeight float64) int {
	if lineHeight <= 0 || scrollOffset <= 0 {
		return 0
	}
	return int(scrollOffset / lineHeight)
}

// Buffer is a growing text buffer with an incremental line index. Appends
// extend the index by scanning only the new bytes, so a progressively
// loaded document is never re-split from the start.
type Buffer struct {
	mu         sync.RWMutex
	text       strings.Builder
	lineStarts []int // byte offset of each line start; always >= 1 entry
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{lineStarts: []int{0}}
}

// Append adds loaded content to the end of the buffer, extending the line
// index over just the appended portion.
func (b *Buffer) Append(s string) {
	if s == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	base := b.text.Len()
	b.text.WriteString(s)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			b.lineStarts = append(b.lineStarts, base+i+1)
		}
	}
}

// LineCount returns the number of lines, counting a trailing unterminated
// line. An empty buffer has one (empty) line, matching how editors and
// split-on-newline renderers count.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lineStarts)
}

// Len returns the buffer's size in bytes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.Len()
}

// Lines returns the lines in [start, end), without trailing newlines.
// The range is clamped to the buffer.
func (b *Buffer) Lines(start, end int) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := len(b.lineStarts)
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return nil
	}

	content := b.text.String()
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lo := b.lineStarts[i]
		hi := len(content)
		if i+1 < n {
			hi = b.lineStarts[i+1] - 1 // strip the newline
		}
		out = append(out, content[lo:hi])
	}
	return out
}

// Render returns the window around topLine and its materialized lines.
// len(lines) never exceeds cfg.MaxLines() regardless of buffer size.
func (b *Buffer) Render(topLine int, cfg Config) (Window, []string) {
	w := cfg.WindowFor(topLine, b.LineCount())
	return w, b.Lines(w.Start, w.End)
}
