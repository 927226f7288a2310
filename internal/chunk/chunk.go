// Package chunk defines the single addressing law used to split and serve
// content. The write path (store.Put) and the read path (store.GetChunk)
// both go through these functions; any offset-based request is normalized
// to its owning chunk index here, never treated as a second scheme.
//
// A chunk index i (0-based) owns the half-open character range
//
//	[i*size, min((i+1)*size, length))
//
// with Count(length, size) = ceil(length/size) and Count(0, size) = 0.
// All quantities are character (rune) counts.
package chunk

// Count returns the number of chunks needed to hold length characters at
// the given chunk size. Empty content occupies zero chunks.
// size must be positive; callers validate before reaching this law.
func Count(length, size int) int {
	if length <= 0 {
		return 0
	}
	return (length + size - 1) / size
}

// IndexForOffset returns the chunk index owning the given character offset.
func IndexForOffset(offset, size int) int {
	if offset <= 0 {
		return 0
	}
	return offset / size
}

// Bounds returns the character range [start, end) owned by a chunk index,
// clamped to the content length. The last chunk may be shorter than size.
func Bounds(index, size, length int) (start, end int) {
	start = index * size
	end = start + size
	if end > length {
		end = length
	}
	if start > length {
		start = length
	}
	return start, end
}
