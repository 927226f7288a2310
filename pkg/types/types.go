package types

// Kind distinguishes how a content entry came to exist.
type Kind string

const (
	// KindRaw marks content supplied or loaded by the user.
	KindRaw Kind = "raw"
	// KindDerived marks content produced by a transform.
	KindDerived Kind = "derived"
)

// Valid reports whether the kind is one of the known values.
func (k Kind) Valid() bool {
	return k == KindRaw || k == KindDerived
}

// EntryInfo describes a stored content entry without carrying its content.
// All sizes are in characters (runes), never bytes; the store guarantees
// chunk boundaries fall on character boundaries.
type EntryInfo struct {
	ID         string `json:"id"`
	Kind       Kind   `json:"kind"`
	Length     int    `json:"length"`
	ChunkSize  int    `json:"chunk_size"`
	ChunkCount int    `json:"chunk_count"`
}

// ChunkResponse is the unit of transfer for progressive loading.
// NextIndex is the address of the chunk to request next; it is only
// meaningful while HasMore is true.
type ChunkResponse struct {
	Content     string `json:"content"`
	HasMore     bool   `json:"has_more"`
	TotalLength int    `json:"total_length"`
	NextIndex   int    `json:"next_index"`
}
