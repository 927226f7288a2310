package types

import (
	"errors"
	"fmt"
)

// Domain errors shared across the store, service, and client layers.
var (
	// ErrNotFound indicates an unknown entry id.
	ErrNotFound = errors.New("content not found")
	// ErrOutOfRange indicates a chunk index at or past the entry's chunk count.
	ErrOutOfRange = errors.New("chunk index out of range")
	// ErrInvalidArgument indicates a caller bug: non-positive chunk size,
	// empty transform name, unknown content kind.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTooLarge indicates a whole-content fetch on an entry that spans
	// more than one chunk. Callers must fall back to chunked fetching.
	ErrTooLarge = errors.New("content too large for single fetch")
)

// TransformError reports that a transform rejected its input. The message of
// the underlying error is user-actionable (parse position, bad encoding) and
// must survive propagation to the UI.
type TransformError struct {
	Name string // transform name, e.g. "json"
	Err  error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %q failed: %v", e.Name, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError wraps a transform failure with the transform's name.
func NewTransformError(name string, err error) *TransformError {
	return &TransformError{Name: name, Err: err}
}
