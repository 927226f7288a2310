// Package transform provides the catalog of pure text transformations the
// pipeline applies to stored content. A transform is a stateless
// string -> string function; the pipeline treats implementations as opaque
// and never retries them, since the same input always produces the same
// result.
package transform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/docview-mcp/pkg/types"
)

// Func is a pure, deterministic text transformation.
type Func func(string) (string, error)

// Registry maps transform names to functions. Consumers receive the
// registry through ordinary parameters, never ambient package state, so
// alternative catalogs can be injected in tests and embedders.
type Registry struct {
	mu  sync.RWMutex
	fns map[string]Func
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]Func)}
}

// Register adds or replaces a named transform.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" || fn == nil {
		return fmt.Errorf("transform registration: %w", types.ErrInvalidArgument)
	}
	r.mu.Lock()
	r.fns[name] = fn
	r.mu.Unlock()
	return nil
}

// Get looks up a transform by name.
func (r *Registry) Get(name string) (Func, error) {
	if name == "" {
		return nil, fmt.Errorf("empty transform name: %w", types.ErrInvalidArgument)
	}
	r.mu.RLock()
	fn, ok := r.fns[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown transform %q: %w", name, types.ErrNotFound)
	}
	return fn, nil
}

// Names returns the registered transform names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Default returns a registry loaded with the built-in transforms.
func Default() *Registry {
	r := NewRegistry()
	_ = r.Register("json", FormatJSON)
	_ = r.Register("json-summary", SummarizeJSON)
	_ = r.Register("xml", FormatXML)
	_ = r.Register("jwt", DecodeJWT)
	_ = r.Register("encode", EncodeBase64)
	_ = r.Register("decode", DecodeBase64)
	return r
}
