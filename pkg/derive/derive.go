// Package derive models two-way "edit either side" UI couplings as a
// single source of truth plus pure derivation functions. Editing one pane
// recomputes the other through a function call; the two values are never
// independently mutable fields kept in sync by hand, and no callback is
// ever stashed in shared package state.
package derive

import "sync"

// Func derives one representation from another.
type Func func(string) (string, error)

// Binding is a one-way derived value: a source string and the output a
// pure function computes from it. On derivation failure the previous
// output is kept, so a half-typed edit does not blank the other pane.
type Binding struct {
	fn Func

	mu     sync.Mutex
	source string
	output string
}

// NewBinding creates a binding over the given derivation function.
func NewBinding(fn Func) *Binding {
	return &Binding{fn: fn}
}

// SetSource updates the source and recomputes the output.
func (b *Binding) SetSource(s string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.source = s
	out, err := b.fn(s)
	if err != nil {
		return b.output, err
	}
	b.output = out
	return out, nil
}

// Source returns the current source value.
func (b *Binding) Source() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.source
}

// Output returns the most recently derived output.
func (b *Binding) Output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.output
}

// Pair couples two editable representations of one value, such as the
// plain and encoded panes of an interactive base64 view. The plain text is
// the single source of truth; editing the encoded side first derives the
// plain value, then re-derives the encoded form from it, so the panes can
// never drift apart.
type Pair struct {
	encode Func // plain -> encoded
	decode Func // encoded -> plain

	mu      sync.Mutex
	plain   string
	encoded string
}

// NewPair creates a pair from complementary derivations.
func NewPair(encode, decode Func) *Pair {
	return &Pair{encode: encode, decode: decode}
}

// SetPlain handles an edit to the plain pane, returning the new encoded
// value. On failure neither side changes.
func (p *Pair) SetPlain(s string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	encoded, err := p.encode(s)
	if err != nil {
		return p.encoded, err
	}
	p.plain = s
	p.encoded = encoded
	return encoded, nil
}

// SetEncoded handles an edit to the encoded pane, returning the new plain
// value. The plain result becomes the source of truth and the encoded side
// is re-derived from it (normalizing whitespace or padding the user typed).
// On failure neither side changes.
func (p *Pair) SetEncoded(s string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	plain, err := p.decode(s)
	if err != nil {
		return p.plain, err
	}
	encoded, err := p.encode(plain)
	if err != nil {
		return p.plain, err
	}
	p.plain = plain
	p.encoded = encoded
	return plain, nil
}

// Plain returns the source-of-truth value.
func (p *Pair) Plain() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.plain
}

// Encoded returns the derived representation.
func (p *Pair) Encoded() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoded
}
