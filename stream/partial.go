package stream

// Partial marks a stream as a possibly truncated prefix of the full input.
//
// When a parser runs out of buffered items on a partial stream it reports how
// much more it needs instead of failing. The engine does not suspend: the
// caller appends data and re-runs the parser from the start of the buffer.
type Partial[T, S any] struct {
	Stream[T, S]
	partial bool
}

// Completer is implemented by inputs that can be switched from partial to
// complete mode.
type Completer interface {
	// Complete marks the input as complete and reports whether it was partial.
	Complete() bool
}

// NewPartial wraps s in partial mode.
func NewPartial[T, S any](s Stream[T, S]) *Partial[T, S] {
	return &Partial[T, S]{Stream: s, partial: true}
}

// NewPartialBytes returns a partial cursor over b.
func NewPartialBytes(b []byte) *Partial[byte, []byte] {
	return NewPartial[byte, []byte](NewBytes(b))
}

// NewPartialText returns a partial cursor over s.
func NewPartialText(s string) *Partial[rune, string] {
	return NewPartial[rune, string](NewText(s))
}

// NewPartialTokens returns a partial cursor over items.
func NewPartialTokens[T comparable](items []T) *Partial[T, []T] {
	return NewPartial[T, []T](NewTokens(items))
}

func (p *Partial[T, S]) IsPartial() bool {
	return p.partial
}

func (p *Partial[T, S]) Complete() bool {
	was := p.partial
	p.partial = false

	return was
}

// Inner returns the wrapped stream.
func (p *Partial[T, S]) Inner() Stream[T, S] {
	return p.Stream
}
