package stream

import "iter"

// Tokens is a cursor over a slice of user tokens, typically a lexer's output.
type Tokens[T any] struct {
	cursor
	items []T
	eq    func(a, b T) bool
}

// NewTokens returns a complete-mode cursor over comparable tokens.
func NewTokens[T comparable](items []T) *Tokens[T] {
	return NewTokensFunc(items, func(a, b T) bool { return a == b })
}

// NewTokensFunc returns a cursor whose literal matching and search use eq.
func NewTokensFunc[T any](items []T, eq func(a, b T) bool) *Tokens[T] {
	return &Tokens[T]{cursor: cursor{end: len(items)}, items: items, eq: eq}
}

// Remainder returns the unconsumed tokens without copying.
func (t *Tokens[T]) Remainder() []T {
	return t.items[t.pos:t.end:t.end]
}

func (t *Tokens[T]) PeekItem() (T, int, bool) {
	if t.IsEmpty() {
		var zero T
		return zero, 0, false
	}

	return t.items[t.pos], 1, true
}

func (t *Tokens[T]) NextItem() (T, bool) {
	v, _, ok := t.PeekItem()
	if ok {
		t.pos++
	}

	return v, ok
}

func (t *Tokens[T]) Items() iter.Seq2[int, T] {
	rest := t.Remainder()

	return func(yield func(int, T) bool) {
		for i, v := range rest {
			if !yield(i, v) {
				return
			}
		}
	}
}

func (t *Tokens[T]) OffsetAt(n int) (int, Needed, bool) {
	if rest := t.Remaining(); n > rest {
		return 0, Size(n - rest), false
	}

	return n, Unknown, true
}

func (t *Tokens[T]) PeekSlice(n int) ([]T, Needed, bool) {
	if rest := t.Remaining(); n > rest {
		return nil, Size(n - rest), false
	}

	return t.items[t.pos : t.pos+n : t.pos+n], Unknown, true
}

func (t *Tokens[T]) Advance(n int) {
	t.pos += t.clamp(n)
}

func (t *Tokens[T]) NextSlice(n int) []T {
	n = t.clamp(n)
	s := t.items[t.pos : t.pos+n : t.pos+n]
	t.pos += n

	return s
}

func (t *Tokens[T]) Finish() []T {
	return t.NextSlice(t.Remaining())
}

func (t *Tokens[T]) Compare(lit []T) Comparison {
	rest := t.Remainder()

	n := min(len(rest), len(lit))
	for i := range n {
		if !t.eq(rest[i], lit[i]) {
			return Comparison{Status: Mismatch}
		}
	}

	if len(lit) > len(rest) {
		return Comparison{Status: Short}
	}

	return Comparison{Status: Match, Len: len(lit)}
}

// CompareFold is Compare: tokens have no case.
func (t *Tokens[T]) CompareFold(lit []T) Comparison {
	return t.Compare(lit)
}

func (t *Tokens[T]) Find(needle []T) (int, bool) {
	rest := t.Remainder()
	if len(needle) == 0 {
		return 0, true
	}

outer:
	for i := 0; i+len(needle) <= len(rest); i++ {
		for j, v := range needle {
			if !t.eq(rest[i+j], v) {
				continue outer
			}
		}

		return i, true
	}

	return -1, false
}

func (t *Tokens[T]) SliceLen(s []T) int {
	return len(s)
}
