// Package token provides the leaf parsers that consume items from a stream.
//
// Every parser here is generic over the item type T and slice type S of a
// stream.Stream. On a partial stream a parser that cannot decide with the
// buffered items reports Incomplete; on a complete stream the same shortfall
// is a Backtrack. A failing leaf never moves the cursor.
package token

import (
	"fmt"

	"github.com/shibukawa/parsekit/combinator"
	"github.com/shibukawa/parsekit/parseerr"
	"github.com/shibukawa/parsekit/stream"
)

// Literal matches lit exactly.
func Literal[T, S any](lit S) combinator.Parser[stream.Stream[T, S], S] {
	return func(in stream.Stream[T, S]) (S, error) {
		return literal(in, lit, in.Compare(lit))
	}
}

// Caseless matches lit ignoring case. The returned slice is the input as
// written, not lit.
func Caseless[T, S any](lit S) combinator.Parser[stream.Stream[T, S], S] {
	return func(in stream.Stream[T, S]) (S, error) {
		return literal(in, lit, in.CompareFold(lit))
	}
}

func literal[T, S any](in stream.Stream[T, S], lit S, c stream.Comparison) (S, error) {
	var zero S

	switch c.Status {
	case stream.Match:
		return in.NextSlice(c.Len), nil
	case stream.Short:
		if in.IsPartial() {
			return zero, parseerr.Incomplete(stream.Size(in.SliceLen(lit) - in.Remaining()))
		}
	}

	return zero, fail(in, parseerr.KindLiteral)
}

// Any consumes one item.
func Any[T, S any]() combinator.Parser[stream.Stream[T, S], T] {
	return func(in stream.Stream[T, S]) (T, error) {
		v, ok := in.NextItem()
		if !ok {
			return v, short(in, stream.Size(1), parseerr.KindToken)
		}

		return v, nil
	}
}

// OneOf consumes one item accepted by set.
func OneOf[T, S any](set func(T) bool) combinator.Parser[stream.Stream[T, S], T] {
	return item[T, S](set)
}

// NoneOf consumes one item rejected by set.
func NoneOf[T, S any](set func(T) bool) combinator.Parser[stream.Stream[T, S], T] {
	return item[T, S](func(v T) bool { return !set(v) })
}

func item[T, S any](accept func(T) bool) combinator.Parser[stream.Stream[T, S], T] {
	return func(in stream.Stream[T, S]) (T, error) {
		v, w, ok := in.PeekItem()
		if !ok {
			return v, short(in, stream.Size(1), parseerr.KindToken)
		}

		if !accept(v) {
			var zero T
			return zero, fail(in, parseerr.KindToken)
		}

		in.Advance(w)

		return v, nil
	}
}

// Take consumes exactly n items.
func Take[T, S any](n int) combinator.Parser[stream.Stream[T, S], S] {
	return func(in stream.Stream[T, S]) (S, error) {
		var zero S

		if n < 0 {
			return zero, parseerr.Assert(in.Offset(), fmt.Errorf("%w: take %d", parseerr.ErrInvalidRange, n))
		}

		off, needed, ok := in.OffsetAt(n)
		if !ok {
			return zero, short(in, needed, parseerr.KindSlice)
		}

		return in.NextSlice(off), nil
	}
}

// TakeWhile consumes the longest run of items accepted by pred, with a run
// length within r.
func TakeWhile[T, S any](r stream.Range, pred func(T) bool) combinator.Parser[stream.Stream[T, S], S] {
	return func(in stream.Stream[T, S]) (S, error) {
		var zero S

		if !r.Valid() {
			return zero, parseerr.Assert(in.Offset(), fmt.Errorf("%w: %s", parseerr.ErrInvalidRange, r))
		}

		count := 0
		for off, v := range in.Items() {
			if !pred(v) {
				if count < r.Min {
					return zero, fail(in, parseerr.KindSlice)
				}

				return in.NextSlice(off), nil
			}

			if r.Bounded() && count == r.Max {
				return in.NextSlice(off), nil
			}

			count++
		}

		if in.IsPartial() {
			if r.Bounded() && count == r.Max {
				return in.Finish(), nil
			}

			return zero, parseerr.Incomplete(stream.Size(max(r.Min-count, 1)))
		}

		if count < r.Min {
			return zero, fail(in, parseerr.KindSlice)
		}

		return in.Finish(), nil
	}
}

// TakeTill consumes the longest run of items rejected by pred, with a run
// length within r.
func TakeTill[T, S any](r stream.Range, pred func(T) bool) combinator.Parser[stream.Stream[T, S], S] {
	return TakeWhile[T, S](r, func(v T) bool { return !pred(v) })
}

// TakeUntil consumes items up to, not including, the first occurrence of
// needle. The number of items consumed must be within r; the search starts
// after the first r.Min items.
func TakeUntil[T, S any](r stream.Range, needle S) combinator.Parser[stream.Stream[T, S], S] {
	return func(in stream.Stream[T, S]) (S, error) {
		var zero S

		if !r.Valid() {
			return zero, parseerr.Assert(in.Offset(), fmt.Errorf("%w: %s", parseerr.ErrInvalidRange, r))
		}

		from, needed, ok := in.OffsetAt(r.Min)
		if !ok {
			return zero, short(in, needed, parseerr.KindSlice)
		}

		start := in.Checkpoint()
		in.Advance(from)
		idx, found := in.Find(needle)
		in.Reset(start)

		if !found {
			return zero, short(in, stream.Unknown, parseerr.KindSlice)
		}

		end := from + idx

		if r.Bounded() {
			if limit, _, ok := in.OffsetAt(r.Max); ok && end > limit {
				return zero, fail(in, parseerr.KindSlice)
			}
		}

		return in.NextSlice(end), nil
	}
}

// Rest consumes everything that is buffered.
func Rest[T, S any]() combinator.Parser[stream.Stream[T, S], S] {
	return func(in stream.Stream[T, S]) (S, error) {
		return in.Finish(), nil
	}
}

// Set returns a predicate accepting any of items.
func Set[T comparable](items ...T) func(T) bool {
	return func(v T) bool {
		for _, it := range items {
			if v == it {
				return true
			}
		}

		return false
	}
}

// InRange returns a predicate accepting lo <= v <= hi.
func InRange[T ~byte | ~rune | ~int](lo, hi T) func(T) bool {
	return func(v T) bool {
		return lo <= v && v <= hi
	}
}

func fail(in stream.Input, kind parseerr.Kind) *parseerr.ErrMode {
	return parseerr.Backtrack(parseerr.NewInputError(in.Offset(), kind))
}

// short reports a shortfall: Incomplete on a partial stream, Backtrack otherwise.
func short(in stream.Input, needed stream.Needed, kind parseerr.Kind) *parseerr.ErrMode {
	if in.IsPartial() {
		return parseerr.Incomplete(needed)
	}

	return fail(in, kind)
}
