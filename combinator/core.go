package combinator

import (
	"sync"

	"github.com/shibukawa/parsekit/parseerr"
	"github.com/shibukawa/parsekit/stream"
)

// Span is a value with the absolute offsets of the input it was parsed from.
type Span[O any] struct {
	Start int
	End   int
	Value O
}

// Map transforms the output of p.
func Map[I stream.Input, O, O2 any](p Parser[I, O], f func(O) O2) Parser[I, O2] {
	return func(in I) (O2, error) {
		v, err := p(in)
		if err != nil {
			var zero O2
			return zero, err
		}

		return f(v), nil
	}
}

// TryMap transforms the output of p with a fallible function. A failure of f
// restores the cursor and is reported as a Backtrack of KindVerify wrapping
// the returned error.
func TryMap[I stream.Input, O, O2 any](p Parser[I, O], f func(O) (O2, error)) Parser[I, O2] {
	return func(in I) (O2, error) {
		var zero O2

		start := in.Checkpoint()

		v, err := p(in)
		if err != nil {
			return zero, err
		}

		out, err := f(v)
		if err != nil {
			in.Reset(start)
			return zero, parseerr.Backtrack(parseerr.FromExternal(start.Offset(), parseerr.KindVerify, err))
		}

		return out, nil
	}
}

// Verify succeeds only when pred accepts the output of p.
func Verify[I stream.Input, O any](p Parser[I, O], pred func(O) bool) Parser[I, O] {
	return func(in I) (O, error) {
		start := in.Checkpoint()

		v, err := p(in)
		if err != nil {
			return v, err
		}

		if !pred(v) {
			in.Reset(start)

			var zero O

			return zero, backtrackAt(start.Offset(), parseerr.KindVerify)
		}

		return v, nil
	}
}

// Value replaces the output of p with v.
func Value[I stream.Input, O, V any](p Parser[I, O], v V) Parser[I, V] {
	return Map(p, func(O) V { return v })
}

// Void discards the output of p.
func Void[I stream.Input, O any](p Parser[I, O]) Parser[I, struct{}] {
	return Value(p, struct{}{})
}

// Recognize returns the slice of input consumed by p instead of its output.
func Recognize[T, S, O any](p Parser[stream.Stream[T, S], O]) Parser[stream.Stream[T, S], S] {
	return Map(WithRecognized(p), func(v Tuple2[O, S]) S { return v.V2 })
}

// WithRecognized returns the output of p together with the consumed slice.
func WithRecognized[T, S, O any](p Parser[stream.Stream[T, S], O]) Parser[stream.Stream[T, S], Tuple2[O, S]] {
	return func(in stream.Stream[T, S]) (Tuple2[O, S], error) {
		start := in.Checkpoint()

		v, err := p(in)
		if err != nil {
			return Tuple2[O, S]{}, err
		}

		end := in.Checkpoint()
		in.Reset(start)

		return Tuple2[O, S]{V1: v, V2: in.NextSlice(start.Distance(end))}, nil
	}
}

// Spanned records the offsets consumed by p.
func Spanned[I stream.Input, O any](p Parser[I, O]) Parser[I, Span[O]] {
	return func(in I) (Span[O], error) {
		start := in.Offset()

		v, err := p(in)
		if err != nil {
			return Span[O]{}, err
		}

		return Span[O]{Start: start, End: in.Offset(), Value: v}, nil
	}
}

// Not succeeds without consuming when p backtracks, and backtracks when p succeeds.
func Not[I stream.Input, O any](p Parser[I, O]) Parser[I, struct{}] {
	return func(in I) (struct{}, error) {
		start := in.Checkpoint()

		_, err := p(in)
		in.Reset(start)

		if err == nil {
			return struct{}{}, backtrackAt(start.Offset(), parseerr.KindNot)
		}

		em := parseerr.From(err, start.Offset())
		if em.Mode != parseerr.ModeBacktrack {
			return struct{}{}, em
		}

		return struct{}{}, nil
	}
}

// Peek runs p without consuming input.
func Peek[I stream.Input, O any](p Parser[I, O]) Parser[I, O] {
	return func(in I) (O, error) {
		start := in.Checkpoint()

		v, err := p(in)
		if err != nil {
			return v, err
		}

		in.Reset(start)

		return v, nil
	}
}

// Eof succeeds only at the end of the buffered input.
func Eof[I stream.Input]() Parser[I, struct{}] {
	return func(in I) (struct{}, error) {
		if !in.IsEmpty() {
			return struct{}{}, backtrack(in, parseerr.KindEof)
		}

		return struct{}{}, nil
	}
}

// Empty succeeds without consuming input.
func Empty[I stream.Input]() Parser[I, struct{}] {
	return func(I) (struct{}, error) {
		return struct{}{}, nil
	}
}

// Succeed returns v without consuming input.
func Succeed[I stream.Input, O any](v O) Parser[I, O] {
	return func(I) (O, error) {
		return v, nil
	}
}

// Fail always backtracks.
func Fail[I stream.Input, O any]() Parser[I, O] {
	return func(in I) (O, error) {
		var zero O
		return zero, backtrack(in, parseerr.KindFail)
	}
}

// Lazy defers building a parser until first use, for recursive grammars.
func Lazy[I stream.Input, O any](build func() Parser[I, O]) Parser[I, O] {
	get := sync.OnceValue(build)

	return func(in I) (O, error) {
		return get()(in)
	}
}

// CutErr commits p: a Backtrack from p becomes a Cut.
func CutErr[I stream.Input, O any](p Parser[I, O]) Parser[I, O] {
	return func(in I) (O, error) {
		v, err := p(in)
		if err != nil {
			return v, parseerr.From(err, in.Offset()).IntoCut()
		}

		return v, nil
	}
}

// BacktrackErr turns a Cut from p back into a Backtrack.
func BacktrackErr[I stream.Input, O any](p Parser[I, O]) Parser[I, O] {
	return func(in I) (O, error) {
		v, err := p(in)
		if err != nil {
			return v, parseerr.From(err, in.Offset()).IntoBacktrack()
		}

		return v, nil
	}
}

// Complete turns an Incomplete from p into a Backtrack of KindComplete, for
// sub-grammars that must not wait for more input.
func Complete[I stream.Input, O any](p Parser[I, O]) Parser[I, O] {
	return func(in I) (O, error) {
		start := in.Checkpoint()

		v, err := p(in)
		if err == nil {
			return v, nil
		}

		em := parseerr.From(err, in.Offset())
		if em.Mode == parseerr.ModeIncomplete {
			in.Reset(start)
			return v, backtrackAt(start.Offset(), parseerr.KindComplete)
		}

		return v, em
	}
}

// Context attaches ctx to Backtrack and Cut failures of p.
func Context[I stream.Input, O any](ctx parseerr.Context, p Parser[I, O]) Parser[I, O] {
	return func(in I) (O, error) {
		start := in.Offset()

		v, err := p(in)
		if err == nil {
			return v, nil
		}

		return v, parseerr.From(err, in.Offset()).Map(func(e parseerr.ParserError) parseerr.ParserError {
			return parseerr.AddContext(e, start, ctx)
		})
	}
}

// MapErr replaces the payload of Backtrack and Cut failures of p, so a grammar
// can report its own error type.
func MapErr[I stream.Input, O any](p Parser[I, O], f func(parseerr.ParserError) parseerr.ParserError) Parser[I, O] {
	return func(in I) (O, error) {
		v, err := p(in)
		if err == nil {
			return v, nil
		}

		return v, parseerr.From(err, in.Offset()).Map(f)
	}
}
