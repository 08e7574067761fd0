package combinator

import (
	"fmt"

	"github.com/shibukawa/parsekit/parseerr"
	"github.com/shibukawa/parsekit/stream"
)

// Repeat runs p as many times as r allows and collects the outputs.
//
// Repetition stops cleanly when p backtracks after r.Min successes; the
// cursor is restored to before the failed attempt. Fewer than r.Min successes
// is a Backtrack annotated with KindRepeat. Cut and Incomplete propagate.
//
// Under an unbounded range, a success of p that consumes nothing would loop
// forever and is reported as a Cut satisfying parseerr.IsZeroProgress. Under
// a bounded range such iterations are counted like any other.
func Repeat[I stream.Input, O any](r stream.Range, p Parser[I, O]) Parser[I, []O] {
	return RepeatFold(r, p,
		func() []O { return make([]O, 0, max(r.Min, 0)) },
		func(acc []O, v O) []O { return append(acc, v) },
	)
}

// Repeat0 is Repeat(stream.AtLeast(0), p).
func Repeat0[I stream.Input, O any](p Parser[I, O]) Parser[I, []O] {
	return Repeat(stream.AtLeast(0), p)
}

// Repeat1 is Repeat(stream.AtLeast(1), p).
func Repeat1[I stream.Input, O any](p Parser[I, O]) Parser[I, []O] {
	return Repeat(stream.AtLeast(1), p)
}

// RepeatN runs p exactly n times.
func RepeatN[I stream.Input, O any](n int, p Parser[I, O]) Parser[I, []O] {
	return Repeat(stream.Exactly(n), p)
}

// RepeatFold is Repeat without the intermediate slice: every output is folded
// into an accumulator created by init.
func RepeatFold[I stream.Input, O, A any](r stream.Range, p Parser[I, O], init func() A, fold func(A, O) A) Parser[I, A] {
	return func(in I) (A, error) {
		var zero A

		if !r.Valid() {
			return zero, invalidRange(in, r)
		}

		start := in.Offset()
		acc := init()

		for count := 0; !r.Bounded() || count < r.Max; count++ {
			cp := in.Checkpoint()

			out, err := p(in)
			if err != nil {
				em := parseerr.From(err, in.Offset())
				if em.Mode != parseerr.ModeBacktrack {
					return zero, em
				}

				in.Reset(cp)

				if count < r.Min {
					return zero, parseerr.Backtrack(em.Err.Append(start, parseerr.KindRepeat))
				}

				return acc, nil
			}

			if !r.Bounded() && in.Offset() == cp.Offset() {
				return zero, parseerr.Assert(in.Offset(), parseerr.ErrZeroProgress)
			}

			acc = fold(acc, out)
		}

		return acc, nil
	}
}

// RepeatTill runs p until end succeeds, collecting the outputs of p and end.
// end is only tried once r.Min repetitions of p have been parsed.
func RepeatTill[I stream.Input, O, E any](r stream.Range, p Parser[I, O], end Parser[I, E]) Parser[I, Tuple2[[]O, E]] {
	return func(in I) (Tuple2[[]O, E], error) {
		var zero Tuple2[[]O, E]

		if !r.Valid() {
			return zero, invalidRange(in, r)
		}

		start := in.Offset()
		items := make([]O, 0, r.Min)

		for count := 0; ; count++ {
			cp := in.Checkpoint()

			if count >= r.Min {
				e, err := end(in)
				if err == nil {
					return Tuple2[[]O, E]{V1: items, V2: e}, nil
				}

				em := parseerr.From(err, in.Offset())
				if em.Mode != parseerr.ModeBacktrack {
					return zero, em
				}

				in.Reset(cp)
			}

			if r.Bounded() && count >= r.Max {
				return zero, backtrackAt(in.Offset(), parseerr.KindRepeat)
			}

			out, err := p(in)
			if err != nil {
				em := parseerr.From(err, in.Offset())
				if em.Mode == parseerr.ModeBacktrack {
					return zero, parseerr.Backtrack(em.Err.Append(start, parseerr.KindRepeat))
				}

				return zero, em
			}

			if !r.Bounded() && in.Offset() == cp.Offset() {
				return zero, parseerr.Assert(in.Offset(), parseerr.ErrZeroProgress)
			}

			items = append(items, out)
		}
	}
}

// Separated parses occurrences of p separated by sep, counting occurrences of p
// against r. A trailing separator is left unconsumed.
func Separated[I stream.Input, O, S any](r stream.Range, p Parser[I, O], sep Parser[I, S]) Parser[I, []O] {
	return func(in I) ([]O, error) {
		if !r.Valid() {
			return nil, invalidRange(in, r)
		}

		start := in.Offset()
		items := make([]O, 0, r.Min)

		if r.Max == 0 {
			return items, nil
		}

		fail := func(err error, count int, cp stream.Checkpoint) ([]O, error) {
			em := parseerr.From(err, in.Offset())
			if em.Mode != parseerr.ModeBacktrack {
				return nil, em
			}

			in.Reset(cp)

			if count < r.Min {
				return nil, parseerr.Backtrack(em.Err.Append(start, parseerr.KindRepeat))
			}

			return items, nil
		}

		cp := in.Checkpoint()

		first, err := p(in)
		if err != nil {
			return fail(err, 0, cp)
		}
		items = append(items, first)

		for !r.Bounded() || len(items) < r.Max {
			cp := in.Checkpoint()

			if _, err := sep(in); err != nil {
				return fail(err, len(items), cp)
			}

			v, err := p(in)
			if err != nil {
				return fail(err, len(items), cp)
			}

			if !r.Bounded() && in.Offset() == cp.Offset() {
				return nil, parseerr.Assert(in.Offset(), parseerr.ErrZeroProgress)
			}

			items = append(items, v)
		}

		return items, nil
	}
}

// SeparatedFoldl1 parses one or more p separated by sep and folds them from the
// left: f(f(p1, s1, p2), s2, p3). It is the usual shape of a binary operator
// level in an expression grammar.
func SeparatedFoldl1[I stream.Input, O, S any](p Parser[I, O], sep Parser[I, S], f func(left O, op S, right O) O) Parser[I, O] {
	rest := Pair(sep, p)

	return func(in I) (O, error) {
		first, err := p(in)
		if err != nil {
			return first, err
		}

		return RepeatFold(stream.AtLeast(0), rest,
			func() O { return first },
			func(acc O, v Tuple2[S, O]) O { return f(acc, v.V1, v.V2) },
		)(in)
	}
}

func invalidRange(in stream.Input, r stream.Range) *parseerr.ErrMode {
	return parseerr.Assert(in.Offset(), fmt.Errorf("%w: %s", parseerr.ErrInvalidRange, r))
}
