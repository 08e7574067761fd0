package combinator

import "github.com/shibukawa/parsekit/stream"

// Tuple2 holds the outputs of two parsers run in sequence.
type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

// Tuple3 holds the outputs of three parsers run in sequence.
type Tuple3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

// Pair runs pa then pb.
func Pair[I stream.Input, A, B any](pa Parser[I, A], pb Parser[I, B]) Parser[I, Tuple2[A, B]] {
	return func(in I) (Tuple2[A, B], error) {
		a, err := pa(in)
		if err != nil {
			return Tuple2[A, B]{}, err
		}

		b, err := pb(in)
		if err != nil {
			return Tuple2[A, B]{}, err
		}

		return Tuple2[A, B]{V1: a, V2: b}, nil
	}
}

// Triple runs pa, pb then pc.
func Triple[I stream.Input, A, B, C any](pa Parser[I, A], pb Parser[I, B], pc Parser[I, C]) Parser[I, Tuple3[A, B, C]] {
	return func(in I) (Tuple3[A, B, C], error) {
		a, err := pa(in)
		if err != nil {
			return Tuple3[A, B, C]{}, err
		}

		b, err := pb(in)
		if err != nil {
			return Tuple3[A, B, C]{}, err
		}

		c, err := pc(in)
		if err != nil {
			return Tuple3[A, B, C]{}, err
		}

		return Tuple3[A, B, C]{V1: a, V2: b, V3: c}, nil
	}
}

// Seq runs parsers of the same output type in order and collects the outputs.
func Seq[I stream.Input, O any](parsers ...Parser[I, O]) Parser[I, []O] {
	return func(in I) ([]O, error) {
		out := make([]O, 0, len(parsers))

		for _, p := range parsers {
			v, err := p(in)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}

		return out, nil
	}
}

// Preceded runs first and second, keeping the output of second.
func Preceded[I stream.Input, A, B any](first Parser[I, A], second Parser[I, B]) Parser[I, B] {
	return func(in I) (B, error) {
		if _, err := first(in); err != nil {
			var zero B
			return zero, err
		}

		return second(in)
	}
}

// Terminated runs first and second, keeping the output of first.
func Terminated[I stream.Input, A, B any](first Parser[I, A], second Parser[I, B]) Parser[I, A] {
	return func(in I) (A, error) {
		a, err := first(in)
		if err != nil {
			return a, err
		}

		if _, err := second(in); err != nil {
			var zero A
			return zero, err
		}

		return a, nil
	}
}

// Delimited runs open, inner and closing, keeping the output of inner.
func Delimited[I stream.Input, A, B, C any](open Parser[I, A], inner Parser[I, B], closing Parser[I, C]) Parser[I, B] {
	return Terminated(Preceded(open, inner), closing)
}

// SeparatedPair runs left, sep and right, keeping the outputs of left and right.
func SeparatedPair[I stream.Input, A, S, B any](left Parser[I, A], sep Parser[I, S], right Parser[I, B]) Parser[I, Tuple2[A, B]] {
	return Pair(Terminated(left, sep), right)
}
