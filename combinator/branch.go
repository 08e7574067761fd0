package combinator

import (
	"github.com/shibukawa/parsekit/parseerr"
	"github.com/shibukawa/parsekit/stream"
)

// Option is the output of Opt.
type Option[O any] struct {
	Value O
	Some  bool
}

// Alt tries parsers in order and returns the first success.
//
// A Backtrack restores the cursor and moves on to the next parser. Cut and
// Incomplete stop the alternation immediately. When every parser backtracks
// the failures are merged with ParserError.Or and annotated with KindAlt.
func Alt[I stream.Input, O any](parsers ...Parser[I, O]) Parser[I, O] {
	return func(in I) (O, error) {
		var zero O

		start := in.Checkpoint()

		var last parseerr.ParserError
		for _, p := range parsers {
			out, err := p(in)
			if err == nil {
				return out, nil
			}

			em := parseerr.From(err, in.Offset())
			switch em.Mode {
			case parseerr.ModeCut:
				return zero, em
			case parseerr.ModeIncomplete:
				in.Reset(start)
				return zero, em
			}

			in.Reset(start)

			if last == nil {
				last = em.Err
			} else {
				last = last.Or(em.Err)
			}
		}

		if last == nil {
			return zero, backtrackAt(start.Offset(), parseerr.KindAlt)
		}

		return zero, parseerr.Backtrack(last.Append(start.Offset(), parseerr.KindAlt))
	}
}

// Opt runs p and turns a Backtrack into an empty Option.
func Opt[I stream.Input, O any](p Parser[I, O]) Parser[I, Option[O]] {
	return func(in I) (Option[O], error) {
		start := in.Checkpoint()

		out, err := p(in)
		if err == nil {
			return Option[O]{Value: out, Some: true}, nil
		}

		em := parseerr.From(err, in.Offset())
		if em.Mode != parseerr.ModeBacktrack {
			return Option[O]{}, em
		}

		in.Reset(start)

		return Option[O]{}, nil
	}
}

// OptOr runs p and returns def when it backtracks.
func OptOr[I stream.Input, O any](p Parser[I, O], def O) Parser[I, O] {
	return Map(Opt(p), func(o Option[O]) O {
		if o.Some {
			return o.Value
		}

		return def
	})
}
