// Package combinator composes parsers.
//
// A Parser is a function from a cursor to a value. On success the cursor has
// been advanced past the consumed input. On failure the parser returns a
// *parseerr.ErrMode: Backtrack and Incomplete leave the cursor where it was
// (leaf parsers never move it; sequences rely on the enclosing alternation or
// entry point to restore it), Cut leaves it at the point of commitment.
//
// Incomplete input is handled by re-entry, not suspension: when a partial
// parse reports Incomplete the caller appends data to the same logical buffer
// and runs the parser again from the beginning.
package combinator

import (
	"github.com/shibukawa/parsekit/parseerr"
	"github.com/shibukawa/parsekit/stream"
)

// Parser parses a value of type O from input I.
type Parser[I any, O any] func(in I) (O, error)

// Run parses in complete mode. A partial input is switched to complete mode
// first, so the result is never Incomplete. On Backtrack the cursor is
// restored; the remaining input stays in in.
func Run[I stream.Input, O any](p Parser[I, O], in I) (O, error) {
	if c, ok := any(in).(stream.Completer); ok {
		c.Complete()
	}

	start := in.Checkpoint()

	out, err := p(in)
	if err == nil {
		return out, nil
	}

	em := parseerr.From(err, in.Offset())
	if em.Mode == parseerr.ModeIncomplete {
		em = parseerr.Backtrack(parseerr.NewInputError(in.Offset(), parseerr.KindComplete))
	}

	if em.Mode == parseerr.ModeBacktrack {
		in.Reset(start)
	}

	var zero O

	return zero, em
}

// RunPartial parses in whatever mode in is in. On a partial input it may
// return Incomplete, in which case the cursor is restored and the caller is
// expected to retry with more data appended.
func RunPartial[I stream.Input, O any](p Parser[I, O], in I) (O, error) {
	start := in.Checkpoint()

	out, err := p(in)
	if err == nil {
		return out, nil
	}

	em := parseerr.From(err, in.Offset())
	if em.Mode != parseerr.ModeCut {
		in.Reset(start)
	}

	var zero O

	return zero, em
}

// Parse is Run followed by a check that every item was consumed. When items
// remain the cursor is restored and the Backtrack points at the first of them.
func Parse[I stream.Input, O any](p Parser[I, O], in I) (O, error) {
	start := in.Checkpoint()

	out, err := Run(p, in)
	if err != nil {
		return out, err
	}

	if !in.IsEmpty() {
		offset := in.Offset()
		in.Reset(start)

		var zero O

		return zero, parseerr.Backtrack(parseerr.NewInputError(offset, parseerr.KindEof))
	}

	return out, nil
}

func backtrack(in stream.Input, kind parseerr.Kind) *parseerr.ErrMode {
	return parseerr.Backtrack(parseerr.NewInputError(in.Offset(), kind))
}

func backtrackAt(offset int, kind parseerr.Kind) *parseerr.ErrMode {
	return parseerr.Backtrack(parseerr.NewInputError(offset, kind))
}
