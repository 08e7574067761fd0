// Package parseerr defines the three-way failure model of parsers.
//
// A failure is Backtrack (try a sibling alternative), Cut (stop trying
// alternatives) or Incomplete (more input is needed). Backtrack and Cut carry
// a ParserError payload; Incomplete carries a stream.Needed.
package parseerr

import (
	"errors"
	"fmt"

	"github.com/shibukawa/parsekit/stream"
)

// Sentinel errors
var (
	// ErrZeroProgress is the cause of the Cut produced when an unbounded
	// repetition's inner parser succeeds without consuming input.
	ErrZeroProgress = errors.New("repeated parser succeeded without consuming input")
	// ErrInvalidRange is the cause of the Cut produced for inconsistent bounds.
	ErrInvalidRange = errors.New("invalid repetition range")
)

// Mode is the failure class.
type Mode int

const (
	ModeBacktrack Mode = iota
	ModeCut
	ModeIncomplete
)

func (m Mode) String() string {
	switch m {
	case ModeBacktrack:
		return "backtrack"
	case ModeCut:
		return "cut"
	case ModeIncomplete:
		return "incomplete"
	default:
		return "unknown"
	}
}

// ErrMode is the error type returned by parsers.
type ErrMode struct {
	Mode   Mode
	Needed stream.Needed
	Err    ParserError
}

// Backtrack returns a recoverable failure.
func Backtrack(err ParserError) *ErrMode {
	return &ErrMode{Mode: ModeBacktrack, Err: err}
}

// Cut returns a committed failure.
func Cut(err ParserError) *ErrMode {
	return &ErrMode{Mode: ModeCut, Err: err}
}

// Incomplete returns a request for more input.
func Incomplete(needed stream.Needed) *ErrMode {
	return &ErrMode{Mode: ModeIncomplete, Needed: needed}
}

// Assert returns the Cut used for grammar misuse detected at run time.
func Assert(offset int, cause error) *ErrMode {
	return Cut(FromExternal(offset, KindAssert, cause))
}

func (e *ErrMode) Error() string {
	if e.Mode == ModeIncomplete {
		return fmt.Sprintf("incomplete input: needed %s", e.Needed)
	}

	if e.Err == nil {
		return e.Mode.String()
	}

	return e.Mode.String() + ": " + e.Err.Error()
}

func (e *ErrMode) Unwrap() error {
	if e.Err == nil {
		return nil
	}

	return e.Err
}

// Location returns the failure offset, or -1 for Incomplete.
func (e *ErrMode) Location() int {
	if e.Err == nil {
		return -1
	}

	return e.Err.Location()
}

// IntoCut converts a Backtrack into a Cut. Other modes are returned unchanged.
func (e *ErrMode) IntoCut() *ErrMode {
	if e.Mode != ModeBacktrack {
		return e
	}

	return Cut(e.Err)
}

// IntoBacktrack converts a Cut into a Backtrack. Other modes are returned unchanged.
func (e *ErrMode) IntoBacktrack() *ErrMode {
	if e.Mode != ModeCut {
		return e
	}

	return Backtrack(e.Err)
}

// Map transforms the payload of Backtrack and Cut failures.
func (e *ErrMode) Map(f func(ParserError) ParserError) *ErrMode {
	if e.Mode == ModeIncomplete {
		return e
	}

	return &ErrMode{Mode: e.Mode, Err: f(e.Err)}
}

// From converts any error into an ErrMode. Errors that are not ErrMode are
// treated as Backtrack failures at offset. A Backtrack or Cut without a
// payload gets a KindFail payload at offset.
func From(err error, offset int) *ErrMode {
	if err == nil {
		return nil
	}

	var em *ErrMode
	if errors.As(err, &em) {
		if em.Err == nil && em.Mode != ModeIncomplete {
			return &ErrMode{Mode: em.Mode, Err: NewInputError(offset, KindFail)}
		}

		return em
	}

	return Backtrack(FromExternal(offset, KindExternal, err))
}

// Classify returns the mode of a parser error. ok is false for nil.
func Classify(err error) (Mode, bool) {
	if err == nil {
		return 0, false
	}

	var em *ErrMode
	if errors.As(err, &em) {
		return em.Mode, true
	}

	return ModeBacktrack, true
}

// IsBacktrack reports whether err is a recoverable failure.
func IsBacktrack(err error) bool {
	m, ok := Classify(err)
	return ok && m == ModeBacktrack
}

// IsCut reports whether err is a committed failure.
func IsCut(err error) bool {
	m, ok := Classify(err)
	return ok && m == ModeCut
}

// IsIncomplete reports whether err asks for more input.
func IsIncomplete(err error) bool {
	m, ok := Classify(err)
	return ok && m == ModeIncomplete
}

// IsZeroProgress reports whether err is the infinite-loop guard of a repetition.
func IsZeroProgress(err error) bool {
	return IsCut(err) && errors.Is(err, ErrZeroProgress)
}

// NeededOf returns the Needed of an Incomplete failure.
func NeededOf(err error) (stream.Needed, bool) {
	var em *ErrMode
	if errors.As(err, &em) && em.Mode == ModeIncomplete {
		return em.Needed, true
	}

	return stream.Unknown, false
}

// ParserErrorOf returns the payload of a Backtrack or Cut failure.
func ParserErrorOf(err error) (ParserError, bool) {
	var em *ErrMode
	if errors.As(err, &em) && em.Err != nil {
		return em.Err, true
	}

	return nil, false
}
