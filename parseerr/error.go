package parseerr

import (
	"fmt"
	"slices"
	"strings"
)

// ParserError is the payload carried by backtrack and cut failures.
//
// Implementations other than InputError and ContextError may be supplied by
// grammars that want their own diagnostics.
type ParserError interface {
	error
	// Location returns the absolute input offset of the failure.
	Location() int
	ErrorKind() Kind
	// Append lets an enclosing parser annotate the failure without discarding it.
	Append(offset int, kind Kind) ParserError
	// Or merges the failure of a sibling alternative tried after this one.
	Or(other ParserError) ParserError
}

// InputError records only where and how a parse failed.
type InputError struct {
	Offset int
	Kind   Kind
}

var _ ParserError = (*InputError)(nil)

// NewInputError creates an InputError.
func NewInputError(offset int, kind Kind) *InputError {
	return &InputError{Offset: offset, Kind: kind}
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Kind.Description(), e.Offset)
}

func (e *InputError) Location() int {
	return e.Offset
}

func (e *InputError) ErrorKind() Kind {
	return e.Kind
}

// Append keeps the innermost failure.
func (e *InputError) Append(offset int, kind Kind) ParserError {
	return e
}

// Or keeps the most recent failure.
func (e *InputError) Or(other ParserError) ParserError {
	return other
}

// Frame is one Append annotation.
type Frame struct {
	Offset int
	Kind   Kind
}

// ContextKind distinguishes labels from expectations.
type ContextKind int

const (
	// ContextLabel names the construct being parsed ("argument list").
	ContextLabel ContextKind = iota
	// ContextExpected describes what was expected ("')'").
	ContextExpected
)

// Context is a piece of grammar-level information attached to a failure.
type Context struct {
	Kind   ContextKind
	Value  string
	Offset int
}

// Label returns a label context.
func Label(value string) Context {
	return Context{Kind: ContextLabel, Value: value}
}

// Expected returns an expectation context.
func Expected(value string) Context {
	return Context{Kind: ContextExpected, Value: value}
}

func (c Context) String() string {
	if c.Kind == ContextExpected {
		return "expected " + c.Value
	}

	return "invalid " + c.Value
}

// ContextError accumulates annotations from the parsers it propagated through.
// Frames and Contexts are ordered innermost first.
type ContextError struct {
	Offset   int
	Kind     Kind
	Frames   []Frame
	Contexts []Context
	Cause    error
}

var _ ParserError = (*ContextError)(nil)

// FromExternal wraps an error returned by user code.
func FromExternal(offset int, kind Kind, cause error) *ContextError {
	return &ContextError{Offset: offset, Kind: kind, Cause: cause}
}

func (e *ContextError) Error() string {
	var sb strings.Builder

	if len(e.Contexts) > 0 {
		// outermost context first reads naturally: "invalid call: expected ')'"
		for i := len(e.Contexts) - 1; i >= 0; i-- {
			if i != len(e.Contexts)-1 {
				sb.WriteString(": ")
			}
			sb.WriteString(e.Contexts[i].String())
		}
		sb.WriteString(": ")
	}

	fmt.Fprintf(&sb, "%s at offset %d", e.Kind.Description(), e.Offset)

	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}

	return sb.String()
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

func (e *ContextError) Location() int {
	return e.Offset
}

func (e *ContextError) ErrorKind() Kind {
	return e.Kind
}

func (e *ContextError) Append(offset int, kind Kind) ParserError {
	c := *e
	c.Frames = append(slices.Clip(e.Frames), Frame{Offset: offset, Kind: kind})

	return &c
}

func (e *ContextError) Or(other ParserError) ParserError {
	return other
}

// AddContext attaches ctx at offset. A ContextError gains the context
// directly; other payloads are wrapped so they stay reachable via errors.As.
func AddContext(err ParserError, offset int, ctx Context) ParserError {
	ctx.Offset = offset

	switch e := err.(type) {
	case *ContextError:
		c := *e
		c.Contexts = append(slices.Clip(e.Contexts), ctx)

		return &c
	case *InputError:
		return &ContextError{Offset: e.Offset, Kind: e.Kind, Contexts: []Context{ctx}}
	default:
		return &ContextError{Offset: err.Location(), Kind: err.ErrorKind(), Contexts: []Context{ctx}, Cause: err}
	}
}
