package parseerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/parsekit/stream"
)

type customError struct {
	offset int
	msg    string
}

func (e *customError) Error() string                            { return e.msg }
func (e *customError) Location() int                            { return e.offset }
func (e *customError) ErrorKind() Kind                          { return KindFail }
func (e *customError) Append(offset int, kind Kind) ParserError { return e }
func (e *customError) Or(other ParserError) ParserError         { return other }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Mode
	}{
		{name: "backtrack", err: Backtrack(NewInputError(0, KindLiteral)), want: ModeBacktrack},
		{name: "cut", err: Cut(NewInputError(0, KindLiteral)), want: ModeCut},
		{name: "incomplete", err: Incomplete(stream.Size(2)), want: ModeIncomplete},
		{name: "wrapped cut", err: fmt.Errorf("outer: %w", Cut(NewInputError(3, KindToken))), want: ModeCut},
		{name: "plain error", err: errors.New("boom"), want: ModeBacktrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Classify(nil)
	assert.False(t, ok)
}

func TestModeConversions(t *testing.T) {
	bt := Backtrack(NewInputError(4, KindLiteral))

	cut := bt.IntoCut()
	assert.Equal(t, ModeCut, cut.Mode)
	assert.Equal(t, 4, cut.Location())
	assert.Equal(t, ModeBacktrack, cut.IntoBacktrack().Mode)

	inc := Incomplete(stream.Size(1))
	assert.Equal(t, inc, inc.IntoCut())
	assert.Equal(t, -1, inc.Location())

	n, ok := NeededOf(inc)
	assert.True(t, ok)
	assert.Equal(t, stream.Size(1), n)

	_, ok = NeededOf(bt)
	assert.False(t, ok)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "backtrack: literal mismatch at offset 5", Backtrack(NewInputError(5, KindLiteral)).Error())
	assert.Equal(t, "incomplete input: needed Size(3)", Incomplete(stream.Size(3)).Error())
	assert.Equal(t, "incomplete input: needed Unknown", Incomplete(stream.Unknown).Error())
}

func TestContextChain(t *testing.T) {
	var inner ParserError = NewInputError(7, KindToken)

	withDigit := AddContext(inner, 7, Expected("digit"))
	outer := AddContext(withDigit, 3, Label("parenthesized expression"))
	outer = outer.Append(3, KindRepeat)

	ce, ok := outer.(*ContextError)
	assert.True(t, ok)
	assert.Equal(t, 7, ce.Location())
	assert.Equal(t, KindToken, ce.ErrorKind())
	assert.Equal(t, []Context{
		{Kind: ContextExpected, Value: "digit", Offset: 7},
		{Kind: ContextLabel, Value: "parenthesized expression", Offset: 3},
	}, ce.Contexts)
	assert.Equal(t, []Frame{{Offset: 3, Kind: KindRepeat}}, ce.Frames)
	assert.Equal(t, "invalid parenthesized expression: expected digit: unexpected token at offset 7", ce.Error())

	// the intermediate value is not modified by later annotations
	assert.Equal(t, 1, len(withDigit.(*ContextError).Contexts))
}

func TestCustomPayloadStaysReachable(t *testing.T) {
	custom := &customError{offset: 2, msg: "my error"}

	err := Backtrack(AddContext(custom, 0, Label("thing")))

	var got *customError
	assert.True(t, errors.As(err, &got))
	assert.Equal(t, custom, got)

	pe, ok := ParserErrorOf(err)
	assert.True(t, ok)
	assert.Equal(t, 2, pe.Location())
}

func TestFromPlainError(t *testing.T) {
	cause := errors.New("bad value")
	em := From(cause, 9)
	assert.Equal(t, ModeBacktrack, em.Mode)
	assert.Equal(t, 9, em.Location())
	assert.True(t, errors.Is(em, cause))

	same := Cut(NewInputError(1, KindFail))
	assert.Equal(t, same, From(same, 0))
	assert.Zero(t, From(nil, 0))
}

func TestZeroProgress(t *testing.T) {
	err := Assert(4, ErrZeroProgress)
	assert.True(t, IsZeroProgress(err))
	assert.True(t, IsCut(err))
	assert.Equal(t, KindAssert, err.Err.ErrorKind())
	assert.False(t, IsZeroProgress(Backtrack(FromExternal(4, KindAssert, ErrZeroProgress))))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "literal", KindLiteral.String())
	assert.Equal(t, "unknown", Kind(99).String())
	assert.Equal(t, "parse error", Kind(99).Description())
}
