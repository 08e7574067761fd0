package explang

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/shibukawa/parsekit/ascii"
	"github.com/shibukawa/parsekit/combinator"
	"github.com/shibukawa/parsekit/diagnostic"
	"github.com/shibukawa/parsekit/parseerr"
	"github.com/shibukawa/parsekit/stream"
	"github.com/shibukawa/parsekit/token"
)

// ErrInvalidExpression indicates that an expression string could not be parsed.
var ErrInvalidExpression = errors.New("explang: invalid expression")

// ParseSteps parses an explang expression into a flattened list of access steps.
// startLine/startColumn allow callers to provide the 1-based location of the
// first rune of expr within a larger document, so Position metadata remains accurate.
//
// The returned error wraps ErrInvalidExpression and the parseerr failure.
func ParseSteps(expr string, startLine, startColumn int) ([]Step, error) {
	loc := newLocator(expr, startLine, startColumn)

	spans, err := combinator.Parse[stream.TextStream](stepsParser(), stream.NewText(expr))
	if err != nil {
		offset := parseerr.From(err, 0).Location()
		return nil, fmt.Errorf("%w at position %d: %w", ErrInvalidExpression, loc.runeOffset(offset)+1, err)
	}

	steps := make([]Step, len(spans))
	for i, span := range spans {
		steps[i] = span.Value
		steps[i].Pos = loc.position(span.Start, span.End)
	}

	return steps, nil
}

type textParser[O any] = combinator.Parser[stream.TextStream, O]

type stepSpan = combinator.Span[Step]

var stepsParser = sync.OnceValue(newStepsParser)

func lit(s string) textParser[string] {
	return token.Literal[rune, string](s)
}

func newStepsParser() textParser[[]stepSpan] {
	ws := token.TakeWhile[rune, string](stream.Any, unicode.IsSpace)

	ident := combinator.Recognize(combinator.Pair(
		token.OneOf[rune, string](isIdentStart),
		token.TakeWhile[rune, string](stream.Any, isIdentPart),
	))

	index := combinator.TryMap(ascii.Digit1[rune, string](), strconv.Atoi)

	root := combinator.Map(combinator.Context(parseerr.Expected("identifier"), ident), func(name string) Step {
		return Step{Kind: StepIdentifier, Identifier: name}
	})

	// "." and "[" commit to a member or an index step
	member := combinator.Map(
		combinator.Preceded(lit("."), combinator.CutErr(combinator.Preceded(ws,
			combinator.Context(parseerr.Expected("identifier after '.'"), ident)))),
		func(name string) Step { return Step{Kind: StepMember, Property: name} },
	)

	subscript := combinator.Map(
		combinator.Preceded(lit("["), combinator.CutErr(combinator.Delimited(
			ws,
			combinator.Context(parseerr.Expected("integer index after '['"), index),
			combinator.Preceded(ws, combinator.Context(parseerr.Expected("']' to close index"), lit("]"))),
		))),
		func(i int) Step { return Step{Kind: StepIndex, Index: i} },
	)

	safe := combinator.Terminated(lit("?"), combinator.CutErr(combinator.Preceded(ws,
		combinator.Context(parseerr.Expected("'.' or '[' after '?'"),
			combinator.Peek(combinator.Alt(lit("."), lit("[")))))))

	access := combinator.Map(
		combinator.Pair(combinator.Opt(safe), combinator.Alt(member, subscript)),
		func(v combinator.Tuple2[combinator.Option[string], Step]) Step {
			v.V2.Safe = v.V1.Some
			return v.V2
		},
	)

	path := combinator.Map(
		combinator.Pair(combinator.Spanned(root), combinator.Repeat0(combinator.Preceded(ws, combinator.Spanned(access)))),
		func(v combinator.Tuple2[stepSpan, []stepSpan]) []stepSpan {
			return append([]stepSpan{v.V1}, v.V2...)
		},
	)

	return combinator.Delimited(ws, path, ws)
}

// locator converts byte offsets of the expression into rune based positions
// relative to the start of the enclosing document.
type locator struct {
	src        string
	lines      *diagnostic.LineIndex
	baseLine   int
	baseColumn int
}

func newLocator(expr string, startLine, startColumn int) locator {
	if startLine < 1 {
		startLine = 1
	}

	if startColumn < 1 {
		startColumn = 1
	}

	return locator{src: expr, lines: diagnostic.NewLineIndex(expr), baseLine: startLine, baseColumn: startColumn}
}

func (l locator) runeOffset(offset int) int {
	offset = max(0, min(offset, len(l.src)))
	return utf8.RuneCountInString(l.src[:offset])
}

func (l locator) position(start, end int) Position {
	at := l.lines.Position(start)

	pos := Position{
		Offset: l.runeOffset(start),
		Line:   l.baseLine + at.Line - 1,
		Column: at.Column,
		Length: l.runeOffset(end) - l.runeOffset(start),
	}

	if at.Line == 1 {
		pos.Column = l.baseColumn + at.Column - 1
	}

	return pos
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
