// Package arith is a small arithmetic language: a lexer from text to tokens,
// a parser from tokens to an expression tree, and an exact evaluator.
package arith

import (
	"github.com/shopspring/decimal"

	"github.com/shibukawa/parsekit/ascii"
	"github.com/shibukawa/parsekit/combinator"
	"github.com/shibukawa/parsekit/stream"
	"github.com/shibukawa/parsekit/token"
)

// TokenKind classifies a lexed token.
type TokenKind int

const (
	TokenValue TokenKind = iota
	TokenOper
	TokenOpenParen
	TokenCloseParen
)

// Oper is a binary operator.
type Oper int

const (
	Add Oper = iota
	Sub
	Mul
	Div
)

var operNames = [...]string{Add: "Add", Sub: "Sub", Mul: "Mul", Div: "Div"}

var operSymbols = [...]string{Add: "+", Sub: "-", Mul: "*", Div: "/"}

func (o Oper) String() string {
	return operNames[o]
}

// Symbol returns the source spelling of the operator.
func (o Oper) Symbol() string {
	return operSymbols[o]
}

// Token is a lexed token. Start and End are byte offsets in the source.
type Token struct {
	Kind  TokenKind
	Value decimal.Decimal
	Oper  Oper
	Start int
	End   int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenValue:
		return "Value(" + t.Value.String() + ")"
	case TokenOper:
		return "Oper(" + t.Oper.String() + ")"
	case TokenOpenParen:
		return "OpenParen"
	default:
		return "CloseParen"
	}
}

// Same reports whether two tokens are equal ignoring their positions.
func Same(a, b Token) bool {
	switch {
	case a.Kind != b.Kind:
		return false
	case a.Kind == TokenValue:
		return a.Value.Equal(b.Value)
	case a.Kind == TokenOper:
		return a.Oper == b.Oper
	default:
		return true
	}
}

type textParser[O any] = combinator.Parser[stream.TextStream, O]

func number() textParser[decimal.Decimal] {
	digits := ascii.Digit1[rune, string]()
	fraction := combinator.Pair(token.Literal[rune, string]("."), digits)

	return combinator.TryMap(
		combinator.Recognize(combinator.Pair(digits, combinator.Opt(fraction))),
		decimal.NewFromString,
	)
}

func lexToken() textParser[Token] {
	opers := map[rune]Oper{'+': Add, '-': Sub, '*': Mul, '/': Div}

	tok := combinator.Alt(
		combinator.Map(number(), func(d decimal.Decimal) Token {
			return Token{Kind: TokenValue, Value: d}
		}),
		combinator.Map(token.OneOf[rune, string](token.Set('+', '-', '*', '/')), func(r rune) Token {
			return Token{Kind: TokenOper, Oper: opers[r]}
		}),
		combinator.Value(token.Literal[rune, string]("("), Token{Kind: TokenOpenParen}),
		combinator.Value(token.Literal[rune, string](")"), Token{Kind: TokenCloseParen}),
	)

	return combinator.Map(combinator.Spanned(tok), func(s combinator.Span[Token]) Token {
		s.Value.Start = s.Start
		s.Value.End = s.End

		return s.Value
	})
}

// Lexer splits text into tokens, skipping whitespace.
func Lexer() textParser[[]Token] {
	ws := ascii.Multispace0[rune, string]()

	return combinator.Preceded(ws, combinator.Repeat0(combinator.Terminated(lexToken(), ws)))
}

// Lex tokenizes src. Errors carry byte offsets into src.
func Lex(src string) ([]Token, error) {
	return combinator.Parse[stream.TextStream](combinator.Trace("lex", Lexer()), stream.NewText(src))
}
