package arith

import (
	"github.com/shibukawa/parsekit/ascii"
	"github.com/shibukawa/parsekit/combinator"
	"github.com/shibukawa/parsekit/parseerr"
	"github.com/shibukawa/parsekit/stream"
	"github.com/shibukawa/parsekit/token"
)

type tokenParser[O any] = combinator.Parser[stream.TokenStream[Token], O]

func kind(k TokenKind) tokenParser[Token] {
	return token.OneOf[Token, []Token](func(t Token) bool { return t.Kind == k })
}

func oper(ops ...Oper) tokenParser[Oper] {
	match := token.OneOf[Token, []Token](func(t Token) bool {
		if t.Kind != TokenOper {
			return false
		}

		for _, op := range ops {
			if t.Oper == op {
				return true
			}
		}

		return false
	})

	return combinator.Map(match, func(t Token) Oper { return t.Oper })
}

// ExprParser returns the expression grammar over tokens:
//
//	expr   = term (("+" | "-") term)*
//	term   = factor (("*" | "/") factor)*
//	factor = value | "(" expr ")"
//
// Both operator levels are left associative. Once "(" is seen the parser is
// committed to a parenthesized expression.
func ExprParser() tokenParser[*Expr] {
	var expr tokenParser[*Expr]

	value := combinator.Map(kind(TokenValue), func(t Token) *Expr { return NewValue(t.Value) })

	closing := combinator.Context(parseerr.Expected("')'"), kind(TokenCloseParen))
	inner := combinator.Lazy(func() tokenParser[*Expr] { return expr })

	body := combinator.Context(parseerr.Label("parenthesized expression"),
		combinator.CutErr(combinator.Terminated(inner, closing)))
	parens := combinator.Map(combinator.Preceded(kind(TokenOpenParen), body), NewParen)

	factor := combinator.Alt(value, parens)
	term := combinator.SeparatedFoldl1(factor, oper(Mul, Div), NewBinary)
	expr = combinator.Trace("expr", combinator.SeparatedFoldl1(term, oper(Add, Sub), NewBinary))

	return expr
}

// ParseTokens parses a complete token sequence. Error offsets are token
// indexes.
func ParseTokens(tokens []Token) (*Expr, error) {
	return combinator.Parse[stream.TokenStream[Token]](ExprParser(), stream.NewTokensFunc(tokens, Same))
}

// Parse lexes and parses src. Error offsets are byte offsets into src for both
// lexing and parsing failures.
func Parse(src string) (*Expr, error) {
	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}

	toSource := SourceOffsets(tokens, len(src))

	p := combinator.MapErr(
		combinator.Terminated(ExprParser(), combinator.Eof[stream.TokenStream[Token]]()),
		func(e parseerr.ParserError) parseerr.ParserError { return remap(e, toSource) },
	)

	return combinator.Run[stream.TokenStream[Token]](p, stream.NewTokensFunc(tokens, Same))
}

// SourceOffsets maps a token index to the byte offset where that token starts.
// The index just past the last token maps to srcLen.
func SourceOffsets(tokens []Token, srcLen int) func(int) int {
	return func(i int) int {
		if i >= 0 && i < len(tokens) {
			return tokens[i].Start
		}

		return srcLen
	}
}

func remap(e parseerr.ParserError, f func(int) int) parseerr.ParserError {
	switch e := e.(type) {
	case *parseerr.InputError:
		return parseerr.NewInputError(f(e.Offset), e.Kind)
	case *parseerr.ContextError:
		c := *e
		c.Offset = f(e.Offset)

		c.Frames = make([]parseerr.Frame, len(e.Frames))
		for i, fr := range e.Frames {
			c.Frames[i] = parseerr.Frame{Offset: f(fr.Offset), Kind: fr.Kind}
		}

		c.Contexts = make([]parseerr.Context, len(e.Contexts))
		for i, ctx := range e.Contexts {
			ctx.Offset = f(ctx.Offset)
			c.Contexts[i] = ctx
		}

		return &c
	default:
		return e
	}
}

// Statement parses one expression terminated by ';', a newline or the end of
// input. Whitespace before the expression and after the terminator is
// skipped. It works on text so it can drive a streaming scanner over a file
// of statements.
func Statement() textParser[*Expr] {
	body := token.TakeTill[rune, string](stream.AtLeast(1), token.Set(';', '\n'))
	end := combinator.Alt(
		combinator.Void(token.Literal[rune, string](";")),
		combinator.Void(token.Literal[rune, string]("\n")),
		combinator.Eof[stream.TextStream](),
	)

	return combinator.Delimited(
		ascii.Multispace0[rune, string](),
		combinator.TryMap(body, Parse),
		combinator.Pair(end, ascii.Multispace0[rune, string]()),
	)
}
