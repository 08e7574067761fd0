// Package ascii has recognizers for ASCII character classes and numbers.
//
// The parsers work on byte and text streams alike: T is the item type (byte or
// rune) and S the slice type ([]byte or string).
package ascii

import (
	"strconv"

	"github.com/shibukawa/parsekit/combinator"
	"github.com/shibukawa/parsekit/stream"
	"github.com/shibukawa/parsekit/token"
)

// Item is the item type of a stream the recognizers accept.
type Item interface {
	~byte | ~rune
}

// Slice is the slice type of a stream the recognizers accept.
type Slice interface {
	~[]byte | ~string
}

// P is the parser type produced by this package.
type P[T Item, S Slice, O any] = combinator.Parser[stream.Stream[T, S], O]

func IsDigit[T Item](c T) bool {
	return c >= '0' && c <= '9'
}

func IsHexDigit[T Item](c T) bool {
	return IsDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func IsAlpha[T Item](c T) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func IsAlphanumeric[T Item](c T) bool {
	return IsAlpha(c) || IsDigit(c)
}

func IsSpace[T Item](c T) bool {
	return c == ' ' || c == '\t'
}

func IsMultispace[T Item](c T) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// Digit0 recognizes zero or more ASCII digits.
func Digit0[T Item, S Slice]() P[T, S, S] {
	return token.TakeWhile[T, S](stream.Any, IsDigit[T])
}

// Digit1 recognizes one or more ASCII digits.
func Digit1[T Item, S Slice]() P[T, S, S] {
	return token.TakeWhile[T, S](stream.AtLeast(1), IsDigit[T])
}

// HexDigit1 recognizes one or more hexadecimal digits.
func HexDigit1[T Item, S Slice]() P[T, S, S] {
	return token.TakeWhile[T, S](stream.AtLeast(1), IsHexDigit[T])
}

func Alpha0[T Item, S Slice]() P[T, S, S] {
	return token.TakeWhile[T, S](stream.Any, IsAlpha[T])
}

func Alpha1[T Item, S Slice]() P[T, S, S] {
	return token.TakeWhile[T, S](stream.AtLeast(1), IsAlpha[T])
}

func Alphanumeric1[T Item, S Slice]() P[T, S, S] {
	return token.TakeWhile[T, S](stream.AtLeast(1), IsAlphanumeric[T])
}

// Space0 recognizes zero or more spaces and tabs.
func Space0[T Item, S Slice]() P[T, S, S] {
	return token.TakeWhile[T, S](stream.Any, IsSpace[T])
}

func Space1[T Item, S Slice]() P[T, S, S] {
	return token.TakeWhile[T, S](stream.AtLeast(1), IsSpace[T])
}

// Multispace0 recognizes zero or more spaces, tabs, carriage returns and line feeds.
func Multispace0[T Item, S Slice]() P[T, S, S] {
	return token.TakeWhile[T, S](stream.Any, IsMultispace[T])
}

func Multispace1[T Item, S Slice]() P[T, S, S] {
	return token.TakeWhile[T, S](stream.AtLeast(1), IsMultispace[T])
}

// LineEnding recognizes "\n" or "\r\n".
func LineEnding[T Item, S Slice]() P[T, S, S] {
	return combinator.Alt(
		token.Literal[T, S](S("\n")),
		token.Literal[T, S](S("\r\n")),
	)
}

// Dec parses an unsigned decimal integer. Values that overflow uint64 are
// rejected with a Backtrack wrapping the strconv error.
func Dec[T Item, S Slice]() P[T, S, uint64] {
	return combinator.TryMap(Digit1[T, S](), func(s S) (uint64, error) {
		return strconv.ParseUint(string(s), 10, 64)
	})
}

// DecInt parses a decimal integer with an optional sign.
func DecInt[T Item, S Slice]() P[T, S, int64] {
	return combinator.TryMap(combinator.Recognize(combinator.Pair(sign[T, S](), Digit1[T, S]())), func(s S) (int64, error) {
		return strconv.ParseInt(string(s), 10, 64)
	})
}

// Float parses a decimal floating point literal: an optional sign, a mantissa
// with an optional fraction, and an optional exponent. "inf", "infinity" and
// "nan" are accepted in any case.
func Float[T Item, S Slice]() P[T, S, float64] {
	fraction := combinator.Pair(token.Literal[T, S](S(".")), Digit0[T, S]())
	exponent := combinator.Triple(
		token.OneOf[T, S](func(c T) bool { return c == 'e' || c == 'E' }),
		sign[T, S](),
		Digit1[T, S](),
	)

	mantissa := combinator.Alt(
		combinator.Void(combinator.Pair(Digit1[T, S](), combinator.Opt(fraction))),
		combinator.Void(combinator.Pair(token.Literal[T, S](S(".")), Digit1[T, S]())),
	)

	special := combinator.Alt(
		token.Caseless[T, S](S("infinity")),
		token.Caseless[T, S](S("inf")),
		token.Caseless[T, S](S("nan")),
	)

	number := combinator.Alt(
		combinator.Recognize(combinator.Triple(sign[T, S](), mantissa, combinator.Opt(exponent))),
		combinator.Recognize(combinator.Pair(sign[T, S](), special)),
	)

	return combinator.TryMap(number, func(s S) (float64, error) {
		return strconv.ParseFloat(string(s), 64)
	})
}

func sign[T Item, S Slice]() P[T, S, combinator.Option[T]] {
	return combinator.Opt(token.OneOf[T, S](func(c T) bool { return c == '+' || c == '-' }))
}
