package token

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/parsekit/combinator"
	"github.com/shibukawa/parsekit/parseerr"
	"github.com/shibukawa/parsekit/stream"
)

const accented = "βèƒôřèÂßÇáƒƭèř"

func complete(s string) *stream.Text {
	return stream.NewText(s)
}

func partial(s string) *stream.Partial[rune, string] {
	return stream.NewPartialText(s)
}

func isAlpha(c rune) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func assertBacktrack(t *testing.T, err error, offset int, kind parseerr.Kind) {
	t.Helper()

	assert.True(t, parseerr.IsBacktrack(err), "got %v", err)

	pe, ok := parseerr.ParserErrorOf(err)
	assert.True(t, ok)
	assert.Equal(t, offset, pe.Location())
	assert.Equal(t, kind, pe.ErrorKind())
}

func assertIncomplete(t *testing.T, err error, needed stream.Needed) {
	t.Helper()

	got, ok := parseerr.NeededOf(err)
	assert.True(t, ok, "got %v", err)
	assert.Equal(t, needed, got)
}

func TestLiteral(t *testing.T) {
	hello := Literal[rune, string]("Hello")

	t.Run("match", func(t *testing.T) {
		in := complete("Hello World!")
		got, err := combinator.Run[stream.TextStream](hello, in)
		assert.NoError(t, err)
		assert.Equal(t, "Hello", got)
		assert.Equal(t, " World!", in.Remainder())
	})

	t.Run("short input in complete mode", func(t *testing.T) {
		in := complete("Hello")
		_, err := combinator.Run[stream.TextStream](Literal[rune, string]("Hello World!"), in)
		assertBacktrack(t, err, 0, parseerr.KindLiteral)
		assert.Equal(t, "Hello", in.Remainder())
	})

	t.Run("short input in partial mode", func(t *testing.T) {
		in := partial("Hel")
		_, err := combinator.RunPartial[stream.TextStream](hello, in)
		assertIncomplete(t, err, stream.Size(2))
		assert.Equal(t, 0, in.Offset())
	})

	t.Run("mismatch", func(t *testing.T) {
		_, err := combinator.Run[stream.TextStream](Literal[rune, string]("Random"), complete("Hello World!"))
		assertBacktrack(t, err, 0, parseerr.KindLiteral)
	})

	t.Run("mismatch is decided in partial mode", func(t *testing.T) {
		_, err := combinator.RunPartial[stream.TextStream](hello, partial("Help"))
		assertBacktrack(t, err, 0, parseerr.KindLiteral)
	})

	t.Run("multi byte rune is not split", func(t *testing.T) {
		_, err := combinator.Run[stream.TextStream](Literal[rune, string]("."), complete("點"))
		assertBacktrack(t, err, 0, parseerr.KindLiteral)
	})
}

func TestCaseless(t *testing.T) {
	p := Caseless[rune, string]("ABcd")

	for _, input := range []string{"aBCdefgh", "abcdefgh", "ABCDefgh"} {
		t.Run(input, func(t *testing.T) {
			in := complete(input)
			got, err := combinator.Run[stream.TextStream](p, in)
			assert.NoError(t, err)
			assert.Equal(t, input[:4], got)
			assert.Equal(t, "efgh", in.Remainder())
		})
	}

	t.Run("bytes", func(t *testing.T) {
		in := stream.NewBytes([]byte("SELECT *"))
		got, err := combinator.Run[stream.ByteStream](Caseless[byte, []byte]([]byte("select")), in)
		assert.NoError(t, err)
		assert.Equal(t, []byte("SELECT"), got)
	})
}

func TestAnyAndSets(t *testing.T) {
	t.Run("any", func(t *testing.T) {
		in := complete("éa")
		r, err := combinator.Run[stream.TextStream](Any[rune, string](), in)
		assert.NoError(t, err)
		assert.Equal(t, 'é', r)
		assert.Equal(t, 2, in.Offset())
	})

	t.Run("any on empty input", func(t *testing.T) {
		_, err := combinator.Run[stream.TextStream](Any[rune, string](), complete(""))
		assertBacktrack(t, err, 0, parseerr.KindToken)

		_, err = combinator.RunPartial[stream.TextStream](Any[rune, string](), partial(""))
		assertIncomplete(t, err, stream.Size(1))
	})

	t.Run("one of", func(t *testing.T) {
		p := OneOf[rune, string](Set('+', '-'))

		r, err := combinator.Run[stream.TextStream](p, complete("-1"))
		assert.NoError(t, err)
		assert.Equal(t, '-', r)

		_, err = combinator.Run[stream.TextStream](p, complete("*1"))
		assertBacktrack(t, err, 0, parseerr.KindToken)
	})

	t.Run("none of", func(t *testing.T) {
		p := NoneOf[byte, []byte](InRange[byte]('0', '9'))

		b, err := combinator.Run[stream.ByteStream](p, stream.NewBytes([]byte("x1")))
		assert.NoError(t, err)
		assert.Equal(t, byte('x'), b)

		_, err = combinator.Run[stream.ByteStream](p, stream.NewBytes([]byte("1x")))
		assertBacktrack(t, err, 0, parseerr.KindToken)
	})
}

func TestTake(t *testing.T) {
	t.Run("counts runes", func(t *testing.T) {
		in := complete(accented)
		got, err := combinator.Run[stream.TextStream](Take[rune, string](9), in)
		assert.NoError(t, err)
		assert.Equal(t, "βèƒôřèÂßÇ", got)
		assert.Equal(t, "áƒƭèř", in.Remainder())
	})

	t.Run("text shortfall is unknown", func(t *testing.T) {
		_, err := combinator.RunPartial[stream.TextStream](Take[rune, string](13), partial("βèƒôřèÂßÇá"))
		assertIncomplete(t, err, stream.Unknown)
	})

	t.Run("byte shortfall is sized", func(t *testing.T) {
		in := stream.NewPartialBytes([]byte("abc"))
		_, err := combinator.RunPartial[stream.ByteStream](Take[byte, []byte](5), in)
		assertIncomplete(t, err, stream.Size(2))
	})

	t.Run("shortfall in complete mode", func(t *testing.T) {
		_, err := combinator.Run[stream.TextStream](Take[rune, string](13), complete("βèƒ"))
		assertBacktrack(t, err, 0, parseerr.KindSlice)
	})
}

func TestTakeWhile(t *testing.T) {
	tests := []struct {
		name       string
		r          stream.Range
		input      string
		want       string
		rest       string
		incomplete bool
		backtrack  bool
	}{
		{name: "0.. empty", r: stream.Any, input: "", incomplete: true},
		{name: "0.. all match", r: stream.Any, input: "abcd", incomplete: true},
		{name: "0.. stops", r: stream.Any, input: "abcd123", want: "abcd", rest: "123"},
		{name: "0.. nothing", r: stream.Any, input: "123", want: "", rest: "123"},
		{name: "1.. empty", r: stream.AtLeast(1), input: "", incomplete: true},
		{name: "1.. all match", r: stream.AtLeast(1), input: "abcd", incomplete: true},
		{name: "1.. stops", r: stream.AtLeast(1), input: "abcd123", want: "abcd", rest: "123"},
		{name: "1.. first item mismatches", r: stream.AtLeast(1), input: "123", backtrack: true},
		{name: "bounded stops at max", r: stream.Between(2, 3), input: "abcd", want: "abc", rest: "d"},
		{name: "bounded max reached at end", r: stream.Between(2, 4), input: "abcd", want: "abcd", rest: ""},
		{name: "bounded below min", r: stream.Between(3, 4), input: "ab1", backtrack: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := partial(tt.input)
			got, err := combinator.RunPartial[stream.TextStream](TakeWhile[rune, string](tt.r, isAlpha), in)

			switch {
			case tt.incomplete:
				assert.True(t, parseerr.IsIncomplete(err), "got %v", err)
				assert.Equal(t, 0, in.Offset())
			case tt.backtrack:
				assertBacktrack(t, err, 0, parseerr.KindSlice)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.rest, in.Inner().(*stream.Text).Remainder())
			}
		})
	}

	t.Run("needed counts missing minimum", func(t *testing.T) {
		_, err := combinator.RunPartial[stream.TextStream](TakeWhile[rune, string](stream.AtLeast(5), isAlpha), partial("ab"))
		assertIncomplete(t, err, stream.Size(3))
	})

	t.Run("complete mode", func(t *testing.T) {
		inSet := Set('β', 'è', 'ƒ', 'ô', 'ř', 'Â', 'ß', 'Ç')

		in := complete(accented)
		got, err := combinator.Run[stream.TextStream](TakeWhile[rune, string](stream.AtLeast(1), inSet), in)
		assert.NoError(t, err)
		assert.Equal(t, "βèƒôřèÂßÇ", got)
		assert.Equal(t, "áƒƭèř", in.Remainder())

		got, err = combinator.Run[stream.TextStream](TakeWhile[rune, string](stream.Any, Set('9')), complete(accented))
		assert.NoError(t, err)
		assert.Equal(t, "", got)

		_, err = combinator.Run[stream.TextStream](TakeWhile[rune, string](stream.AtLeast(1), Set('9')), complete(accented))
		assertBacktrack(t, err, 0, parseerr.KindSlice)

		got, err = combinator.Run[stream.TextStream](TakeWhile[rune, string](stream.Any, isAlpha), complete("abcd"))
		assert.NoError(t, err)
		assert.Equal(t, "abcd", got)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := combinator.Run[stream.TextStream](TakeWhile[rune, string](stream.Between(3, 1), isAlpha), complete("abc"))
		assert.True(t, parseerr.IsCut(err))
		assert.IsError(t, err, parseerr.ErrInvalidRange)
	})
}

func TestTakeTill(t *testing.T) {
	in := complete(accented)
	got, err := combinator.Run[stream.TextStream](TakeTill[rune, string](stream.Any, Set('á')), in)
	assert.NoError(t, err)
	assert.Equal(t, "βèƒôřèÂßÇ", got)
	assert.Equal(t, "áƒƭèř", in.Remainder())

	got, err = combinator.Run[stream.TextStream](TakeTill[rune, string](stream.AtLeast(1), Set('£', 'ú', 'ç', 'ƙ', '¥', 'á')), complete(accented))
	assert.NoError(t, err)
	assert.Equal(t, "βèƒôřèÂßÇ", got)

	_, err = combinator.Run[stream.TextStream](TakeTill[rune, string](stream.AtLeast(1), Set('β', 'ú')), complete(accented))
	assertBacktrack(t, err, 0, parseerr.KindSlice)
}

func TestTakeUntil(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		in := complete("βèƒôřèÂßÇ∂áƒƭèř")
		got, err := combinator.Run[stream.TextStream](TakeUntil[rune, string](stream.Any, "ÂßÇ∂"), in)
		assert.NoError(t, err)
		assert.Equal(t, "βèƒôřè", got)
		assert.Equal(t, "ÂßÇ∂áƒƭèř", in.Remainder())
	})

	t.Run("needle longer than input", func(t *testing.T) {
		_, err := combinator.RunPartial[stream.TextStream](TakeUntil[rune, string](stream.Any, "βèƒôřèÂßÇ"), partial("βèƒôřè"))
		assertIncomplete(t, err, stream.Unknown)
	})

	t.Run("not found in partial mode", func(t *testing.T) {
		_, err := combinator.RunPartial[stream.TextStream](TakeUntil[rune, string](stream.Any, "Ráñδô₥"), partial(accented))
		assertIncomplete(t, err, stream.Unknown)
	})

	t.Run("not found in complete mode", func(t *testing.T) {
		_, err := combinator.Run[stream.TextStream](TakeUntil[rune, string](stream.Any, "Ráñδô₥"), complete(accented))
		assertBacktrack(t, err, 0, parseerr.KindSlice)
	})

	t.Run("minimum skips an early needle", func(t *testing.T) {
		in := complete("a;b;c")
		got, err := combinator.Run[stream.TextStream](TakeUntil[rune, string](stream.AtLeast(2), ";"), in)
		assert.NoError(t, err)
		assert.Equal(t, "a;b", got)
	})

	t.Run("maximum exceeded", func(t *testing.T) {
		_, err := combinator.Run[stream.TextStream](TakeUntil[rune, string](stream.UpTo(2), ";"), complete("abc;"))
		assertBacktrack(t, err, 0, parseerr.KindSlice)
	})

	t.Run("tokens", func(t *testing.T) {
		in := stream.NewTokens([]int{1, 2, 3, 4, 5})
		got, err := combinator.Run[stream.TokenStream[int]](TakeUntil[int, []int](stream.Any, []int{3, 4}), in)
		assert.NoError(t, err)
		assert.Equal(t, []int{1, 2}, got)
		assert.Equal(t, 2, in.Offset())
	})
}

func TestRest(t *testing.T) {
	in := complete("abc")
	in.Advance(1)

	got, err := combinator.Run[stream.TextStream](Rest[rune, string](), in)
	assert.NoError(t, err)
	assert.Equal(t, "bc", got)
	assert.True(t, in.IsEmpty())
}

func TestRecognizeRepeatedAlternation(t *testing.T) {
	ab := combinator.Alt(Literal[rune, string]("a"), Literal[rune, string]("b"))
	p := combinator.Recognize(combinator.Repeat1(ab))

	in := complete("aabbab")
	got, err := combinator.Run[stream.TextStream](p, in)
	assert.NoError(t, err)
	assert.Equal(t, "aabbab", got)
	assert.True(t, in.IsEmpty())

	in = complete("ababcd")
	got, err = combinator.Run[stream.TextStream](p, in)
	assert.NoError(t, err)
	assert.Equal(t, "abab", got)
	assert.Equal(t, "cd", in.Remainder())
}
