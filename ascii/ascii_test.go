package ascii

import (
	"math"
	"strconv"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/parsekit/combinator"
	"github.com/shibukawa/parsekit/parseerr"
	"github.com/shibukawa/parsekit/stream"
)

func runText[O any](t *testing.T, p P[rune, string, O], src string) (O, string, error) {
	t.Helper()

	in := stream.NewText(src)
	v, err := combinator.Run[stream.TextStream](p, in)

	return v, in.Remainder(), err
}

func TestCharacterClasses(t *testing.T) {
	tests := []struct {
		name string
		p    P[rune, string, string]
		in   string
		want string
		rest string
		fail bool
	}{
		{name: "digit0 empty", p: Digit0[rune, string](), in: "abc", want: "", rest: "abc"},
		{name: "digit1", p: Digit1[rune, string](), in: "123abc", want: "123", rest: "abc"},
		{name: "digit1 fails", p: Digit1[rune, string](), in: "abc", fail: true},
		{name: "hex", p: HexDigit1[rune, string](), in: "0aFg", want: "0aF", rest: "g"},
		{name: "alpha0", p: Alpha0[rune, string](), in: "1", want: "", rest: "1"},
		{name: "alpha1", p: Alpha1[rune, string](), in: "abcé", want: "abc", rest: "é"},
		{name: "alphanumeric", p: Alphanumeric1[rune, string](), in: "a1b2-", want: "a1b2", rest: "-"},
		{name: "space0", p: Space0[rune, string](), in: " \t\nx", want: " \t", rest: "\nx"},
		{name: "space1 fails", p: Space1[rune, string](), in: "x", fail: true},
		{name: "multispace0", p: Multispace0[rune, string](), in: " \r\n\tx", want: " \r\n\t", rest: "x"},
		{name: "multispace1", p: Multispace1[rune, string](), in: "\n\ny", want: "\n\n", rest: "y"},
		{name: "line ending lf", p: LineEnding[rune, string](), in: "\nx", want: "\n", rest: "x"},
		{name: "line ending crlf", p: LineEnding[rune, string](), in: "\r\nx", want: "\r\n", rest: "x"},
		{name: "line ending fails", p: LineEnding[rune, string](), in: "\rx", fail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest, err := runText(t, tt.p, tt.in)
			if tt.fail {
				assert.True(t, parseerr.IsBacktrack(err))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestBytes(t *testing.T) {
	in := stream.NewBytes([]byte("42 rest"))

	got, err := combinator.Run[stream.ByteStream](Digit1[byte, []byte](), in)
	assert.NoError(t, err)
	assert.Equal(t, []byte("42"), got)

	_, err = combinator.Run[stream.ByteStream](Space1[byte, []byte](), in)
	assert.NoError(t, err)
	assert.Equal(t, 3, in.Offset())
}

func TestPartialDigitsNeedMore(t *testing.T) {
	in := stream.NewPartialBytes([]byte("123"))

	_, err := combinator.RunPartial[stream.ByteStream](Dec[byte, []byte](), in)
	assert.True(t, parseerr.IsIncomplete(err))

	in.Complete()
	n, err := combinator.RunPartial[stream.ByteStream](Dec[byte, []byte](), in)
	assert.NoError(t, err)
	assert.Equal(t, uint64(123), n)
}

func TestDec(t *testing.T) {
	n, rest, err := runText(t, Dec[rune, string](), "18446744073709551615!")
	assert.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), n)
	assert.Equal(t, "!", rest)

	_, rest, err = runText(t, Dec[rune, string](), "18446744073709551616")
	assert.True(t, parseerr.IsBacktrack(err))
	assert.IsError(t, err, strconv.ErrRange)
	assert.Equal(t, "18446744073709551616", rest)

	_, _, err = runText(t, Dec[rune, string](), "-1")
	assert.True(t, parseerr.IsBacktrack(err))
}

func TestDecInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{in: "0", want: 0},
		{in: "-17", want: -17},
		{in: "+17", want: 17},
		{in: "-9223372036854775808", want: math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, _, err := runText(t, DecInt[rune, string](), tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, _, err := runText(t, DecInt[rune, string](), "-")
	assert.True(t, parseerr.IsBacktrack(err))
}

func TestFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		rest string
	}{
		{in: "1", want: 1},
		{in: "1.5", want: 1.5},
		{in: "-1.5e3", want: -1500},
		{in: "1.", want: 1},
		{in: ".25", want: 0.25},
		{in: "2E-2", want: 0.02},
		{in: "3e", want: 3, rest: "e"},
		{in: "12.5abc", want: 12.5, rest: "abc"},
		{in: "-INF", want: math.Inf(-1)},
		{in: "Infinity", want: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, rest, err := runText(t, Float[rune, string](), tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rest, rest)
		})
	}

	t.Run("nan", func(t *testing.T) {
		got, _, err := runText(t, Float[rune, string](), "NaN")
		assert.NoError(t, err)
		assert.True(t, math.IsNaN(got))
	})

	t.Run("not a number", func(t *testing.T) {
		_, rest, err := runText(t, Float[rune, string](), "abc")
		assert.True(t, parseerr.IsBacktrack(err))
		assert.Equal(t, "abc", rest)
	})
}
