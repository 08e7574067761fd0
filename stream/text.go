package stream

import (
	"iter"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Text is a cursor over a UTF-8 string. Items are runes; offsets are bytes.
type Text struct {
	cursor
	src string
}

var _ TextStream = (*Text)(nil)

// NewText returns a complete-mode cursor over s.
func NewText(s string) *Text {
	return &Text{cursor: cursor{end: len(s)}, src: s}
}

// Remainder returns the unconsumed text.
func (t *Text) Remainder() string {
	return t.src[t.pos:t.end]
}

func (t *Text) PeekItem() (rune, int, bool) {
	if t.IsEmpty() {
		return 0, 0, false
	}

	r, w := utf8.DecodeRuneInString(t.src[t.pos:t.end])

	return r, w, true
}

func (t *Text) NextItem() (rune, bool) {
	r, w, ok := t.PeekItem()
	if ok {
		t.pos += w
	}

	return r, ok
}

func (t *Text) Items() iter.Seq2[int, rune] {
	rest := t.Remainder()

	return func(yield func(int, rune) bool) {
		for i, r := range rest {
			if !yield(i, r) {
				return
			}
		}
	}
}

// OffsetAt counts runes. The byte width of missing runes is not known, so a
// shortfall is reported as Unknown.
func (t *Text) OffsetAt(n int) (int, Needed, bool) {
	if n <= 0 {
		return 0, Unknown, true
	}

	count := 0
	for i := range t.Remainder() {
		if count == n {
			return i, Unknown, true
		}
		count++
	}

	if count == n {
		return t.Remaining(), Unknown, true
	}

	return 0, Unknown, false
}

func (t *Text) PeekSlice(n int) (string, Needed, bool) {
	if rest := t.Remaining(); n > rest {
		return "", Size(n - rest), false
	}

	return t.src[t.pos : t.pos+n], Unknown, true
}

func (t *Text) Advance(n int) {
	t.pos += t.clamp(n)
}

func (t *Text) NextSlice(n int) string {
	n = t.clamp(n)
	s := t.src[t.pos : t.pos+n]
	t.pos += n

	return s
}

func (t *Text) Finish() string {
	return t.NextSlice(t.Remaining())
}

func (t *Text) Compare(lit string) Comparison {
	rest := t.Remainder()

	n := min(len(rest), len(lit))
	if rest[:n] != lit[:n] {
		return Comparison{Status: Mismatch}
	}

	if len(lit) > len(rest) {
		return Comparison{Status: Short}
	}

	return Comparison{Status: Match, Len: len(lit)}
}

// CompareFold compares using Unicode full case folding. The matched length is
// measured in the input, which may differ from len(lit).
func (t *Text) CompareFold(lit string) Comparison {
	fold := cases.Fold()
	want := fold.String(lit)
	rest := t.Remainder()

	for i, r := range rest {
		if want == "" {
			return Comparison{Status: Match, Len: i}
		}

		got := fold.String(string(r))
		if !strings.HasPrefix(want, got) {
			return Comparison{Status: Mismatch}
		}
		want = want[len(got):]
	}

	if want == "" {
		return Comparison{Status: Match, Len: len(rest)}
	}

	return Comparison{Status: Short}
}

func (t *Text) Find(needle string) (int, bool) {
	i := strings.Index(t.Remainder(), needle)

	return i, i >= 0
}

func (t *Text) SliceLen(s string) int {
	return len(s)
}
