package stream

import (
	"bytes"
	"iter"
)

// Bytes is a cursor over a byte slice. Items are single bytes.
type Bytes struct {
	cursor
	buf []byte
}

var _ ByteStream = (*Bytes)(nil)

// NewBytes returns a complete-mode cursor over b. The slice is borrowed.
func NewBytes(b []byte) *Bytes {
	return &Bytes{cursor: cursor{end: len(b)}, buf: b}
}

// Remainder returns the unconsumed bytes without copying.
func (b *Bytes) Remainder() []byte {
	return b.buf[b.pos:b.end:b.end]
}

func (b *Bytes) PeekItem() (byte, int, bool) {
	if b.IsEmpty() {
		return 0, 0, false
	}

	return b.buf[b.pos], 1, true
}

func (b *Bytes) NextItem() (byte, bool) {
	if b.IsEmpty() {
		return 0, false
	}

	c := b.buf[b.pos]
	b.pos++

	return c, true
}

func (b *Bytes) Items() iter.Seq2[int, byte] {
	rest := b.Remainder()

	return func(yield func(int, byte) bool) {
		for i, c := range rest {
			if !yield(i, c) {
				return
			}
		}
	}
}

func (b *Bytes) OffsetAt(n int) (int, Needed, bool) {
	if rest := b.Remaining(); n > rest {
		return 0, Size(n - rest), false
	}

	return n, Unknown, true
}

func (b *Bytes) PeekSlice(n int) ([]byte, Needed, bool) {
	if rest := b.Remaining(); n > rest {
		return nil, Size(n - rest), false
	}

	return b.buf[b.pos : b.pos+n : b.pos+n], Unknown, true
}

func (b *Bytes) Advance(n int) {
	b.pos += b.clamp(n)
}

func (b *Bytes) NextSlice(n int) []byte {
	n = b.clamp(n)
	s := b.buf[b.pos : b.pos+n : b.pos+n]
	b.pos += n

	return s
}

func (b *Bytes) Finish() []byte {
	return b.NextSlice(b.Remaining())
}

func (b *Bytes) Compare(lit []byte) Comparison {
	return compareBytes(b.Remainder(), lit, func(x, y byte) bool { return x == y })
}

// CompareFold compares ignoring ASCII case.
func (b *Bytes) CompareFold(lit []byte) Comparison {
	return compareBytes(b.Remainder(), lit, func(x, y byte) bool { return lowerASCII(x) == lowerASCII(y) })
}

func (b *Bytes) Find(needle []byte) (int, bool) {
	i := bytes.Index(b.Remainder(), needle)

	return i, i >= 0
}

func (b *Bytes) SliceLen(s []byte) int {
	return len(s)
}

func compareBytes(rest, lit []byte, eq func(x, y byte) bool) Comparison {
	n := min(len(rest), len(lit))
	for i := range n {
		if !eq(rest[i], lit[i]) {
			return Comparison{Status: Mismatch}
		}
	}

	if len(lit) > len(rest) {
		return Comparison{Status: Short}
	}

	return Comparison{Status: Match, Len: len(lit)}
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}

	return c
}
