// Package stream provides the cursor abstraction parsers run against.
//
// A cursor is a non-owning view over a caller-owned buffer plus a current offset.
// Parsers advance it on success and restore it from a Checkpoint when an attempt
// fails. All offsets are absolute storage offsets from the start of the buffer:
// bytes for Bytes and Text, elements for Tokens.
package stream

import "iter"

// Checkpoint is an immutable snapshot of a cursor position.
type Checkpoint struct {
	offset int
}

// NewCheckpoint returns a checkpoint for an absolute offset. It is meant for
// implementers of Input outside this package.
func NewCheckpoint(offset int) Checkpoint {
	return Checkpoint{offset: offset}
}

// Offset returns the absolute storage offset the checkpoint refers to.
func (c Checkpoint) Offset() int {
	return c.offset
}

// Distance returns the number of storage units between c and a later checkpoint.
func (c Checkpoint) Distance(later Checkpoint) int {
	return later.offset - c.offset
}

// Input is the item-agnostic part of a cursor. Structural combinators only
// need this capability set.
type Input interface {
	// Offset returns the absolute position from the start of the buffer.
	Offset() int
	// Remaining returns the number of storage units left.
	Remaining() int
	IsEmpty() bool
	Checkpoint() Checkpoint
	Reset(cp Checkpoint)
	// IsPartial reports whether more input may still arrive.
	IsPartial() bool
}

// Stream is a cursor over items of type T whose slices have type S.
type Stream[T, S any] interface {
	Input

	// PeekItem returns the next item and its width in storage units.
	PeekItem() (T, int, bool)
	NextItem() (T, bool)
	// Items iterates the remaining items with offsets relative to the cursor.
	Items() iter.Seq2[int, T]
	// OffsetAt returns the storage offset just past the first n items. When fewer
	// than n items remain it returns false and how much more input is needed.
	OffsetAt(n int) (int, Needed, bool)
	// PeekSlice returns the first n storage units without consuming them.
	PeekSlice(n int) (S, Needed, bool)
	// Advance consumes n storage units. It is clamped to the remaining length.
	Advance(n int)
	// NextSlice consumes and returns n storage units.
	NextSlice(n int) S
	// Finish consumes and returns everything that is left.
	Finish() S
	Compare(lit S) Comparison
	// CompareFold is Compare ignoring case.
	CompareFold(lit S) Comparison
	// Find returns the relative offset of needle without consuming.
	Find(needle S) (int, bool)
	// SliceLen returns the length of s in storage units.
	SliceLen(s S) int
}

// Common stream instantiations.
type (
	ByteStream         = Stream[byte, []byte]
	TextStream         = Stream[rune, string]
	TokenStream[T any] = Stream[T, []T]
)

// CompareStatus is the outcome of comparing a literal against the cursor.
type CompareStatus int

const (
	// Match means the whole literal matched.
	Match CompareStatus = iota
	// Mismatch means a difference was found within the available input.
	Mismatch
	// Short means the input ran out while the literal still matched.
	Short
)

// Comparison is the result of Stream.Compare. Len is the matched length in
// storage units of the input when Status is Match.
type Comparison struct {
	Status CompareStatus
	Len    int
}

// cursor is the offset bookkeeping shared by the concrete streams.
type cursor struct {
	pos int
	end int
}

func (c *cursor) Offset() int {
	return c.pos
}

func (c *cursor) Remaining() int {
	return c.end - c.pos
}

func (c *cursor) IsEmpty() bool {
	return c.pos >= c.end
}

func (c *cursor) Checkpoint() Checkpoint {
	return Checkpoint{offset: c.pos}
}

func (c *cursor) Reset(cp Checkpoint) {
	switch {
	case cp.offset < 0:
		c.pos = 0
	case cp.offset > c.end:
		c.pos = c.end
	default:
		c.pos = cp.offset
	}
}

func (c *cursor) IsPartial() bool {
	return false
}

func (c *cursor) clamp(n int) int {
	if n < 0 {
		return 0
	}

	if rest := c.end - c.pos; n > rest {
		return rest
	}

	return n
}
