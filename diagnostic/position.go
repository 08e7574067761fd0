package diagnostic

import (
	"sort"
	"unicode/utf8"
)

// Position is a 1-based line and column. Column counts runes.
type Position struct {
	Line   int
	Column int
}

// LineIndex maps byte offsets of a source text to positions.
type LineIndex struct {
	src    string
	starts []int
}

// NewLineIndex indexes the line starts of src.
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}

	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return &LineIndex{src: src, starts: starts}
}

// Lines returns the number of lines.
func (li *LineIndex) Lines() int {
	return len(li.starts)
}

// Position returns the position of a byte offset. Offsets out of range are
// clamped to the source.
func (li *LineIndex) Position(offset int) Position {
	offset = min(max(offset, 0), len(li.src))

	line := sort.SearchInts(li.starts, offset+1) - 1
	start := li.starts[line]

	return Position{Line: line + 1, Column: utf8.RuneCountInString(li.src[start:offset]) + 1}
}

// Line returns the text of a 1-based line without its line ending.
func (li *LineIndex) Line(n int) string {
	if n < 1 || n > len(li.starts) {
		return ""
	}

	start := li.starts[n-1]

	end := len(li.src)
	if n < len(li.starts) {
		end = li.starts[n] - 1
	}

	line := li.src[start:end]
	if l := len(line); l > 0 && line[l-1] == '\r' {
		line = line[:l-1]
	}

	return line
}
