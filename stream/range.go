package stream

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRange is returned by ParseRange for malformed bound syntax.
var ErrInvalidRange = errors.New("invalid range")

// Unbounded is the Max of a range without an upper bound.
const Unbounded = -1

// Range is an inclusive repetition bound. Max < 0 means unbounded.
type Range struct {
	Min int
	Max int
}

// Any is 0.. (zero or more).
var Any = Range{Min: 0, Max: Unbounded}

// Between returns lo..=hi.
func Between(lo, hi int) Range {
	return Range{Min: lo, Max: hi}
}

// AtLeast returns lo.. .
func AtLeast(lo int) Range {
	return Range{Min: lo, Max: Unbounded}
}

// Exactly returns n..=n.
func Exactly(n int) Range {
	return Range{Min: n, Max: n}
}

// UpTo returns 0..=hi.
func UpTo(hi int) Range {
	return Range{Min: 0, Max: hi}
}

// Bounded reports whether the range has an upper bound.
func (r Range) Bounded() bool {
	return r.Max >= 0
}

// Contains reports whether n repetitions satisfy the range.
func (r Range) Contains(n int) bool {
	return n >= r.Min && (!r.Bounded() || n <= r.Max)
}

// Valid reports whether the bounds are consistent.
func (r Range) Valid() bool {
	return r.Min >= 0 && (!r.Bounded() || r.Min <= r.Max)
}

func (r Range) String() string {
	switch {
	case !r.Bounded():
		return strconv.Itoa(r.Min) + ".."
	case r.Min == r.Max:
		return strconv.Itoa(r.Min)
	default:
		return strconv.Itoa(r.Min) + "..=" + strconv.Itoa(r.Max)
	}
}

// ParseRange parses bound syntax: "n", "m..", "..n", "m..n" (exclusive end),
// "m..=n" and "..=n".
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)

	lo, hi, found := strings.Cut(s, "..")
	if !found {
		n, err := parseBound(s)
		if err != nil {
			return Range{}, err
		}

		return Exactly(n), nil
	}

	r := Range{Max: Unbounded}

	if lo != "" {
		n, err := parseBound(lo)
		if err != nil {
			return Range{}, err
		}
		r.Min = n
	}

	inclusive := strings.HasPrefix(hi, "=")
	hi = strings.TrimPrefix(hi, "=")

	switch {
	case hi == "" && inclusive:
		return Range{}, fmt.Errorf("%w: %q: missing upper bound after '..='", ErrInvalidRange, s)
	case hi != "":
		n, err := parseBound(hi)
		if err != nil {
			return Range{}, err
		}

		if !inclusive {
			if n == 0 {
				return Range{}, fmt.Errorf("%w: %q: empty range", ErrInvalidRange, s)
			}
			n--
		}
		r.Max = n
	}

	if !r.Valid() {
		return Range{}, fmt.Errorf("%w: %q: minimum exceeds maximum", ErrInvalidRange, s)
	}

	return r, nil
}

func parseBound(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bound %q is not a non-negative integer", ErrInvalidRange, s)
	}

	return n, nil
}
