package stream

import "strconv"

// Needed describes how much more input a parser requires before it could succeed.
//
// The zero value is Unknown. A known size is always greater than zero.
type Needed struct {
	size int
}

// Unknown means more input is required but the amount is not known.
var Unknown = Needed{}

// Size returns a Needed for n more storage units. Non-positive n yields Unknown.
func Size(n int) Needed {
	if n <= 0 {
		return Unknown
	}

	return Needed{size: n}
}

// IsKnown reports whether the exact amount is known.
func (n Needed) IsKnown() bool {
	return n.size > 0
}

// Count returns the amount of required input when known.
func (n Needed) Count() (int, bool) {
	return n.size, n.size > 0
}

// Map transforms a known size. Unknown stays Unknown.
func (n Needed) Map(f func(int) int) Needed {
	if !n.IsKnown() {
		return n
	}

	return Size(f(n.size))
}

func (n Needed) String() string {
	if !n.IsKnown() {
		return "Unknown"
	}

	return "Size(" + strconv.Itoa(n.size) + ")"
}
