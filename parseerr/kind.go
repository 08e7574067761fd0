package parseerr

// Kind classifies where a failure was produced.
type Kind int

const (
	KindAssert   Kind = iota // grammar misuse detected at run time
	KindToken                // single item did not match
	KindLiteral              // literal mismatch
	KindAlt                  // no alternative matched
	KindRepeat               // too few repetitions
	KindEof                  // input not fully consumed, or unexpected end
	KindSlice                // predicate-bounded or counted slice did not fit
	KindComplete             // incomplete input in complete mode
	KindNot                  // negative lookahead matched
	KindVerify               // value rejected by a verifier
	KindFail                 // explicit failure
	KindExternal             // error returned by user code
)

var kindNames = map[Kind]string{
	KindAssert:   "assert",
	KindToken:    "token",
	KindLiteral:  "literal",
	KindAlt:      "alt",
	KindRepeat:   "repeat",
	KindEof:      "eof",
	KindSlice:    "slice",
	KindComplete: "complete",
	KindNot:      "not",
	KindVerify:   "verify",
	KindFail:     "fail",
	KindExternal: "external",
}

var kindDescriptions = map[Kind]string{
	KindAssert:   "assertion failed",
	KindToken:    "unexpected token",
	KindLiteral:  "literal mismatch",
	KindAlt:      "no alternative matched",
	KindRepeat:   "too few repetitions",
	KindEof:      "expected end of input",
	KindSlice:    "slice length mismatch",
	KindComplete: "unexpected end of input",
	KindNot:      "unexpected match",
	KindVerify:   "value rejected",
	KindFail:     "failed",
	KindExternal: "external error",
}

func (k Kind) String() string {
	if v, ok := kindNames[k]; ok {
		return v
	}

	return "unknown"
}

// Description returns a short human readable phrase for the kind.
func (k Kind) Description() string {
	if v, ok := kindDescriptions[k]; ok {
		return v
	}

	return "parse error"
}
