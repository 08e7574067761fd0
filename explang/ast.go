package explang

import (
	"strconv"
	"strings"
)

// Position represents the start offset of a node within the original expression.
// Offset is the rune index (0-based), Line/Column are 1-based for error reporting.
type Position struct {
	Offset int
	Line   int
	Column int
	Length int
}

// StepKind indicates what kind of explang step is described.
type StepKind int

const (
	StepIdentifier StepKind = iota
	StepMember
	StepIndex
)

func (k StepKind) String() string {
	switch k {
	case StepIdentifier:
		return "identifier"
	case StepMember:
		return "member"
	default:
		return "index"
	}
}

// Step represents a flattened access step such as identifier, member access, or index.
type Step struct {
	Kind       StepKind
	Identifier string
	Property   string
	Index      int
	Safe       bool
	Pos        Position
}

// String returns the canonical source form of the step.
func (s Step) String() string {
	var prefix string
	if s.Safe {
		prefix = "?"
	}

	switch s.Kind {
	case StepIdentifier:
		return s.Identifier
	case StepMember:
		return prefix + "." + s.Property
	default:
		return prefix + "[" + strconv.Itoa(s.Index) + "]"
	}
}

// Format joins steps back into an expression without whitespace.
func Format(steps []Step) string {
	var sb strings.Builder
	for _, s := range steps {
		sb.WriteString(s.String())
	}

	return sb.String()
}
