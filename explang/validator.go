package explang

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValidationError represents a mismatch between a Step and the schema it was checked against.
type ValidationError struct {
	StepIndex int
	Step      Step
	Message   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Step.Pos.Line, e.Step.Pos.Column, e.Message)
}

// ValidateOptions configures Validate.
type ValidateOptions struct {
	// ExtraRoots adds root symbols that are not part of the schema document.
	ExtraRoots map[string]any
}

// Validate checks that every step can be applied to the schema.
//
// A schema is a decoded document. Strings name scalar types, "T[]" suffixes
// declare arrays, maps are objects and slices are arrays described by their
// first element. Any other value stands for its own type, so a sample data
// document works as a schema too. Checking stops being strict below an
// unknown type.
func Validate(steps []Step, schema map[string]any, opts *ValidateOptions) []ValidationError {
	if len(steps) == 0 {
		return nil
	}

	roots := make(map[string]*typeNode, len(schema))
	for name, value := range schema {
		roots[name] = describeValue(value)
	}

	if opts != nil {
		for name, value := range opts.ExtraRoots {
			roots[name] = describeValue(value)
		}
	}

	var (
		errs    []ValidationError
		path    string
		current = unknownType()
	)

	fail := func(idx int, step Step, format string, args ...any) {
		errs = append(errs, ValidationError{StepIndex: idx, Step: step, Message: fmt.Sprintf(format, args...)})
		current = unknownType()
	}

	for idx, step := range steps {
		switch step.Kind {
		case StepIdentifier:
			path = step.Identifier

			node, ok := roots[step.Identifier]
			if !ok {
				fail(idx, step, "unknown root %q", step.Identifier)
				continue
			}

			current = node
		case StepMember:
			parent := path
			path = joinPath(path, step.Property)

			if current.kind == kindUnknown {
				continue
			}

			if current.kind != kindObject {
				fail(idx, step, "cannot access member %q on %q (type %s)", step.Property, parent, current.describe())
				continue
			}

			child, ok := current.fields[step.Property]
			if !ok {
				fail(idx, step, "unknown field %q on %q", step.Property, parent)
				continue
			}

			current = child
		case StepIndex:
			parent := path
			path = fmt.Sprintf("%s[%d]", path, step.Index)

			if current.kind == kindUnknown {
				continue
			}

			if current.kind != kindArray {
				fail(idx, step, "%q is not an array (type %s)", parent, current.describe())
				continue
			}

			current = current.elem
		}
	}

	return errs
}

func joinPath(base, property string) string {
	if base == "" {
		return property
	}

	return base + "." + property
}

type typeKind int

const (
	kindUnknown typeKind = iota
	kindScalar
	kindObject
	kindArray
)

type typeNode struct {
	kind     typeKind
	typeName string
	elem     *typeNode
	fields   map[string]*typeNode
}

func unknownType() *typeNode {
	return &typeNode{kind: kindUnknown}
}

func describeValue(v any) *typeNode {
	switch val := v.(type) {
	case string:
		if uuid.Validate(val) == nil {
			return &typeNode{kind: kindScalar, typeName: "uuid"}
		}

		return describeTypeName(val)
	case map[string]any:
		fields := make(map[string]*typeNode, len(val))
		for k, child := range val {
			fields[k] = describeValue(child)
		}

		return &typeNode{kind: kindObject, fields: fields}
	case []any:
		if len(val) == 0 {
			return &typeNode{kind: kindArray, elem: unknownType()}
		}

		return &typeNode{kind: kindArray, elem: describeValue(val[0])}
	case nil:
		return unknownType()
	default:
		return &typeNode{kind: kindScalar, typeName: literalType(val)}
	}
}

func describeTypeName(name string) *typeNode {
	t := strings.TrimSpace(name)
	if t == "" {
		return unknownType()
	}

	depth := 0
	for strings.HasSuffix(t, "[]") {
		depth++
		t = strings.TrimSpace(strings.TrimSuffix(t, "[]"))
	}

	if t == "" {
		t = "any"
	}

	node := &typeNode{kind: kindScalar, typeName: t}
	for range depth {
		node = &typeNode{kind: kindArray, elem: node}
	}

	return node
}

func literalType(v any) string {
	switch v.(type) {
	case int, int64, int32, int16, int8:
		return "int"
	case uint, uint64, uint32, uint16, uint8:
		return "uint"
	case float32, float64:
		return "float"
	case bool:
		return "bool"
	case uuid.UUID, [16]byte:
		return "uuid"
	case decimal.Decimal, *decimal.Decimal:
		return "decimal"
	case time.Time:
		return "timestamp"
	default:
		return "any"
	}
}

func (n *typeNode) describe() string {
	switch n.kind {
	case kindScalar:
		return n.typeName
	case kindObject:
		return "object"
	case kindArray:
		return "array of " + n.elem.describe()
	default:
		return "unknown"
	}
}
