package explang

import (
	"errors"
	"fmt"
)

// ErrUnresolvable is returned when a path cannot be followed through a document.
var ErrUnresolvable = errors.New("explang: unresolvable path")

// Resolve follows steps through a decoded document. A safe step turns a
// missing field, a wrong container type or an out of range index into nil
// instead of an error, and later steps on nil are skipped.
func Resolve(steps []Step, doc map[string]any) (any, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrUnresolvable)
	}

	var (
		current any
		path    string
		null    bool
	)

	for _, step := range steps {
		switch step.Kind {
		case StepIdentifier:
			val, ok := doc[step.Identifier]
			if !ok {
				return nil, fmt.Errorf("%w: root %q not found", ErrUnresolvable, step.Identifier)
			}

			current = val
			path = step.Identifier
		case StepMember:
			if null {
				continue
			}

			obj, ok := current.(map[string]any)
			if !ok {
				if step.Safe {
					current, null = nil, true
					continue
				}

				return nil, fmt.Errorf("%w: %q is not an object", ErrUnresolvable, path)
			}

			val, ok := obj[step.Property]
			if !ok {
				if step.Safe {
					current, null = nil, true
					continue
				}

				return nil, fmt.Errorf("%w: field %q missing in %q", ErrUnresolvable, step.Property, path)
			}

			current = val
			path = joinPath(path, step.Property)
		case StepIndex:
			if null {
				continue
			}

			arr, ok := current.([]any)
			if !ok {
				if step.Safe {
					current, null = nil, true
					continue
				}

				return nil, fmt.Errorf("%w: %q is not an array", ErrUnresolvable, path)
			}

			if step.Index >= len(arr) {
				if step.Safe {
					current, null = nil, true
					continue
				}

				return nil, fmt.Errorf("%w: index %d out of range for %q (length %d)", ErrUnresolvable, step.Index, path, len(arr))
			}

			current = arr[step.Index]
			path = fmt.Sprintf("%s[%d]", path, step.Index)
		}
	}

	return current, nil
}
