package explang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	doc := map[string]any{
		"users": []any{
			map[string]any{"name": "alice", "tags": []any{"admin", "dev"}},
			map[string]any{"name": "bob", "manager": nil},
		},
		"count": uint64(2),
	}

	tests := []struct {
		name    string
		input   string
		want    any
		wantErr string
	}{
		{name: "scalar root", input: "count", want: uint64(2)},
		{name: "member of element", input: "users[1].name", want: "bob"},
		{name: "nested index", input: "users[0].tags[1]", want: "dev"},
		{name: "safe missing field", input: "users[0]?.manager.name", want: nil},
		{name: "safe out of range", input: "users?[5].name", want: nil},
		{name: "null value", input: "users[1].manager", want: nil},
		{name: "missing root", input: "groups", wantErr: `explang: unresolvable path: root "groups" not found`},
		{name: "missing field", input: "users[0].email", wantErr: `explang: unresolvable path: field "email" missing in "users[0]"`},
		{name: "member on array", input: "users.name", wantErr: `explang: unresolvable path: "users" is not an object`},
		{name: "index on scalar", input: "count[0]", wantErr: `explang: unresolvable path: "count" is not an array`},
		{name: "out of range", input: "users[2]", wantErr: `explang: unresolvable path: index 2 out of range for "users" (length 2)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := ParseSteps(tt.input, 1, 1)
			require.NoError(t, err)

			got, err := Resolve(steps, doc)
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, ErrUnresolvable)
				assert.EqualError(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Resolve(nil, doc)
	assert.ErrorIs(t, err, ErrUnresolvable)
}
