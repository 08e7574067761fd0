package markdownparser

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/parsekit/testhelper"
)

func TestParseBasic(t *testing.T) {
	input := testhelper.TrimIndent(t, `
		---
		title: ignored
		precision: 2
		schema:
		  users:
		    - name: string
		data:
		  users:
		    - name: alice
		---

		# Ledger

		## Totals

		~~~arith
		1 + 2
		10 / 4
		~~~

		Some prose.

		~~~path
		users[0].name
		~~~

		~~~sql
		SELECT 1
		~~~
	`)

	doc, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)

	assert.Equal(t, "Ledger", doc.Title)
	assert.Equal(t, "ignored", doc.Metadata["title"])

	assert.NotZero(t, doc.Settings.Precision)
	assert.Equal(t, int32(2), *doc.Settings.Precision)
	assert.Equal[any](t, []any{map[string]any{"name": "string"}}, doc.Settings.Schema["users"])
	assert.Equal[any](t, []any{map[string]any{"name": "alice"}}, doc.Settings.Data["users"])

	assert.Equal(t, 3, len(doc.Blocks))

	arith := doc.BlocksFor("arith")
	assert.Equal(t, []CodeBlock{{Lang: "arith", Code: "1 + 2\n10 / 4\n", Line: 17, Section: "Totals"}}, arith)

	paths := doc.BlocksFor("PATH", "json")
	assert.Equal(t, []CodeBlock{{Lang: "path", Code: "users[0].name\n", Line: 24, Section: "Totals"}}, paths)
}

func TestParseWithoutFrontMatter(t *testing.T) {
	input := testhelper.TrimIndent(t, `
		Intro text.

		~~~Arith extra words
		2 * 3
		~~~

		~~~arith
		~~~
	`)

	doc, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)

	assert.Equal(t, "", doc.Title)
	assert.Equal(t, map[string]any{}, doc.Metadata)
	assert.Zero(t, doc.Settings.Precision)
	assert.Equal(t, []CodeBlock{{Lang: "arith", Code: "2 * 3\n", Line: 4}}, doc.Blocks)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{
			name:  "unterminated front matter" + testhelper.GetCaller(t),
			input: "---\nprecision: 2\n",
			want:  ErrInvalidFrontMatter,
		},
		{
			name:  "broken yaml" + testhelper.GetCaller(t),
			input: "---\nprecision: [\n---\n",
			want:  ErrInvalidFrontMatter,
		},
		{
			name:  "negative precision" + testhelper.GetCaller(t),
			input: "---\nprecision: -1\n---\n",
			want:  ErrInvalidSettings,
		},
		{
			name:  "fractional precision" + testhelper.GetCaller(t),
			input: "---\nprecision: 1.5\n---\n",
			want:  ErrInvalidSettings,
		},
		{
			name:  "schema is not a map" + testhelper.GetCaller(t),
			input: "---\nschema: 3\n---\n",
			want:  ErrInvalidSettings,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.IsError(t, err, tt.want)
		})
	}
}
