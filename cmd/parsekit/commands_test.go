package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/parsekit/testhelper"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer

	code := run(append([]string{"--no-color"}, args...), strings.NewReader(stdin), &stdout, &stderr)

	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestEvalCmd(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "arguments" + testhelper.GetCaller(t),
			args: []string{"eval", "1 + 2", "2 * (3 + 4)"},
			want: "3\n14\n",
		},
		{
			name: "tree" + testhelper.GetCaller(t),
			args: []string{"eval", "--tree", "1+2*3"},
			want: "Add(Value(1), Mul(Value(2), Value(3)))\n",
		},
		{
			name:  "stdin lines" + testhelper.GetCaller(t),
			stdin: "1/4\n\n10 - 3\n",
			args:  []string{"eval"},
			want:  "0.25\n7\n",
		},
		{
			name: "precision" + testhelper.GetCaller(t),
			args: []string{"eval", "--precision", "2", "2/3"},
			want: "0.67\n",
		},
		{
			name: "verbose" + testhelper.GetCaller(t),
			args: []string{"-v", "eval", "1+2"},
			want: "1 + 2 = 3\n",
		},
		{
			name: "quiet" + testhelper.GetCaller(t),
			args: []string{"-q", "eval", "1+2"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, tt.stdin, tt.args...)
			assert.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestEvalCmd_Errors(t *testing.T) {
	res := runCLI(t, "", "eval", "(1 + 2", "4", "1/0")

	assert.Equal(t, 1, res.code)
	assert.Equal(t, "4\n", res.stdout)

	assert.Contains(t, res.stderr, testhelper.TrimIndent(t, `
		expr#1:1:7: cut: invalid parenthesized expression: expected ')': unexpected token
		 1 | (1 + 2
		   |       ^
	`))
	assert.Contains(t, res.stderr, "expr#3: error: division by zero: 1 / 0")
	assert.Contains(t, res.stderr, "Error: evaluation failed: 2 of 3 expressions")

	res = runCLI(t, "  \n", "eval")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "no input")
}

func TestLexCmd(t *testing.T) {
	res := runCLI(t, "", "lex", "2*(3)")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, testhelper.TrimIndent(t, `
		0..1	Value(2)
		1..2	Oper(Mul)
		2..3	OpenParen
		3..4	Value(3)
		4..5	CloseParen
	`), res.stdout)

	res = runCLI(t, "", "lex", "1 # 2")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "input:1:3: backtrack: expected end of input")
}

func TestStreamCmd(t *testing.T) {
	res := runCLI(t, "1+1;2*3\n", "stream", "--stats")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "1 + 1 = 2\n2 * 3 = 6\n", res.stdout)
	assert.Contains(t, res.stderr, "values=2")
	assert.Contains(t, res.stderr, "bytes=8")

	path := writeFile(t, "statements.txt", "10 / 4;\n(1 + 2) * 3\n")
	res = runCLI(t, "", "stream", "--chunk-size", "3", path)
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "10 / 4 = 2.5\n(1 + 2) * 3 = 9\n", res.stdout)

	res = runCLI(t, "\n  \n1+1\n", "stream")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "1 + 1 = 2\n", res.stdout)

	res = runCLI(t, "1;1+;2", "stream")
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "1 = 1\n", res.stdout)
	assert.Contains(t, res.stderr, "stdin: error: at stream offset 2")
	assert.Contains(t, res.stderr, "stream evaluation failed")

	res = runCLI(t, strings.Repeat("1", 64), "stream", "--chunk-size", "4", "--max-buffer", "16")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "scan buffer limit exceeded")
}

func TestPathCmd(t *testing.T) {
	t.Run("steps", func(t *testing.T) {
		res := runCLI(t, "", "path", "users?[0].name")
		assert.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "kind: identifier")
		assert.Contains(t, res.stdout, "name: users")
		assert.Contains(t, res.stdout, "index: 0")
		assert.Contains(t, res.stdout, "safe: true")
		assert.Contains(t, res.stdout, "kind: member")
	})

	data := writeFile(t, "data.yaml", testhelper.TrimIndent(t, `
		users:
		  - name: alice
		    age: 30
	`))

	t.Run("resolve", func(t *testing.T) {
		res := runCLI(t, "", "path", "--data", data, "users[0].name")
		assert.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "alice\n", res.stdout)

		res = runCLI(t, "", "path", "--data", data, "users[3].name")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "index 3 out of range")
	})

	t.Run("schema", func(t *testing.T) {
		schema := writeFile(t, "schema.yaml", testhelper.TrimIndent(t, `
			users:
			  - id: int
		`))

		res := runCLI(t, "", "path", "--schema", schema, "users[0].name")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, `path:1:9: error: unknown field "name" on "users[0]"`)
		assert.Contains(t, res.stderr, "path does not match schema")
	})

	t.Run("syntax error", func(t *testing.T) {
		res := runCLI(t, "", "path", "users[")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "path:1:7: cut: expected integer index after '[': slice length mismatch")
	})
}

func TestRangeCmd(t *testing.T) {
	res := runCLI(t, "", "range", "2..=4", "1", "3")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "range: 2..=4\nmin: 2\nmax: 4\n1: rejected\n3: accepted\n", res.stdout)

	res = runCLI(t, "", "range", "3..")
	assert.Equal(t, "range: 3..\nmin: 3\nmax: unbounded\n", res.stdout)

	res = runCLI(t, "", "range", "5..2")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "minimum exceeds maximum")
}

func TestVersionAndConfig(t *testing.T) {
	res := runCLI(t, "", "version")
	assert.Equal(t, "parsekit v0.1.0\n", res.stdout)

	res = runCLI(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "configuration file not found")

	config := writeFile(t, "parsekit.yaml", "arith:\n  division_precision: 3\n")
	res = runCLI(t, "", "--config", config, "eval", "1/3")
	assert.Equal(t, "0.333\n", res.stdout)
}

func TestTraceFlag(t *testing.T) {
	res := runCLI(t, "", "--trace", "eval", "1+2")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, "> lex @0")
	assert.Contains(t, res.stderr, "< lex ok +3")
	assert.Contains(t, res.stderr, "> expr @0")
	assert.Contains(t, res.stderr, "< expr ok +3")
}

func TestDocCmd(t *testing.T) {
	path := writeFile(t, "budget.md", testhelper.TrimIndent(t, `
		---
		precision: 3
		schema:
		  users:
		    - name: string
		data:
		  users:
		    - name: alice
		---

		# Budget

		~~~arith
		1 / 3
		2 * (3 + 4)
		~~~

		~~~path
		users[0].name
		  users[0].email
		~~~
	`))

	res := runCLI(t, "", "doc", path)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, path+":14: 1 / 3 = 0.333\n"+
		path+":15: 2 * (3 + 4) = 14\n"+
		path+":19: users[0].name = alice\n", res.stdout)
	assert.Contains(t, res.stderr, path+`:20:11: error: unknown field "email" on "users[0]"`)
	assert.Contains(t, res.stderr, "document check failed: 1 failure(s)")

	empty := writeFile(t, "empty.md", "# Nothing here\n")
	res = runCLI(t, "", "doc", empty)
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, "no arith or path code blocks")

	broken := writeFile(t, "broken.md", "~~~arith\n1 + 1\n2 +\n3\n~~~\n")
	res = runCLI(t, "", "doc", broken)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, broken+":2: 1 + 1 = 2\n", res.stdout)
	assert.Contains(t, res.stderr, broken+":3: error: at stream offset 6")
}
