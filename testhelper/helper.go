// Package testhelper has small utilities shared by the package tests.
package testhelper

import (
	"regexp"
	"strings"
	"testing"
)

var (
	whiteSpaces = regexp.MustCompile(`^(\s+)`)
	leadingTabs = regexp.MustCompile(`^(\t+)`)
)

func replaceTab(match string) string {
	return strings.Repeat("    ", strings.Count(match, "\t"))
}

// TrimIndent turns an indented raw string literal into the text it stands for.
//
// The first line (right after the opening backquote) is dropped, the
// indentation of the second line is removed from every line, and a trailing
// line holding only the indentation of the closing backquote becomes the final
// newline. Remaining leading tabs are expanded to four spaces.
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) < 2 {
		return src
	}

	indent := whiteSpaces.FindString(lines[1])

	lines = lines[1:]
	if last := lines[len(lines)-1]; strings.TrimSpace(last) == "" {
		lines[len(lines)-1] = ""
	}

	for i, line := range lines {
		line = strings.TrimPrefix(line, indent)
		lines[i] = leadingTabs.ReplaceAllStringFunc(line, replaceTab)
	}

	return strings.Join(lines, "\n")
}
