package testhelper

import (
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
)

// GetCaller returns " (file.go:line)" of the call site. Appending it to a
// table test name makes a failing case easy to find.
func GetCaller(t *testing.T) string {
	t.Helper()

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		return " (unknown)"
	}

	return fmt.Sprintf(" (%s:%d)", filepath.Base(file), line)
}
