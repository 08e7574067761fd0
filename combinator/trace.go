package combinator

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/shibukawa/parsekit/parseerr"
	"github.com/shibukawa/parsekit/stream"
)

var (
	traceNameFmt       = color.New(color.FgBlue, color.Bold).SprintFunc()
	traceOkFmt         = color.New(color.FgGreen).SprintfFunc()
	traceBacktrackFmt  = color.New(color.FgYellow).SprintfFunc()
	traceCutFmt        = color.New(color.FgRed, color.Bold).SprintfFunc()
	traceIncompleteFmt = color.New(color.FgCyan).SprintfFunc()
)

type tracer struct {
	mu    sync.Mutex
	w     io.Writer
	depth int
}

var globalTracer tracer

// SetTraceOutput installs w as the destination of Trace output. nil disables
// tracing.
func SetTraceOutput(w io.Writer) {
	globalTracer.mu.Lock()
	defer globalTracer.mu.Unlock()

	globalTracer.w = w
	globalTracer.depth = 0
}

func (t *tracer) enter(name string, offset int) (io.Writer, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.w == nil {
		return nil, 0
	}

	depth := t.depth
	fmt.Fprintf(t.w, "%s> %s @%d\n", strings.Repeat("  ", depth), traceNameFmt(name), offset)
	t.depth++

	return t.w, depth
}

func (t *tracer) exit(w io.Writer, depth int, name string, outcome string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// tracing was switched while the parser ran
	if t.w != w {
		return
	}

	t.depth = depth
	fmt.Fprintf(t.w, "%s< %s %s\n", strings.Repeat("  ", depth), traceNameFmt(name), outcome)
}

// Trace prints an enter and an exit line for every call of p while a trace
// output is installed. Nested traced parsers are indented.
func Trace[I stream.Input, O any](name string, p Parser[I, O]) Parser[I, O] {
	return func(in I) (O, error) {
		start := in.Offset()

		w, depth := globalTracer.enter(name, start)
		if w == nil {
			return p(in)
		}

		v, err := p(in)
		globalTracer.exit(w, depth, name, traceOutcome(err, in.Offset()-start))

		return v, err
	}
}

func traceOutcome(err error, consumed int) string {
	if err == nil {
		return traceOkFmt("ok +%d", consumed)
	}

	em := parseerr.From(err, 0)
	switch em.Mode {
	case parseerr.ModeCut:
		return traceCutFmt("cut: %v", em.Err)
	case parseerr.ModeIncomplete:
		return traceIncompleteFmt("incomplete: needed %s", em.Needed)
	default:
		return traceBacktrackFmt("backtrack: %v", em.Err)
	}
}
