// Package diagnostic turns parse failures into human readable reports.
package diagnostic

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/width"

	"github.com/shibukawa/parsekit/parseerr"
	"github.com/shibukawa/parsekit/stream"
)

// DefaultTabWidth is used when Options.TabWidth is not positive.
const DefaultTabWidth = 4

var (
	locationFmt = color.New(color.Bold).SprintFunc()
	errorFmt    = color.New(color.FgRed, color.Bold).SprintFunc()
	warningFmt  = color.New(color.FgYellow, color.Bold).SprintFunc()
	gutterFmt   = color.New(color.FgBlue).SprintFunc()
	caretFmt    = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// Report describes a parse failure in source terms.
type Report struct {
	Mode   parseerr.Mode
	Kind   parseerr.Kind
	Offset int
	Position
	// Contexts are the attached labels, outermost first.
	Contexts []string
	Needed   stream.Needed
	Message  string
}

// Options controls Describe and Render.
type Options struct {
	TabWidth int
	// HideContexts drops context labels from the rendered message.
	HideContexts bool
	// MapOffset converts an error offset into a byte offset of the source.
	// Grammars over token streams use it to map token indexes back to text.
	MapOffset func(int) int
}

// Describe builds a Report for err. ok is false when err is nil or not a
// parse failure.
func Describe(src string, err error, opts Options) (Report, bool) {
	var em *parseerr.ErrMode
	if !errors.As(err, &em) {
		return Report{}, false
	}

	if em.Mode == parseerr.ModeIncomplete {
		return Report{Mode: em.Mode, Offset: -1, Needed: em.Needed, Message: "incomplete input"}, true
	}

	if em.Err == nil {
		return Report{Mode: em.Mode, Offset: -1, Message: em.Mode.String()}, true
	}

	offset := em.Location()
	if opts.MapOffset != nil {
		offset = opts.MapOffset(offset)
	}

	report := Report{
		Mode:     em.Mode,
		Kind:     em.Err.ErrorKind(),
		Offset:   offset,
		Position: NewLineIndex(src).Position(offset),
		Message:  em.Err.ErrorKind().Description(),
	}

	var ce *parseerr.ContextError
	if errors.As(em.Err, &ce) {
		for i := len(ce.Contexts) - 1; i >= 0; i-- {
			report.Contexts = append(report.Contexts, ce.Contexts[i].String())
		}

		if ce.Cause != nil {
			report.Message += ": " + ce.Cause.Error()
		}
	} else if _, ok := em.Err.(*parseerr.InputError); !ok {
		// user supplied payloads carry their own message
		report.Message = em.Err.Error()
	}

	return report, true
}

// Summary returns the one line message of the report including contexts.
func (r Report) Summary(withContexts bool) string {
	if r.Mode == parseerr.ModeIncomplete {
		return fmt.Sprintf("%s: needed %s", r.Message, r.Needed)
	}

	if withContexts && len(r.Contexts) > 0 {
		return strings.Join(r.Contexts, ": ") + ": " + r.Message
	}

	return r.Message
}

// Render writes a compiler style report of err to w, quoting the failing
// source line with a caret under the failing column.
func Render(w io.Writer, name, src string, err error, opts Options) error {
	report, ok := Describe(src, err, opts)
	if !ok {
		_, werr := fmt.Fprintf(w, "%s: %s %v\n", locationFmt(name), errorFmt("error:"), err)
		return werr
	}

	if report.Mode == parseerr.ModeIncomplete {
		_, werr := fmt.Fprintf(w, "%s: %s %s\n", locationFmt(name), warningFmt("incomplete:"), report.Summary(false))
		return werr
	}

	if report.Offset < 0 {
		_, werr := fmt.Fprintf(w, "%s: %s %s\n", locationFmt(name), errorFmt("error:"), report.Summary(false))
		return werr
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "%s: %s %s\n",
		locationFmt(fmt.Sprintf("%s:%d:%d", name, report.Line, report.Column)),
		errorFmt(report.Mode.String()+":"),
		report.Summary(!opts.HideContexts))

	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	index := NewLineIndex(src)
	line := index.Line(report.Line)
	prefix := []rune(line)[:min(report.Column-1, len([]rune(line)))]

	num := strconv.Itoa(report.Line)
	pad := strings.Repeat(" ", len(num))

	fmt.Fprintf(&sb, " %s %s %s\n", gutterFmt(num), gutterFmt("|"), expandTabs(line, tabWidth))
	fmt.Fprintf(&sb, " %s %s %s%s\n", pad, gutterFmt("|"), strings.Repeat(" ", DisplayWidth(string(prefix), tabWidth)), caretFmt("^"))

	_, werr := io.WriteString(w, sb.String())

	return werr
}

// DisplayWidth returns the number of terminal columns s occupies. East Asian
// wide and fullwidth runes take two columns; tabs advance to the next stop.
func DisplayWidth(s string, tabWidth int) int {
	col := 0

	for _, r := range s {
		switch {
		case r == '\t':
			col += tabWidth - col%tabWidth
		case isWide(r):
			col += 2
		default:
			col++
		}
	}

	return col
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	default:
		return false
	}
}

func expandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}

	var sb strings.Builder

	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n

			continue
		}

		sb.WriteRune(r)
		col += DisplayWidth(string(r), tabWidth)
	}

	return sb.String()
}
