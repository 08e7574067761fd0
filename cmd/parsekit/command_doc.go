package main

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shibukawa/parsekit/explang"
	"github.com/shibukawa/parsekit/feed"
	"github.com/shibukawa/parsekit/grammar/arith"
	"github.com/shibukawa/parsekit/markdownparser"
)

// DocCmd represents the doc command
type DocCmd struct {
	File   string `arg:"" help:"Markdown document with arith and path code blocks" type:"existingfile"`
	Schema string `help:"YAML schema for path blocks when the document has none (default: path.schema)" type:"path"`
	Data   string `help:"YAML document path blocks resolve against when the document has none (default: path.data)" type:"path"`
}

type docRunner struct {
	ctx       *Context
	name      string
	precision int32
	schema    map[string]any
	data      map[string]any
	failures  int
}

// Run executes the doc command
func (cmd *DocCmd) Run(ctx *Context) error {
	f, err := os.Open(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	doc, err := markdownparser.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", cmd.File, err)
	}

	r := &docRunner{
		ctx:       ctx,
		name:      cmd.File,
		precision: ctx.Settings.Arith.DivisionPrecision,
		schema:    doc.Settings.Schema,
		data:      doc.Settings.Data,
	}

	if doc.Settings.Precision != nil {
		r.precision = *doc.Settings.Precision
	}

	if r.schema == nil {
		if path := firstNonEmpty(cmd.Schema, ctx.Settings.Path.Schema); path != "" {
			if r.schema, err = readYAMLDocument(path); err != nil {
				return err
			}
		}
	}

	if r.data == nil {
		if path := firstNonEmpty(cmd.Data, ctx.Settings.Path.Data); path != "" {
			if r.data, err = readYAMLDocument(path); err != nil {
				return err
			}
		}
	}

	blocks := doc.BlocksFor("arith", "path")
	if len(blocks) == 0 {
		fmt.Fprintf(ctx.Stderr, "%s: %s no arith or path code blocks\n", locationFmt(cmd.File), warningFmt("warning:"))
		return nil
	}

	for _, block := range blocks {
		if block.Lang == "arith" {
			r.arithBlock(block)
		} else {
			r.pathBlock(block)
		}
	}

	if r.failures > 0 {
		return fmt.Errorf("%w: %d failure(s) in %s", ErrDocumentFailed, r.failures, cmd.File)
	}

	return nil
}

func (r *docRunner) location(line int) string {
	return locationFmt(fmt.Sprintf("%s:%d", r.name, line))
}

// arithBlock evaluates the statements of a block. A syntax error ends the
// block because the scanner cannot resynchronize.
func (r *docRunner) arithBlock(block markdownparser.CodeBlock) {
	s := feed.NewTextScanner(strings.NewReader(block.Code), arith.Statement(), r.ctx.Settings.ScannerOptions())
	start := 0

	for e, err := range s.All() {
		line := block.Line + strings.Count(block.Code[:start], "\n")

		if err != nil {
			fmt.Fprintf(r.ctx.Stderr, "%s: %s %v\n", r.location(line), errorFmt("error:"), err)
			r.failures++

			return
		}

		start = s.Offset()

		v, err := arith.Eval(e, r.precision)
		if err != nil {
			fmt.Fprintf(r.ctx.Stderr, "%s: %s %v\n", r.location(line), errorFmt("error:"), err)
			r.failures++

			continue
		}

		fmt.Fprintf(r.ctx.Stdout, "%s: %s = %s\n", r.location(line), e.Source(), v)
	}
}

// pathBlock handles one access path per line. Blank lines and lines starting
// with '#' are skipped.
func (r *docRunner) pathBlock(block markdownparser.CodeBlock) {
	for i, raw := range strings.Split(strings.TrimSuffix(block.Code, "\n"), "\n") {
		expr := strings.TrimSpace(raw)
		if expr == "" || strings.HasPrefix(expr, "#") {
			continue
		}

		line := block.Line + i
		column := utf8.RuneCountInString(raw[:len(raw)-len(strings.TrimLeftFunc(raw, unicode.IsSpace))]) + 1

		steps, err := explang.ParseSteps(expr, line, column)
		if err != nil {
			fmt.Fprintf(r.ctx.Stderr, "%s: %s %v\n", r.location(line), errorFmt("error:"), err)
			r.failures++

			continue
		}

		if r.schema != nil {
			problems := explang.Validate(steps, r.schema, nil)
			for _, p := range problems {
				fmt.Fprintf(r.ctx.Stderr, "%s: %s %s\n",
					locationFmt(fmt.Sprintf("%s:%d:%d", r.name, p.Step.Pos.Line, p.Step.Pos.Column)), errorFmt("error:"), p.Message)
			}

			if len(problems) > 0 {
				r.failures += len(problems)
				continue
			}
		}

		if r.data == nil {
			fmt.Fprintf(r.ctx.Stdout, "%s: %s %s\n", r.location(line), explang.Format(steps), successFmt("ok"))
			continue
		}

		value, err := explang.Resolve(steps, r.data)
		if err != nil {
			fmt.Fprintf(r.ctx.Stderr, "%s: %s %v\n", r.location(line), errorFmt("error:"), err)
			r.failures++

			continue
		}

		fmt.Fprintf(r.ctx.Stdout, "%s: %s = %v\n", r.location(line), explang.Format(steps), value)
	}
}
