package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/shibukawa/parsekit/diagnostic"
	"github.com/shibukawa/parsekit/grammar/arith"
)

// EvalCmd represents the eval command
type EvalCmd struct {
	Exprs     []string `arg:"" optional:"" help:"Expressions to evaluate. Read one per line from stdin when omitted."`
	Precision int32    `help:"Decimal places kept by division (default: arith.division_precision)" default:"-1"`
	Tree      bool     `help:"Print the expression tree instead of the value"`
}

// Run executes the eval command
func (cmd *EvalCmd) Run(ctx *Context) error {
	exprs := cmd.Exprs
	if len(exprs) == 0 {
		var err error

		exprs, err = readLines(ctx)
		if err != nil {
			return err
		}
	}

	if len(exprs) == 0 {
		return fmt.Errorf("%w: no expression given", ErrEmptyInput)
	}

	precision := ctx.Settings.Arith.DivisionPrecision
	if cmd.Precision >= 0 {
		precision = cmd.Precision
	}

	var errs []error

	for i, src := range exprs {
		name := fmt.Sprintf("expr#%d", i+1)

		e, err := arith.Parse(src)
		if err != nil {
			if rerr := diagnostic.Render(ctx.Stderr, name, src, err, ctx.Settings.DiagnosticOptions()); rerr != nil {
				return rerr
			}

			errs = append(errs, fmt.Errorf("%s: %w", name, err))

			continue
		}

		if cmd.Tree {
			fmt.Fprintln(ctx.Stdout, e.String())
			continue
		}

		v, err := arith.Eval(e, precision)
		if err != nil {
			fmt.Fprintf(ctx.Stderr, "%s: %s %v\n", locationFmt(name), errorFmt("error:"), err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))

			continue
		}

		if ctx.Verbose {
			fmt.Fprintf(ctx.Stdout, "%s = %s\n", e.Source(), successFmt(v.String()))
		} else {
			fmt.Fprintln(ctx.Stdout, v.String())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %d of %d expressions: %w", ErrEvaluationFailed, len(errs), len(exprs), errors.Join(errs...))
	}

	return nil
}

func readLines(ctx *Context) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(ctx.Stdin)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}

	return lines, nil
}
