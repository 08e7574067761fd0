package main

import (
	"fmt"

	"github.com/shibukawa/parsekit/diagnostic"
	"github.com/shibukawa/parsekit/grammar/arith"
)

// LexCmd represents the lex command
type LexCmd struct {
	Input string `arg:"" help:"Arithmetic source to tokenize"`
}

// Run executes the lex command
func (cmd *LexCmd) Run(ctx *Context) error {
	tokens, err := arith.Lex(cmd.Input)
	if err != nil {
		if rerr := diagnostic.Render(ctx.Stderr, "input", cmd.Input, err, ctx.Settings.DiagnosticOptions()); rerr != nil {
			return rerr
		}

		return fmt.Errorf("failed to tokenize: %w", err)
	}

	for _, tok := range tokens {
		fmt.Fprintf(ctx.Stdout, "%d..%d\t%s\n", tok.Start, tok.End, tok)
	}

	return nil
}
