package main

import (
	"fmt"
	"io"
	"os"

	"github.com/shibukawa/parsekit/feed"
	"github.com/shibukawa/parsekit/grammar/arith"
)

// StreamCmd represents the stream command
type StreamCmd struct {
	File      string `arg:"" optional:"" help:"File of statements separated by ';' or newlines. Reads stdin when omitted." type:"existingfile"`
	ChunkSize int    `help:"Read size in bytes (default: stream.chunk_size)"`
	MaxBuffer int    `help:"Buffered input limit in bytes (default: stream.max_buffer)"`
	Stats     bool   `help:"Print scanner statistics to stderr"`
}

// Run executes the stream command
func (cmd *StreamCmd) Run(ctx *Context) error {
	var (
		r    io.Reader = ctx.Stdin
		name           = ctx.Settings.Diagnostic.SourceName
	)

	if cmd.File != "" {
		f, err := os.Open(cmd.File)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()

		r, name = f, cmd.File
	}

	opts := ctx.Settings.ScannerOptions()
	if cmd.ChunkSize > 0 {
		opts.ChunkSize = cmd.ChunkSize
	}

	if cmd.MaxBuffer > 0 {
		opts.MaxBuffer = cmd.MaxBuffer
	}

	precision := ctx.Settings.Arith.DivisionPrecision
	s := feed.NewTextScanner(r, arith.Statement(), opts)

	defer func() {
		if cmd.Stats || ctx.Verbose {
			st := s.Stats()
			fmt.Fprintf(ctx.Stderr, "%s reads=%d reparses=%d values=%d bytes=%d\n",
				warningFmt("stats:"), st.Reads, st.Reparses, st.Values, s.Offset())
		}
	}()

	for e, err := range s.All() {
		if err != nil {
			fmt.Fprintf(ctx.Stderr, "%s: %s %v\n", locationFmt(name), errorFmt("error:"), err)
			return fmt.Errorf("%w: %w", ErrStreamFailed, err)
		}

		v, err := arith.Eval(e, precision)
		if err != nil {
			fmt.Fprintf(ctx.Stderr, "%s: %s %v\n", locationFmt(name), errorFmt("error:"), err)
			return fmt.Errorf("%w: %w", ErrStreamFailed, err)
		}

		fmt.Fprintf(ctx.Stdout, "%s = %s\n", e.Source(), v)
	}

	return nil
}
