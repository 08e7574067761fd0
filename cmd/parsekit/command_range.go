package main

import (
	"fmt"
	"strconv"

	"github.com/shibukawa/parsekit/stream"
)

// RangeCmd represents the range command
type RangeCmd struct {
	Bounds string `arg:"" help:"Range such as 3, 2.., ..5, ..=5 or 1..=4"`
	Counts []int  `arg:"" optional:"" help:"Repetition counts to check against the range"`
}

// Run executes the range command
func (cmd *RangeCmd) Run(ctx *Context) error {
	r, err := stream.ParseRange(cmd.Bounds)
	if err != nil {
		return err
	}

	upper := "unbounded"
	if r.Bounded() {
		upper = strconv.Itoa(r.Max)
	}

	fmt.Fprintf(ctx.Stdout, "range: %s\nmin: %d\nmax: %s\n", r, r.Min, upper)

	for _, n := range cmd.Counts {
		if r.Contains(n) {
			fmt.Fprintf(ctx.Stdout, "%d: %s\n", n, successFmt("accepted"))
		} else {
			fmt.Fprintf(ctx.Stdout, "%d: %s\n", n, errorFmt("rejected"))
		}
	}

	return nil
}
