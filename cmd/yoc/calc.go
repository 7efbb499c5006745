package main

import (
	"context"
	"flag"
	"fmt"

	"DivYield/internal/presenter"

	"github.com/google/subcommands"
)

// CalcCmd prints the yield on cost summary of one position.
type CalcCmd struct {
	runner
}

// Name returns the name of the command.
func (*CalcCmd) Name() string { return "calc" }

// Synopsis returns a short-one line synopsis of the command.
func (*CalcCmd) Synopsis() string { return "compute the yield on cost of a position" }

// Usage returns a long-form usage string.
func (*CalcCmd) Usage() string {
	return `calc -ticker <symbol> -invest <YYYY-MM-DD> [-end <YYYY-MM-DD>]:
  Print purchase price, dividends received per share and yield on cost.
`
}

// SetFlags sets the flags for the command.
func (c *CalcCmd) SetFlags(f *flag.FlagSet) { c.setQueryFlags(f) }

// Execute executes the command.
func (c *CalcCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	res, status := c.compute(ctx, args)
	if status != subcommands.ExitSuccess {
		return status
	}
	if err := presenter.NewSummary(res).Render(c.stdout); err != nil {
		fmt.Fprintln(c.stderr, "render failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
