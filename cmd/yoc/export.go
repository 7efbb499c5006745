package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"DivYield/internal/presenter"

	"github.com/google/subcommands"
)

// ExportCmd writes the dividend table of one position to a CSV file.
type ExportCmd struct {
	runner
	dir string
}

// Name returns the name of the command.
func (*ExportCmd) Name() string { return "export" }

// Synopsis returns a short-one line synopsis of the command.
func (*ExportCmd) Synopsis() string { return "export the dividends of a position as CSV" }

// Usage returns a long-form usage string.
func (*ExportCmd) Usage() string {
	return `export -ticker <symbol> -invest <YYYY-MM-DD> [-end <YYYY-MM-DD>] [-dir <path>]:
  Write {TICKER}_dividends_{invest}_{end}.csv with columns ex_date,dividend.
`
}

// SetFlags sets the flags for the command.
func (c *ExportCmd) SetFlags(f *flag.FlagSet) {
	c.setQueryFlags(f)
	f.StringVar(&c.dir, "dir", ".", "output directory")
}

// Execute executes the command.
func (c *ExportCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	res, status := c.compute(ctx, args)
	if status != subcommands.ExitSuccess {
		return status
	}

	name := filepath.Join(c.dir, presenter.CSVFilename(res.Ticker, res.InvestDate, res.EndDate))
	f, err := os.Create(name)
	if err != nil {
		fmt.Fprintln(c.stderr, "create file:", err)
		return subcommands.ExitFailure
	}
	if err := presenter.WriteCSV(f, res.Dividends); err != nil {
		f.Close()
		fmt.Fprintln(c.stderr, "write csv:", err)
		return subcommands.ExitFailure
	}
	if err := f.Close(); err != nil {
		fmt.Fprintln(c.stderr, "close file:", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.stdout, "wrote %d dividends to %s\n", len(res.Dividends), name)
	return subcommands.ExitSuccess
}
