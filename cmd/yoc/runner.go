package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"DivYield/internal/di"
	"DivYield/internal/domain/models"
	"DivYield/pkg/config"

	"github.com/google/subcommands"
)

type calculator interface {
	ParseDates(invest, end string) (time.Time, time.Time, error)
	Compute(ctx context.Context, ticker string, investDate, endDate time.Time) (*models.YieldResult, error)
}

// runner holds what calc and export share: the query flags, the output
// streams and the calculator factory.
type runner struct {
	ticker string
	invest string
	end    string

	stdout  io.Writer
	stderr  io.Writer
	newCalc func(*config.Config) (calculator, func(), error)
}

func newRunner() runner {
	return runner{
		stdout: os.Stdout,
		stderr: os.Stderr,
		newCalc: func(cfg *config.Config) (calculator, func(), error) {
			return di.InitializeCalculator(cfg)
		},
	}
}

func (r *runner) setQueryFlags(f *flag.FlagSet) {
	f.StringVar(&r.ticker, "ticker", "", "ticker symbol, e.g. AAPL")
	f.StringVar(&r.invest, "invest", "", "investment date YYYY-MM-DD")
	f.StringVar(&r.end, "end", "", "end date YYYY-MM-DD (default today)")
}

// compute runs one calculation and reports failures on stderr.
func (r *runner) compute(ctx context.Context, args []interface{}) (*models.YieldResult, subcommands.ExitStatus) {
	if len(args) == 0 {
		fmt.Fprintln(r.stderr, "missing configuration")
		return nil, subcommands.ExitFailure
	}
	cfg, ok := args[0].(*config.Config)
	if !ok {
		fmt.Fprintln(r.stderr, "missing configuration")
		return nil, subcommands.ExitFailure
	}
	if r.ticker == "" || r.invest == "" {
		fmt.Fprintln(r.stderr, "-ticker and -invest are required")
		return nil, subcommands.ExitUsageError
	}

	calc, cleanup, err := r.newCalc(cfg)
	if err != nil {
		fmt.Fprintln(r.stderr, "initialization failed:", err)
		return nil, subcommands.ExitFailure
	}
	defer cleanup()

	invest, end, err := calc.ParseDates(r.invest, r.end)
	if err != nil {
		fmt.Fprintln(r.stderr, err)
		return nil, subcommands.ExitUsageError
	}
	res, err := calc.Compute(ctx, r.ticker, invest, end)
	if err != nil {
		fmt.Fprintln(r.stderr, err)
		if errors.Is(err, models.ErrInvalidInput) {
			return nil, subcommands.ExitUsageError
		}
		return nil, subcommands.ExitFailure
	}
	return res, subcommands.ExitSuccess
}
