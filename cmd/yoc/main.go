// Command yoc computes the yield on cost of a single position from a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"DivYield/pkg/config"

	"github.com/google/subcommands"
)

func main() {
	configPath := flag.String("config", "", "config file path (defaults and environment only when empty)")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range commands() {
		commander.Register(c, "")
	}

	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config load failed:", err)
		os.Exit(int(subcommands.ExitFailure))
	}
	// keep stdout for results
	cfg.Logger.Output = "stderr"
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.Logger.Level = "warn"
	}

	os.Exit(int(commander.Execute(context.Background(), cfg)))
}

func commands() []subcommands.Command {
	return []subcommands.Command{
		&CalcCmd{runner: newRunner()},
		&ExportCmd{runner: newRunner()},
	}
}
