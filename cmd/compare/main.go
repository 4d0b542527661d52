// Command compare compares the volatility of two instruments against a benchmark from the command line.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&compareCmd{}, "analysis")
	commander.Register(&fetchCmd{}, "data")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
