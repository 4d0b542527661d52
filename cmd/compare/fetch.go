package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aristath/benchcompare/internal/domain"
	"github.com/google/subcommands"
)

type fetchCmd struct {
	symbol string
	days   int
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "print the daily adjusted closes of a symbol" }
func (*fetchCmd) Usage() string {
	return `fetch -symbol <symbol> [-days <n>]

  Prints one "date close" line per trading day over the last <n> calendar
  days. Results go through the local price cache.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Symbol to fetch (required)")
	f.IntVar(&c.days, "days", 30, "Trailing window in calendar days")
}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.days < 1 {
		fmt.Fprintln(os.Stderr, "Error: -symbol is required and -days must be positive.")
		return subcommands.ExitUsageError
	}

	container, _, err := openContainer(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer container.Close()

	symbol := container.Config.ResolveSymbol(c.symbol)
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	series, err := container.PriceHistoryService.GetDailyPrices(ctx, symbol, domain.TrailingWindow(today, c.days))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", symbol, err)
		return subcommands.ExitFailure
	}
	if len(series) == 0 {
		fmt.Fprintf(os.Stderr, "No data for %s in the last %d days.\n", symbol, c.days)
		return subcommands.ExitFailure
	}

	writeSeries(os.Stdout, series)
	return subcommands.ExitSuccess
}

func writeSeries(w io.Writer, series domain.PriceSeries) {
	for _, p := range series {
		fmt.Fprintf(w, "%s %.4f\n", p.DayKey(), p.Close)
	}
}
