package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aristath/benchcompare/internal/config"
	"github.com/aristath/benchcompare/internal/modules/charts"
	"github.com/aristath/benchcompare/internal/modules/comparison"
	"github.com/aristath/benchcompare/internal/services"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/subcommands"
)

type compareCmd struct {
	symbolA   string
	symbolB   string
	days      int
	benchmark string
	asJSON    bool
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the volatility of two instruments against a benchmark" }
func (*compareCmd) Usage() string {
	return `compare -a <symbol> -b <symbol> [-days <n>] [-benchmark <symbol>] [-json]

  Fetches daily prices for both instruments and the benchmark over the last
  <n> calendar days and prints volatility, beta and tracking error (MSE)
  for each, followed by which of the two is more volatile.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbolA, "a", "", "First instrument symbol (required)")
	f.StringVar(&c.symbolB, "b", "", "Second instrument symbol (required)")
	f.IntVar(&c.days, "days", 365, "Trailing window in calendar days")
	f.StringVar(&c.benchmark, "benchmark", "", "Benchmark symbol (defaults to BENCHMARK_SYMBOL or ^NSEI)")
	f.BoolVar(&c.asJSON, "json", false, "Print the full result as JSON")
}

func (c *compareCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbolA == "" || c.symbolB == "" {
		fmt.Fprintln(os.Stderr, "Error: -a and -b are required.")
		return subcommands.ExitUsageError
	}

	container, _, err := openContainer(func(cfg *config.Config) {
		if c.benchmark != "" {
			cfg.Benchmark = c.benchmark
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer container.Close()

	outcome, err := container.ComparisonService.Compare(ctx, services.Request{
		SymbolA:    c.symbolA,
		SymbolB:    c.symbolB,
		WindowDays: c.days,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, services.ErrInvalidRequest) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}

	if c.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcome); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	writeOutcome(os.Stdout, outcome)
	return subcommands.ExitSuccess
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

// writeOutcome prints the metrics table and the conclusion.
func writeOutcome(w io.Writer, outcome *services.Outcome) {
	result := outcome.Result

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf(
		"%s vs %s against %s (last %d days)",
		result.A.Symbol, result.B.Symbol, outcome.Benchmark, outcome.Days,
	)))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Symbol", "Volatility", "Beta", "Tracking error (MSE)", "Returns").
		Row(instrumentRow(result.A)...).
		Row(instrumentRow(result.B)...).
		Row(result.Benchmark.Symbol, formatMetric(result.Benchmark.Volatility), "", "",
			fmt.Sprintf("%d", result.Benchmark.DailyReturns.DefinedCount()))
	fmt.Fprintln(w, t.String())

	fmt.Fprintln(w, charts.Conclusion(result))

	if undefined := result.UndefinedMetrics(); len(undefined) > 0 {
		msgs := make([]string, len(undefined))
		for i, err := range undefined {
			msgs[i] = err.Error()
		}
		fmt.Fprintln(w, mutedStyle.Render(strings.Join(msgs, "\n")))
	}
}

func instrumentRow(a comparison.InstrumentAnalysis) []string {
	return []string{
		a.Symbol,
		formatMetric(a.Volatility),
		formatMetric(a.Beta),
		formatMetric(a.TrackingError),
		fmt.Sprintf("%d", a.DailyReturns.DefinedCount()),
	}
}

func formatMetric(m comparison.Metric) string {
	v, ok := m.Float()
	if !ok {
		return "n/a (" + string(m.Reason) + ")"
	}
	return fmt.Sprintf("%.6f", v)
}
