package comparison

// Compare runs the full pipeline: align, derive returns, compute metrics, rank by beta.
// It returns either a complete Result or the first *Failure; never both.
func Compare(in Input) (*Result, error) {
	aligned, err := Align(in.A, in.B, in.Benchmark)
	if err != nil {
		return nil, err
	}

	a := analyse(in.A.Symbol, aligned.A, aligned.Benchmark)
	b := analyse(in.B.Symbol, aligned.B, aligned.Benchmark)

	return &Result{
		A: a,
		B: b,
		Benchmark: BenchmarkAnalysis{
			Symbol:       in.Benchmark.Symbol,
			DailyReturns: aligned.Benchmark,
			Volatility:   Volatility(aligned.Benchmark),
		},
		MoreVolatile: MoreVolatile(a.Beta, b.Beta),
	}, nil
}

func analyse(symbol string, returns, benchmark ReturnSeries) InstrumentAnalysis {
	return InstrumentAnalysis{
		Symbol:            symbol,
		DailyReturns:      returns,
		CumulativeReturns: CumulativeReturns(returns),
		Volatility:        Volatility(returns),
		Beta:              Beta(returns, benchmark),
		TrackingError:     TrackingError(returns, benchmark),
	}
}
