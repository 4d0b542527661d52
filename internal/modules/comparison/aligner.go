package comparison

import "fmt"

// AlignedReturns holds the independently derived return series of the three inputs.
// The series keep their own date indices; pairwise metrics join them on calendar day.
type AlignedReturns struct {
	A         ReturnSeries
	B         ReturnSeries
	Benchmark ReturnSeries
}

// Align validates the three inputs and derives their daily returns.
//
// It fails with EMPTY_SERIES when any series has no points, and with
// RETURN_CALC_FAILED when a series is not ordered by date or yields no
// defined return at all (for example a single-point series).
func Align(a, b, benchmark Instrument) (*AlignedReturns, error) {
	inputs := []Instrument{a, b, benchmark}

	for _, in := range inputs {
		if len(in.Prices) == 0 {
			return nil, &Failure{Reason: ReasonEmptySeries, Symbol: in.Symbol}
		}
	}

	derived := make([]ReturnSeries, len(inputs))
	for i, in := range inputs {
		if !in.Prices.StrictlyIncreasing() {
			return nil, &Failure{
				Reason: ReasonReturnCalcFailed,
				Symbol: in.Symbol,
				Detail: "dates are not strictly increasing",
			}
		}

		returns := DailyReturns(in.Prices)
		if len(returns) != len(in.Prices) || returns.DefinedCount() == 0 {
			return nil, &Failure{
				Reason: ReasonReturnCalcFailed,
				Symbol: in.Symbol,
				Detail: fmt.Sprintf("no daily return could be derived from %d price points", len(in.Prices)),
			}
		}
		derived[i] = returns
	}

	return &AlignedReturns{A: derived[0], B: derived[1], Benchmark: derived[2]}, nil
}
