package comparison

import (
	"github.com/aristath/benchcompare/internal/domain"
	"github.com/aristath/benchcompare/pkg/formulas"
)

// DailyReturns converts a price series to simple daily returns.
//
// r[i] = p[i]/p[i-1] - 1 for i >= 1. r[0] is always missing. A return is also
// missing when either price is absent or the prior price is zero, so a gap
// never turns into an infinite or NaN value.
func DailyReturns(prices domain.PriceSeries) ReturnSeries {
	returns := make(ReturnSeries, len(prices))
	for i, p := range prices {
		returns[i] = ReturnPoint{Date: p.Date}
		if i == 0 {
			continue
		}

		prev := prices[i-1]
		if !p.HasPrice() || !prev.HasPrice() || prev.Close == 0 {
			continue
		}

		r := p.Close/prev.Close - 1
		if !formulas.IsFinite(r) {
			continue
		}
		returns[i].Return = &r
	}
	return returns
}

// CumulativeReturns compounds daily returns: cum[i] = prod(1+r[k], k<=i, r[k] defined) - 1.
//
// Missing returns contribute a factor of one. The leading missing return therefore
// yields cum[0] = 0, the empty product minus one. Once the running product
// overflows, that point and every later one have a nil Value.
func CumulativeReturns(returns ReturnSeries) CumulativeSeries {
	cumulative := make(CumulativeSeries, len(returns))
	growth := 1.0
	for i, p := range returns {
		cumulative[i] = CumulativePoint{Date: p.Date}
		if p.Return != nil {
			growth *= 1 + *p.Return
		}
		if !formulas.IsFinite(growth) {
			continue
		}
		v := growth - 1
		cumulative[i].Value = &v
	}
	return cumulative
}
