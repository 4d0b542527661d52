package comparison

import (
	"time"

	"github.com/aristath/benchcompare/internal/domain"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// dailySeries builds a price series on consecutive calendar days from start.
func dailySeries(prices ...float64) domain.PriceSeries {
	s := make(domain.PriceSeries, len(prices))
	for i, p := range prices {
		s[i] = domain.PricePoint{Date: start.AddDate(0, 0, i), Close: p}
	}
	return s
}

// returnSeries builds a return series on consecutive calendar days; nil entries are missing.
func returnSeries(values ...*float64) ReturnSeries {
	s := make(ReturnSeries, len(values))
	for i, v := range values {
		s[i] = ReturnPoint{Date: start.AddDate(0, 0, i), Return: v}
	}
	return s
}

func f(v float64) *float64 { return &v }

// fromFloats builds a return series with a leading missing value followed by values.
func fromFloats(values ...float64) ReturnSeries {
	ptrs := make([]*float64, 0, len(values)+1)
	ptrs = append(ptrs, nil)
	for _, v := range values {
		ptrs = append(ptrs, f(v))
	}
	return returnSeries(ptrs...)
}

func scale(s ReturnSeries, k float64) ReturnSeries {
	out := make(ReturnSeries, len(s))
	for i, p := range s {
		out[i] = ReturnPoint{Date: p.Date}
		if p.Return != nil {
			out[i].Return = f(*p.Return * k)
		}
	}
	return out
}
