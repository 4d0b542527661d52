// Package charts builds chart payloads and the textual conclusion for a comparison result.
// Payloads are plain data; rendering is left to the client.
package charts

import (
	"fmt"
	"strings"

	"github.com/aristath/benchcompare/internal/domain"
	"github.com/aristath/benchcompare/internal/modules/comparison"
)

// ChartDataPoint represents a single point on a chart
type ChartDataPoint struct {
	Time  string  `json:"time"` // YYYY-MM-DD format
	Value float64 `json:"value"`
}

// Series is one named line on a line chart.
type Series struct {
	Name   string           `json:"name"`
	Points []ChartDataPoint `json:"points"`
}

// LineChart is a titled set of series over dates.
type LineChart struct {
	Title  string   `json:"title"`
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	Series []Series `json:"series"`
}

// Bar is one bar with its display label. Value is nil when the metric is undefined.
type Bar struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"`
	Text  string   `json:"text"`
}

// BarChart is a titled set of bars.
type BarChart struct {
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	Bars   []Bar  `json:"bars"`
}

// ComparisonCharts bundles everything the UI shows for one comparison.
type ComparisonCharts struct {
	DailyReturns      LineChart `json:"daily_returns"`
	CumulativeReturns LineChart `json:"cumulative_returns"`
	Volatility        BarChart  `json:"volatility"`
	Conclusion        string    `json:"conclusion"`
}

// BuildComparisonCharts derives the three charts and the conclusion from a result.
func BuildComparisonCharts(result *comparison.Result, days int) ComparisonCharts {
	a, b := result.A.Symbol, result.B.Symbol

	return ComparisonCharts{
		DailyReturns: LineChart{
			Title:  fmt.Sprintf("Daily Returns for %s and %s (Last %d Days)", a, b, days),
			XLabel: "Date",
			YLabel: "Daily Return",
			Series: []Series{
				{Name: a, Points: returnPoints(result.A.DailyReturns)},
				{Name: b, Points: returnPoints(result.B.DailyReturns)},
			},
		},
		CumulativeReturns: LineChart{
			Title:  fmt.Sprintf("Cumulative Returns for %s and %s (Last %d Days)", a, b, days),
			XLabel: "Date",
			YLabel: "Cumulative Return",
			Series: []Series{
				{Name: a, Points: cumulativePoints(result.A.CumulativeReturns)},
				{Name: b, Points: cumulativePoints(result.B.CumulativeReturns)},
			},
		},
		Volatility: BarChart{
			Title:  fmt.Sprintf("Volatility Comparison (Last %d Days)", days),
			XLabel: "Stock",
			YLabel: "Volatility (Standard Deviation)",
			Bars: []Bar{
				metricBar(a, result.A.Volatility),
				metricBar(b, result.B.Volatility),
			},
		},
		Conclusion: Conclusion(result),
	}
}

// Conclusion states which instrument is more volatile relative to the benchmark.
func Conclusion(result *comparison.Result) string {
	if more := result.MoreVolatileSymbol(); more != "" {
		return fmt.Sprintf("%s is more volatile (higher Beta) compared to %s.", more, result.LessVolatileSymbol())
	}

	var missing []string
	for _, inst := range []comparison.InstrumentAnalysis{result.A, result.B} {
		if !inst.Beta.Defined() {
			missing = append(missing, fmt.Sprintf("%s (%s)", inst.Symbol, inst.Beta.Reason))
		}
	}
	return fmt.Sprintf(
		"Could not determine whether %s or %s is more volatile: Beta is undefined for %s.",
		result.A.Symbol, result.B.Symbol, strings.Join(missing, " and "),
	)
}

// Missing returns are omitted rather than plotted as zero.
func returnPoints(series comparison.ReturnSeries) []ChartDataPoint {
	points := make([]ChartDataPoint, 0, len(series))
	for _, p := range series {
		if p.Return == nil {
			continue
		}
		points = append(points, ChartDataPoint{Time: domain.DayKey(p.Date), Value: *p.Return})
	}
	return points
}

func cumulativePoints(series comparison.CumulativeSeries) []ChartDataPoint {
	points := make([]ChartDataPoint, 0, len(series))
	for _, p := range series {
		if p.Value == nil {
			continue
		}
		points = append(points, ChartDataPoint{Time: domain.DayKey(p.Date), Value: *p.Value})
	}
	return points
}

func metricBar(label string, m comparison.Metric) Bar {
	v, ok := m.Float()
	if !ok {
		return Bar{Label: label, Text: "n/a"}
	}
	return Bar{Label: label, Value: &v, Text: fmt.Sprintf("%.4f", v)}
}
