package series

import (
	"math"
	"sort"
)

// Normalize rescales every column so its first finite value becomes
// start (conventionally 100), leaving relative moves intact.
func Normalize(f *Frame, start float64) *Frame {
	out := NewFrame(f.Dates, f.Tickers)
	for _, t := range f.Tickers {
		src := f.Values[t]
		base := math.NaN()
		for _, v := range src {
			if !math.IsNaN(v) {
				base = v
				break
			}
		}
		dst := out.Values[t]
		for i, v := range src {
			if math.IsNaN(v) || math.IsNaN(base) || base == 0 {
				continue
			}
			dst[i] = v / base * start
		}
	}
	return out
}

// Drawdowns returns value/runningMax - 1 per column: 0 at new highs,
// negative below them.
func Drawdowns(f *Frame) *Frame {
	out := NewFrame(f.Dates, f.Tickers)
	for _, t := range f.Tickers {
		src := f.Values[t]
		dst := out.Values[t]
		peak := math.NaN()
		for i, v := range src {
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(peak) || v > peak {
				peak = v
			}
			dst[i] = v/peak - 1
		}
	}
	return out
}

// TickerValue pairs a ticker with one derived statistic.
type TickerValue struct {
	Ticker string
	Value  float64
}

// AUC integrates |drawdown| per ticker with the trapezoidal rule over
// the row index and returns tickers sorted by area, largest first.
// Higher values mean deeper or longer drawdowns over the period.
func AUC(drawdowns *Frame) []TickerValue {
	out := make([]TickerValue, 0, len(drawdowns.Tickers))
	for _, t := range drawdowns.Tickers {
		col := drawdowns.Values[t]
		var xs []float64
		for _, v := range col {
			if !math.IsNaN(v) {
				xs = append(xs, math.Abs(v))
			}
		}
		area := 0.0
		if len(xs) > 1 {
			for i := 1; i < len(xs); i++ {
				area += (xs[i] + xs[i-1]) / 2
			}
		}
		out = append(out, TickerValue{Ticker: t, Value: area})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// CAGR computes (end/start)^(1/years) - 1 per ticker, sorted
// descending. Returns nil when the frame spans less than a year,
// where annualizing is noise.
func CAGR(f *Frame) []TickerValue {
	if f.Days() < 365 {
		return nil
	}
	years := f.Years()

	out := make([]TickerValue, 0, len(f.Tickers))
	for _, t := range f.Tickers {
		start, end := firstLast(f.Values[t])
		if math.IsNaN(start) || math.IsNaN(end) || start <= 0 {
			out = append(out, TickerValue{Ticker: t, Value: math.NaN()})
			continue
		}
		out = append(out, TickerValue{Ticker: t, Value: math.Pow(end/start, 1/years) - 1})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Value, out[j].Value
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		if math.IsNaN(a) {
			return false
		}
		return a > b
	})
	return out
}

// twoYearsDays gates the rolling window: anything shorter has too few
// one-year windows for a median to mean much.
const twoYearsDays = 730

// RollingCAGRMedian computes the median one-year rolling return per
// ticker. Returns nil for frames spanning less than two years.
func RollingCAGRMedian(f *Frame) []TickerValue {
	if f.Days() < twoYearsDays {
		return nil
	}

	out := make([]TickerValue, 0, len(f.Tickers))
	for _, t := range f.Tickers {
		col := f.Values[t]
		var returns []float64
		for i := range f.Dates {
			target := f.Dates[i].AddDate(1, 0, 0)
			j := sort.Search(len(f.Dates), func(k int) bool { return !f.Dates[k].Before(target) })
			if j >= len(f.Dates) {
				break
			}
			if math.IsNaN(col[i]) || math.IsNaN(col[j]) || col[i] <= 0 {
				continue
			}
			returns = append(returns, col[j]/col[i]-1)
		}
		out = append(out, TickerValue{Ticker: t, Value: median(returns)})
	}
	return out
}

func firstLast(col []float64) (first, last float64) {
	first, last = math.NaN(), math.NaN()
	for _, v := range col {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(first) {
			first = v
		}
		last = v
	}
	return first, last
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
