package series

import "math"

// Technical indicators over one price column. Outputs are positionally
// aligned with the input; positions where an indicator is undefined
// (warm-up window, NaN gaps) hold the indicator's neutral value or NaN
// as noted per function.

// MovingAverage returns the simple moving average over a trailing
// window. Positions before the window fills, or whose window contains
// a gap, are NaN.
func MovingAverage(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
		if i+1 < period {
			continue
		}
		sum := 0.0
		ok := true
		for j := i + 1 - period; j <= i; j++ {
			if math.IsNaN(values[j]) {
				ok = false
				break
			}
			sum += values[j]
		}
		if ok {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// RSI returns the relative strength index over a trailing window of
// price changes: 100 - 100/(1+avgGain/avgLoss). Undefined positions
// (warm-up, gaps, flat windows) are the neutral 50; an all-gain window
// is 100 and an all-loss window is 0.
func RSI(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = 50
		if i < period {
			continue
		}
		avgGain, avgLoss := 0.0, 0.0
		ok := true
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(values[j]) || math.IsNaN(values[j-1]) {
				ok = false
				break
			}
			delta := values[j] - values[j-1]
			if delta > 0 {
				avgGain += delta
			} else {
				avgLoss -= delta
			}
		}
		if !ok {
			continue
		}
		avgGain /= float64(period)
		avgLoss /= float64(period)
		switch {
		case avgLoss == 0 && avgGain == 0:
			// flat window stays neutral
		case avgLoss == 0:
			out[i] = 100
		default:
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}

// MACD returns the moving average convergence divergence line
// (EMA12 - EMA26), its EMA9 signal line, and their difference as the
// histogram. Gaps carry the previous EMA state and emit 0, keeping the
// outputs JSON-friendly.
func MACD(values []float64) (macd, signal, histogram []float64) {
	fast := ema(values, 12)
	slow := ema(values, 26)

	macd = make([]float64, len(values))
	for i := range macd {
		if math.IsNaN(fast[i]) || math.IsNaN(slow[i]) {
			macd[i] = 0
			continue
		}
		macd[i] = fast[i] - slow[i]
	}

	signal = ema(macd, 9)
	histogram = make([]float64, len(values))
	for i := range histogram {
		if math.IsNaN(signal[i]) {
			signal[i] = 0
		}
		histogram[i] = macd[i] - signal[i]
	}
	return macd, signal, histogram
}

// ema computes an exponential moving average with alpha = 2/(span+1),
// seeded at the first finite value. NaN inputs leave the running state
// untouched and emit NaN.
func ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	alpha := 2.0 / float64(span+1)
	state := math.NaN()
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}
		if math.IsNaN(state) {
			state = v
		} else {
			state = alpha*v + (1-alpha)*state
		}
		out[i] = state
	}
	return out
}
