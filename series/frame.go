// Package series holds dated price frames and the derived statistics
// shown by the plot mode: normalization, drawdowns, drawdown AUC and
// growth rates.
package series

import (
	"fmt"
	"math"
	"time"
)

// Frame is a column-per-ticker table of values over a shared date
// index, the Go shape of the adjusted-close download.
type Frame struct {
	Dates   []time.Time
	Tickers []string
	Values  map[string][]float64 // ticker -> one value per date, NaN for gaps
}

// NewFrame allocates an empty frame for the given tickers and dates.
func NewFrame(dates []time.Time, tickers []string) *Frame {
	values := make(map[string][]float64, len(tickers))
	for _, t := range tickers {
		col := make([]float64, len(dates))
		for i := range col {
			col[i] = math.NaN()
		}
		values[t] = col
	}
	return &Frame{Dates: dates, Tickers: tickers, Values: values}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Dates)
}

// Days returns the calendar days covered by the frame.
func (f *Frame) Days() int {
	if f.Len() < 2 {
		return 0
	}
	return int(f.Dates[f.Len()-1].Sub(f.Dates[0]).Hours() / 24)
}

// Years returns the span in years using the 365.25-day convention.
func (f *Frame) Years() float64 {
	return float64(f.Days()) / 365.25
}

// Validate checks the frame is rectangular and date-sorted.
func (f *Frame) Validate() error {
	for _, t := range f.Tickers {
		col, ok := f.Values[t]
		if !ok {
			return fmt.Errorf("frame missing column %s", t)
		}
		if len(col) != len(f.Dates) {
			return fmt.Errorf("column %s has %d rows, frame has %d", t, len(col), len(f.Dates))
		}
	}
	for i := 1; i < len(f.Dates); i++ {
		if !f.Dates[i].After(f.Dates[i-1]) {
			return fmt.Errorf("dates not strictly increasing at row %d", i)
		}
	}
	return nil
}

// DropIncompleteLastRow removes the final row when any ticker has no
// value there. Mixed exchanges and delistings routinely leave the
// last row partially filled.
func (f *Frame) DropIncompleteLastRow() bool {
	n := f.Len()
	if n == 0 {
		return false
	}
	incomplete := false
	for _, t := range f.Tickers {
		if math.IsNaN(f.Values[t][n-1]) {
			incomplete = true
			break
		}
	}
	if !incomplete {
		return false
	}
	f.Dates = f.Dates[:n-1]
	for _, t := range f.Tickers {
		f.Values[t] = f.Values[t][:n-1]
	}
	return true
}
