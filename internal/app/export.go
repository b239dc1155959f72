package app

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/grynn/fplot/option"
	"github.com/grynn/fplot/series"
)

// exportContractsCSV dumps a contract listing for offline inspection
// of the filter and metric outputs.
func exportContractsCSV(path string, contracts []*option.Contract) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"ticker", "kind", "strike", "expiry", "dte", "last_price", "volume", "return", "spot"}); err != nil {
		return err
	}
	for _, c := range contracts {
		row := []string{
			c.Ticker,
			c.Kind.Letter(),
			formatFloat(c.Strike),
			c.Expiry.Format("2006-01-02"),
			strconv.Itoa(c.DTE),
			formatFloat(c.LastPrice),
			formatFloat(c.Volume),
			formatFloat(c.Return),
			formatFloat(c.Spot),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// exportFrameCSV dumps the downloaded price frame, one row per date,
// one column per ticker. Gaps export as empty cells.
func exportFrameCSV(path string, frame *series.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	header := append([]string{"date"}, frame.Tickers...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, date := range frame.Dates {
		row := make([]string, 0, len(frame.Tickers)+1)
		row = append(row, date.Format("2006-01-02"))
		for _, ticker := range frame.Tickers {
			v := frame.Values[ticker][i]
			if math.IsNaN(v) {
				row = append(row, "")
			} else {
				row = append(row, formatFloat(v))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
