package market

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fastjson"

	"github.com/grynn/fplot/series"
)

// benchmarkTicker is added to single-ticker history requests so every
// chart has a comparison column.
const benchmarkTicker = "SPY"

// History downloads adjusted-close history for the tickers and merges
// the per-ticker responses into one day-indexed frame. A single
// requested ticker gets the SPY benchmark added alongside it.
func (c *Client) History(ctx context.Context, tickers []string, since time.Time, interval string) (*series.Frame, error) {
	tickers = normalizeTickers(tickers)
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers given")
	}
	if len(tickers) == 1 && tickers[0] != benchmarkTicker {
		tickers = append(tickers, benchmarkTicker)
	}

	type column struct {
		dates  []time.Time
		values []float64
	}
	columns := make(map[string]column, len(tickers))

	for _, ticker := range tickers {
		body, err := c.fetchChart(ctx, ticker, since, interval)
		if err != nil {
			return nil, err
		}
		dates, values, err := c.parseChart(body, ticker)
		if err != nil {
			return nil, err
		}
		columns[ticker] = column{dates: dates, values: values}
	}

	// Union of all dates, sorted, one row per day.
	seen := make(map[time.Time]bool)
	var allDates []time.Time
	for _, col := range columns {
		for _, d := range col.dates {
			if !seen[d] {
				seen[d] = true
				allDates = append(allDates, d)
			}
		}
	}
	sort.Slice(allDates, func(i, j int) bool { return allDates[i].Before(allDates[j]) })

	frame := series.NewFrame(allDates, tickers)
	rowOf := make(map[time.Time]int, len(allDates))
	for i, d := range allDates {
		rowOf[d] = i
	}
	for ticker, col := range columns {
		dst := frame.Values[ticker]
		for i, d := range col.dates {
			dst[rowOf[d]] = col.values[i]
		}
	}
	return frame, nil
}

// Spot returns the last traded price for a ticker.
func (c *Client) Spot(ctx context.Context, ticker string) (float64, error) {
	query := url.Values{}
	query.Set("range", "1d")
	query.Set("interval", "1d")

	body, err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(strings.ToUpper(ticker)), query)
	if err != nil {
		return 0, err
	}

	var spot float64
	err = c.parse(body, func(v *fastjson.Value) error {
		result := v.Get("chart", "result", "0")
		if result == nil {
			return fmt.Errorf("no chart data for %s", ticker)
		}
		spot = result.GetFloat64("meta", "regularMarketPrice")
		if spot == 0 {
			// fall back to the last close
			closes := result.GetArray("indicators", "quote", "0", "close")
			for i := len(closes) - 1; i >= 0; i-- {
				if closes[i].Type() == fastjson.TypeNumber {
					spot = closes[i].GetFloat64()
					break
				}
			}
		}
		if spot == 0 {
			return fmt.Errorf("no price for %s", ticker)
		}
		return nil
	})
	return spot, err
}

func (c *Client) fetchChart(ctx context.Context, ticker string, since time.Time, interval string) ([]byte, error) {
	query := url.Values{}
	query.Set("interval", interval)
	query.Set("events", "div,splits")
	query.Set("period2", strconv.FormatInt(time.Now().Unix(), 10))
	if since.IsZero() {
		// "max": let the endpoint return everything it has
		query.Set("period1", "0")
	} else {
		query.Set("period1", strconv.FormatInt(since.Unix(), 10))
	}
	return c.get(ctx, "/v8/finance/chart/"+url.PathEscape(ticker), query)
}

// parseChart extracts (date, adjusted close) pairs from a v8 chart
// response, preferring adjclose and falling back to raw close. Null
// rows are dropped.
func (c *Client) parseChart(body []byte, ticker string) ([]time.Time, []float64, error) {
	var dates []time.Time
	var values []float64

	err := c.parse(body, func(v *fastjson.Value) error {
		if errVal := v.Get("chart", "error"); errVal != nil && errVal.Type() != fastjson.TypeNull {
			return fmt.Errorf("chart error for %s: %s", ticker, errVal.GetStringBytes("description"))
		}
		result := v.Get("chart", "result", "0")
		if result == nil {
			return fmt.Errorf("no chart data for %s", ticker)
		}

		timestamps := result.GetArray("timestamp")
		closes := result.GetArray("indicators", "adjclose", "0", "adjclose")
		if closes == nil {
			closes = result.GetArray("indicators", "quote", "0", "close")
		}
		if len(timestamps) == 0 || len(timestamps) != len(closes) {
			return fmt.Errorf("malformed chart data for %s", ticker)
		}

		for i, ts := range timestamps {
			if closes[i].Type() != fastjson.TypeNumber {
				continue
			}
			price := closes[i].GetFloat64()
			if math.IsNaN(price) {
				continue
			}
			day := time.Unix(ts.GetInt64(), 0).UTC()
			dates = append(dates, time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))
			values = append(values, price)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return dates, values, nil
}

func normalizeTickers(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	var out []string
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
