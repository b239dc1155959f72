// Package view renders the terminal chart screen and the analysis
// report for the plot mode.
package view

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/grynn/fplot/component/barchart"
	"github.com/grynn/fplot/series"
	"github.com/grynn/fplot/util/gradient"
)

// benchmarkColor is the muted color reserved for the SPY column so
// the requested tickers stand out.
var benchmarkColor = tcell.NewRGBColor(110, 110, 110)

// ChartData carries everything the chart screen shows.
type ChartData struct {
	Normalized *series.Frame
	Drawdowns  *series.Frame
	AUC        []series.TickerValue
	CAGR       []series.TickerValue
	Since      time.Time
	Interval   string
	Theme      string // "dark" or "light", already resolved from config
}

// NewChartView builds the chart screen: a sparkline panel of
// normalized prices over a drawdown-AUC bar panel.
func NewChartView(data *ChartData) tview.Primitive {
	colors := tickerColors(data.Normalized.Tickers)

	prices := tview.NewTextView().SetDynamicColors(true)
	prices.SetBorder(true).SetTitle(fmt.Sprintf(" %s (normalized to 100) ", strings.Join(data.Normalized.Tickers, ", ")))
	fmt.Fprint(prices, priceLines(data, colors))

	aucBars := make([]barchart.Bar, 0, len(data.AUC))
	for _, tv := range data.AUC {
		aucBars = append(aucBars, barchart.Bar{
			Label:    tv.Ticker,
			Value:    tv.Value,
			Color:    colors[tv.Ticker],
			UseColor: true,
		})
	}
	drawdowns := barchart.New().SetBars(aucBars).SetTheme(chartTheme(data.Theme))
	drawdowns.SetBorder(true)
	drawdowns.SetTitle(" drawdown area under curve ")

	from := "the beginning"
	if !data.Since.IsZero() {
		from = data.Since.Format("2006-01-02")
	}
	footer := tview.NewTextView().SetTextAlign(tview.AlignCenter)
	footer.SetText(fmt.Sprintf("from %s in %s intervals, q to quit", from, data.Interval))

	return tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(prices, 0, 3, false).
		AddItem(drawdowns, 0, 2, false).
		AddItem(footer, 1, 0, false)
}

// chartTheme maps the resolved theme name to a bar chart theme.
func chartTheme(name string) barchart.Theme {
	if name == "light" {
		return barchart.LightTheme()
	}
	return barchart.DefaultTheme()
}

// tickerColors assigns palette colors, keeping the benchmark grey.
func tickerColors(tickers []string) map[string]tcell.Color {
	palette := gradient.Palette(len(tickers))
	colors := make(map[string]tcell.Color, len(tickers))
	i := 0
	for _, t := range tickers {
		if t == "SPY" {
			colors[t] = benchmarkColor
			continue
		}
		colors[t] = palette[i]
		i++
	}
	return colors
}

// priceLines renders one colored sparkline row per ticker with its
// period return and CAGR when available.
func priceLines(data *ChartData, colors map[string]tcell.Color) string {
	cagrOf := make(map[string]float64, len(data.CAGR))
	for _, tv := range data.CAGR {
		cagrOf[tv.Ticker] = tv.Value
	}

	var b strings.Builder
	for _, ticker := range data.Normalized.Tickers {
		col := data.Normalized.Values[ticker]
		label := fmt.Sprintf("%-6s", ticker)
		spark := sparkline(col, 60)

		change := "n/a"
		if last := lastFinite(col); !math.IsNaN(last) {
			change = fmt.Sprintf("%+.2f%%", last-100)
		}
		extra := ""
		if cagr, ok := cagrOf[ticker]; ok && !math.IsNaN(cagr) {
			extra = fmt.Sprintf("  CAGR %.2f%%", cagr*100)
		}

		r, g, bl := colors[ticker].RGB()
		fmt.Fprintf(&b, "[#%02x%02x%02x]%s %s  %s%s[-]\n", r, g, bl, label, spark, change, extra)
	}
	return b.String()
}

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// sparkline downsamples a value column to width glyphs scaled to the
// column's own min/max.
func sparkline(values []float64, width int) string {
	var finite []float64
	for _, v := range values {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return strings.Repeat(" ", width)
	}
	if len(finite) < width {
		width = len(finite)
	}

	lo, hi := finite[0], finite[0]
	for _, v := range finite {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]rune, width)
	for i := 0; i < width; i++ {
		idx := i * (len(finite) - 1) / maxInt(width-1, 1)
		v := finite[idx]
		g := 0
		if hi > lo {
			g = int((v - lo) / (hi - lo) * float64(len(sparkGlyphs)-1))
		}
		out[i] = sparkGlyphs[g]
	}
	return string(out)
}

func lastFinite(values []float64) float64 {
	for i := len(values) - 1; i >= 0; i-- {
		if !math.IsNaN(values[i]) {
			return values[i]
		}
	}
	return math.NaN()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
