package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/grynn/fplot/series"
)

// BuildReport assembles the analysis tables as markdown: drawdown
// AUC always, CAGR for spans over a year, rolling median returns for
// spans over two years.
func BuildReport(auc, cagr, rolling []series.TickerValue) string {
	var b strings.Builder

	b.WriteString("## Drawdown Area Under Curve\n\n")
	writeTable(&b, "AUC", auc, func(v float64) string { return fmt.Sprintf("%.2f", v) })
	b.WriteString("\nHigher values indicate greater drawdowns over time.\n")

	if len(cagr) > 0 {
		b.WriteString("\n## Compound Annual Growth Rate\n\n")
		writeTable(&b, "CAGR", cagr, formatPercent)
		b.WriteString("\nCAGR represents annualized return over the period.\n")
	}

	if len(rolling) > 0 {
		b.WriteString("\n## Rolling Median 1y Return\n\n")
		writeTable(&b, "Return", rolling, formatPercent)
	}

	return b.String()
}

// RenderReport renders the markdown report for the terminal via
// glamour, falling back to the raw markdown when no renderer can be
// built (dumb terminals, pipes).
func RenderReport(markdown string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

func writeTable(b *strings.Builder, valueHeader string, rows []series.TickerValue, format func(float64) string) {
	fmt.Fprintf(b, "| Ticker | %s |\n", valueHeader)
	b.WriteString("|---|---|\n")
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", row.Ticker, format(row.Value))
	}
}

func formatPercent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}
