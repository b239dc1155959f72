// Package barchart draws horizontal-labeled vertical bar charts on a
// tcell screen, used for the drawdown-AUC panel of the chart view.
package barchart

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/grynn/fplot/util/gradient"
)

// Bar is one labeled value.
type Bar struct {
	Label    string
	Value    float64
	Color    tcell.Color
	UseColor bool // when false the theme gradient colors the bar
}

// Theme controls bar rendering.
type Theme struct {
	BarChar         rune
	BarWidth        int
	BarGap          int
	BarGradientFrom [3]int
	BarGradientTo   [3]int
	BackgroundColor tcell.Color
	LabelColor      tcell.Color
}

// DefaultTheme is tuned for dark terminals.
func DefaultTheme() Theme {
	return Theme{
		BarChar:         '█',
		BarWidth:        6,
		BarGap:          2,
		BarGradientFrom: [3]int{180, 40, 40},
		BarGradientTo:   [3]int{250, 200, 80},
		BackgroundColor: tcell.ColorDefault,
		LabelColor:      tcell.ColorWhite,
	}
}

// LightTheme darkens the gradient and labels for light terminals.
func LightTheme() Theme {
	return Theme{
		BarChar:         '█',
		BarWidth:        6,
		BarGap:          2,
		BarGradientFrom: [3]int{140, 20, 20},
		BarGradientTo:   [3]int{190, 110, 0},
		BackgroundColor: tcell.ColorDefault,
		LabelColor:      tcell.ColorBlack,
	}
}

// BarChart is a tview primitive rendering a vertical bar chart.
type BarChart struct {
	*tview.Box
	bars  []Bar
	theme Theme
}

// New creates an empty bar chart with the default theme.
func New() *BarChart {
	return &BarChart{Box: tview.NewBox(), theme: DefaultTheme()}
}

// SetBars replaces the chart content.
func (c *BarChart) SetBars(bars []Bar) *BarChart {
	c.bars = bars
	return c
}

// SetTheme replaces the chart theme.
func (c *BarChart) SetTheme(theme Theme) *BarChart {
	c.theme = theme
	return c
}

// Draw implements tview.Primitive.
func (c *BarChart) Draw(screen tcell.Screen) {
	c.Box.DrawForSubclass(screen, c)
	x, y, width, height := c.GetInnerRect()
	if width <= 0 || height <= 2 || len(c.bars) == 0 {
		return
	}

	// one row for labels, one for values, rest for bars
	plotHeight := height - 2
	maxValue := 0.0
	for _, bar := range c.bars {
		if bar.Value > maxValue {
			maxValue = bar.Value
		}
	}
	if maxValue == 0 {
		maxValue = 1
	}

	barWidth, barGap := computeBarLayout(width, len(c.bars), c.theme.BarWidth, c.theme.BarGap)
	if barWidth == 0 {
		return
	}

	bottomY := y + plotHeight - 1
	for i, bar := range c.bars {
		barX := x + i*(barWidth+barGap)
		barHeight := valueToHeight(bar.Value, maxValue, plotHeight)
		drawBarSolid(screen, barX, bottomY, barWidth, barHeight, bar, c.theme)

		labelStyle := tcell.StyleDefault.Foreground(c.theme.LabelColor).Background(c.theme.BackgroundColor)
		printClipped(screen, bar.Label, barX, bottomY+1, barWidth+barGap-1, labelStyle)
		printClipped(screen, fmt.Sprintf("%.2f", bar.Value), barX, bottomY+2, barWidth+barGap-1, labelStyle)
	}
}

// computeBarLayout shrinks bar width and gap until the bars fit the
// available width; returns 0 width when even single-cell bars do not.
func computeBarLayout(width, count, barWidth, barGap int) (int, int) {
	for barWidth > 0 {
		needed := count*barWidth + (count-1)*barGap
		if needed <= width {
			return barWidth, barGap
		}
		if barGap > 1 {
			barGap--
			continue
		}
		barWidth--
	}
	return 0, 0
}

// valueToHeight maps a value to a bar height in rows, at least 1 for
// positive values.
func valueToHeight(value, maxValue float64, plotHeight int) int {
	if value <= 0 || maxValue <= 0 {
		return 0
	}
	h := int(value / maxValue * float64(plotHeight))
	if h < 1 {
		h = 1
	}
	if h > plotHeight {
		h = plotHeight
	}
	return h
}

func drawBarSolid(screen tcell.Screen, x, bottomY, width, height int, bar Bar, theme Theme) {
	for row := 0; row < height; row++ {
		color := barFillColor(bar, row, height, theme)
		style := tcell.StyleDefault.Foreground(color).Background(theme.BackgroundColor)
		y := bottomY - row
		for col := 0; col < width; col++ {
			screen.SetContent(x+col, y, theme.BarChar, nil, style)
		}
	}
}

func barFillColor(bar Bar, row, total int, theme Theme) tcell.Color {
	if bar.UseColor {
		return bar.Color
	}
	if total <= 1 {
		return gradient.InterpolateColor(theme.BarGradientFrom, theme.BarGradientTo, 0)
	}
	t := float64(row) / float64(total-1)
	return gradient.InterpolateColor(theme.BarGradientFrom, theme.BarGradientTo, t)
}

func printClipped(screen tcell.Screen, text string, x, y, maxWidth int, style tcell.Style) {
	col := 0
	for _, r := range text {
		if col >= maxWidth {
			break
		}
		screen.SetContent(x+col, y, r, nil, style)
		col++
	}
}
