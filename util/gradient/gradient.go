// Package gradient provides the RGB interpolation used to color
// chart lines and bars.
package gradient

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// InterpolateRGB performs linear RGB interpolation with proper rounding.
// t should be in [0, 1] range (automatically clamped).
func InterpolateRGB(from, to [3]int, t float64) [3]int {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	return [3]int{
		int(math.Round(float64(from[0]) + t*float64(to[0]-from[0]))),
		int(math.Round(float64(from[1]) + t*float64(to[1]-from[1]))),
		int(math.Round(float64(from[2]) + t*float64(to[2]-from[2]))),
	}
}

// InterpolateColor is a convenience wrapper returning tcell.Color.
func InterpolateColor(from, to [3]int, t float64) tcell.Color {
	rgb := InterpolateRGB(from, to, t)
	//nolint:gosec // G115: RGB values are 0-255, safe to convert to int32
	return tcell.NewRGBColor(int32(rgb[0]), int32(rgb[1]), int32(rgb[2]))
}

// Palette returns n visually distinct line colors for tickers,
// cycling a fixed tab10-like wheel.
func Palette(n int) []tcell.Color {
	wheel := []tcell.Color{
		tcell.NewRGBColor(31, 119, 180),
		tcell.NewRGBColor(255, 127, 14),
		tcell.NewRGBColor(44, 160, 44),
		tcell.NewRGBColor(214, 39, 40),
		tcell.NewRGBColor(148, 103, 189),
		tcell.NewRGBColor(140, 86, 75),
		tcell.NewRGBColor(227, 119, 194),
		tcell.NewRGBColor(127, 127, 127),
		tcell.NewRGBColor(188, 189, 34),
		tcell.NewRGBColor(23, 190, 207),
	}
	colors := make([]tcell.Color, n)
	for i := range colors {
		colors[i] = wheel[i%len(wheel)]
	}
	return colors
}
