package option

import (
	"fmt"
	"strings"
)

// Display renders a contract as one fzf-friendly line:
//
//	AAPL 150C 30DTE ($1.23, 12.34%)
//
// The return column shows N/A when the contract has no traded price.
func (c *Contract) Display() string {
	ret := "N/A"
	if c.LastPrice > 0 {
		ret = fmt.Sprintf("%.2f%%", c.Return*100)
	}
	return fmt.Sprintf("%s %.0f%s %dDTE ($%.2f, %s)",
		strings.ToUpper(c.Ticker), c.Strike, c.Kind.Letter(), c.DTE, c.LastPrice, ret)
}

// DisplayAll renders contracts one per line.
func DisplayAll(contracts []*Contract) []string {
	lines := make([]string, len(contracts))
	for i, c := range contracts {
		lines[i] = c.Display()
	}
	return lines
}
