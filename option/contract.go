// Package option models listed option contracts and the per-contract
// metrics shown by the options listing.
package option

import (
	"fmt"
	"sort"
	"time"
)

// Kind distinguishes calls from puts.
type Kind string

const (
	KindCall Kind = "call"
	KindPut  Kind = "put"
)

// Letter returns the single-letter suffix used in display lines.
func (k Kind) Letter() string {
	if k == KindPut {
		return "P"
	}
	return "C"
}

// Contract is one option contract row extracted from a chain, with
// derived metrics already computed. Fields are in natural units:
// DTE in days, Return as a fraction.
type Contract struct {
	Ticker    string
	Kind      Kind
	Strike    float64
	Expiry    time.Time
	DTE       int
	LastPrice float64
	Volume    float64
	Return    float64 // calls: CAGR to breakeven; puts: annualized premium return
	Spot      float64
}

// Field implements filter.Record over the fixed field vocabulary.
func (c *Contract) Field(name string) (float64, bool) {
	switch name {
	case "dte":
		return float64(c.DTE), true
	case "strike":
		return c.Strike, true
	case "volume":
		return c.Volume, true
	case "price":
		return c.LastPrice, true
	case "return":
		return c.Return, true
	case "spot":
		return c.Spot, true
	}
	return 0, false
}

// SortKey selects the contract ordering for listings.
type SortKey string

const (
	SortByStrike SortKey = "strike"
	SortByDTE    SortKey = "dte"
	SortByVolume SortKey = "volume"
)

// ParseSortKey validates a sort key name so a mistyped key errors out
// instead of silently falling back to strike ordering.
func ParseSortKey(name string) (SortKey, error) {
	switch SortKey(name) {
	case SortByStrike, SortByDTE, SortByVolume:
		return SortKey(name), nil
	}
	return "", fmt.Errorf("unknown sort key %q, expected strike, dte or volume", name)
}

// Sort orders contracts in place: strike and dte ascending, volume
// descending (most traded first).
func Sort(contracts []*Contract, key SortKey) {
	switch key {
	case SortByDTE:
		sort.SliceStable(contracts, func(i, j int) bool { return contracts[i].DTE < contracts[j].DTE })
	case SortByVolume:
		sort.SliceStable(contracts, func(i, j int) bool { return contracts[i].Volume > contracts[j].Volume })
	default:
		sort.SliceStable(contracts, func(i, j int) bool { return contracts[i].Strike < contracts[j].Strike })
	}
}

// DaysToExpiry returns whole days between now and the expiry date.
// Expired dates are filtered upstream; clamps at zero anyway.
func DaysToExpiry(expiry, now time.Time) int {
	days := int(expiry.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
