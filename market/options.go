package market

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fastjson"
)

// ExpiryDateLayout keys chain maps by expiry day.
const ExpiryDateLayout = "2006-01-02"

// Quote is one raw contract row from a chain, before metrics are
// derived.
type Quote struct {
	Strike    float64 `json:"strike"`
	LastPrice float64 `json:"lastPrice"`
	Volume    float64 `json:"volume"`
}

// Chain holds the full option chain of one ticker. The maps are
// keyed by expiry date in ExpiryDateLayout. Chains marshal to JSON
// so the options cache can persist them.
type Chain struct {
	Ticker      string             `json:"ticker"`
	Spot        float64            `json:"spot"`
	ExpiryDates []string           `json:"expiry_dates"`
	Calls       map[string][]Quote `json:"calls"`
	Puts        map[string][]Quote `json:"puts"`
}

// OptionChain downloads the complete chain for a ticker: one request
// to discover the expiration dates, then one per expiration. An
// expiration that fails to download is skipped, matching the
// best-effort behavior of the listing.
func (c *Client) OptionChain(ctx context.Context, ticker string) (*Chain, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	body, err := c.get(ctx, "/v7/finance/options/"+url.PathEscape(ticker), nil)
	if err != nil {
		return nil, err
	}

	chain := &Chain{
		Ticker: ticker,
		Calls:  make(map[string][]Quote),
		Puts:   make(map[string][]Quote),
	}

	var expirations []int64
	err = c.parse(body, func(v *fastjson.Value) error {
		result := v.Get("optionChain", "result", "0")
		if result == nil {
			return fmt.Errorf("no option data for %s", ticker)
		}
		chain.Spot = result.GetFloat64("quote", "regularMarketPrice")
		for _, ts := range result.GetArray("expirationDates") {
			expirations = append(expirations, ts.GetInt64())
		}
		// The discovery response already carries the first expiration.
		return c.extractExpiry(result, chain)
	})
	if err != nil {
		return nil, err
	}
	if len(expirations) == 0 {
		return nil, fmt.Errorf("no option expirations for %s", ticker)
	}

	for _, ts := range expirations {
		chain.ExpiryDates = append(chain.ExpiryDates, time.Unix(ts, 0).UTC().Format(ExpiryDateLayout))
	}

	for _, ts := range expirations {
		date := time.Unix(ts, 0).UTC().Format(ExpiryDateLayout)
		if _, done := chain.Calls[date]; done {
			continue
		}

		query := url.Values{}
		query.Set("date", strconv.FormatInt(ts, 10))
		body, err := c.get(ctx, "/v7/finance/options/"+url.PathEscape(ticker), query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			continue // skip this expiration
		}

		perr := c.parse(body, func(v *fastjson.Value) error {
			result := v.Get("optionChain", "result", "0")
			if result == nil {
				return fmt.Errorf("no option data for %s at %s", ticker, date)
			}
			return c.extractExpiry(result, chain)
		})
		if perr != nil {
			continue
		}
	}
	return chain, nil
}

// extractExpiry pulls the calls/puts arrays of every options block in
// a chain response into the chain maps.
func (c *Client) extractExpiry(result *fastjson.Value, chain *Chain) error {
	for _, block := range result.GetArray("options") {
		ts := block.GetInt64("expirationDate")
		if ts == 0 {
			continue
		}
		date := time.Unix(ts, 0).UTC().Format(ExpiryDateLayout)
		chain.Calls[date] = extractQuotes(block.GetArray("calls"))
		chain.Puts[date] = extractQuotes(block.GetArray("puts"))
	}
	return nil
}

func extractQuotes(rows []*fastjson.Value) []Quote {
	quotes := make([]Quote, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, Quote{
			Strike:    row.GetFloat64("strike"),
			LastPrice: row.GetFloat64("lastPrice"),
			Volume:    row.GetFloat64("volume"), // null volume reads as 0
		})
	}
	return quotes
}
