package app

import (
	"log/slog"
	"time"

	"github.com/grynn/fplot/market"
	"github.com/grynn/fplot/option"
)

// buildContracts flattens one side of a chain into contracts with the
// return metric derived per kind: CAGR to breakeven for calls,
// annualized premium return for puts.
func buildContracts(chain *market.Chain, kind option.Kind, now time.Time) []*option.Contract {
	var contracts []*option.Contract
	for _, date := range chain.ExpiryDates {
		expiry, err := time.Parse(market.ExpiryDateLayout, date)
		if err != nil {
			slog.Debug("skipping unparseable expiry date", "date", date, "error", err)
			continue
		}

		quotes := chain.Calls[date]
		if kind == option.KindPut {
			quotes = chain.Puts[date]
		}

		dte := option.DaysToExpiry(expiry, now)
		for _, q := range quotes {
			c := &option.Contract{
				Ticker:    chain.Ticker,
				Kind:      kind,
				Strike:    q.Strike,
				Expiry:    expiry,
				DTE:       dte,
				LastPrice: q.LastPrice,
				Volume:    q.Volume,
				Spot:      chain.Spot,
			}
			if kind == option.KindCall {
				c.Return = option.CAGRToBreakeven(chain.Spot, q.Strike, q.LastPrice, dte)
			} else {
				c.Return = option.PutAnnualizedReturn(chain.Spot, q.LastPrice, dte)
			}
			contracts = append(contracts, c)
		}
	}
	return contracts
}
