package option

import "math"

// CAGRToBreakeven returns the annualized return the underlying must
// deliver for a call bought at price to break even at expiry.
// Breakeven for calls is strike + premium. Returns 0 on degenerate
// inputs (expired, free, or worthless underlying).
func CAGRToBreakeven(spot, strike, price float64, dte int) float64 {
	if dte <= 0 || price <= 0 || spot <= 0 {
		return 0
	}

	breakeven := strike + price
	totalReturn := breakeven/spot - 1

	years := float64(dte) / 365.0
	if years <= 0 {
		return 0
	}
	return math.Pow(1+totalReturn, 1/years) - 1
}

// PutAnnualizedReturn returns the annualized premium yield of a
// cash-secured put: (price / (spot - price)) * 365 / dte.
func PutAnnualizedReturn(spot, price float64, dte int) float64 {
	if dte <= 0 || price <= 0 {
		return 0
	}
	capital := spot - price
	if capital <= 0 {
		return 0
	}
	return (price / capital) * 365 / float64(dte)
}
