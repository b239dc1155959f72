package option

import (
	"math"
	"testing"
	"time"
)

func TestCAGRToBreakeven(t *testing.T) {
	tests := []struct {
		name   string
		spot   float64
		strike float64
		price  float64
		dte    int
		want   float64
	}{
		{
			name: "one year at-the-money",
			spot: 100, strike: 100, price: 10, dte: 365,
			want: 0.10, // breakeven 110 in one year
		},
		{
			name: "zero dte",
			spot: 100, strike: 100, price: 10, dte: 0,
			want: 0,
		},
		{
			name: "free option",
			spot: 100, strike: 100, price: 0, dte: 30,
			want: 0,
		},
		{
			name: "worthless underlying",
			spot: 0, strike: 100, price: 10, dte: 30,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CAGRToBreakeven(tt.spot, tt.strike, tt.price, tt.dte)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CAGRToBreakeven = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCAGRToBreakevenAnnualizes(t *testing.T) {
	// Half-year horizon: 10% to breakeven compounds to more than 10% annualized.
	got := CAGRToBreakeven(100, 105, 5, 182)
	want := math.Pow(1.10, 365.0/182) - 1
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CAGRToBreakeven = %v, want %v", got, want)
	}
}

func TestPutAnnualizedReturn(t *testing.T) {
	tests := []struct {
		name  string
		spot  float64
		price float64
		dte   int
		want  float64
	}{
		{
			name: "one year",
			spot: 100, price: 5, dte: 365,
			want: 5.0 / 95.0,
		},
		{
			name: "thirty days",
			spot: 100, price: 2, dte: 30,
			want: (2.0 / 98.0) * 365 / 30,
		},
		{
			name: "zero dte",
			spot: 100, price: 5, dte: 0,
			want: 0,
		},
		{
			name: "premium above spot",
			spot: 4, price: 5, dte: 30,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PutAnnualizedReturn(tt.spot, tt.price, tt.dte)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PutAnnualizedReturn = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name     string
		contract Contract
		want     string
	}{
		{
			name: "call with return",
			contract: Contract{
				Ticker: "aapl", Kind: KindCall, Strike: 150, DTE: 30,
				LastPrice: 1.23, Return: 0.1234,
			},
			want: "AAPL 150C 30DTE ($1.23, 12.34%)",
		},
		{
			name: "put with return",
			contract: Contract{
				Ticker: "TSLA", Kind: KindPut, Strike: 200, DTE: 45,
				LastPrice: 3.50, Return: 0.0875,
			},
			want: "TSLA 200P 45DTE ($3.50, 8.75%)",
		},
		{
			name: "no traded price shows N/A",
			contract: Contract{
				Ticker: "SPY", Kind: KindCall, Strike: 500, DTE: 10,
			},
			want: "SPY 500C 10DTE ($0.00, N/A)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.contract.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContractField(t *testing.T) {
	c := &Contract{Strike: 150, DTE: 30, Volume: 1200, LastPrice: 1.23, Return: 0.12, Spot: 145}

	fields := map[string]float64{
		"dte":    30,
		"strike": 150,
		"volume": 1200,
		"price":  1.23,
		"return": 0.12,
		"spot":   145,
	}
	for name, want := range fields {
		got, ok := c.Field(name)
		if !ok || got != want {
			t.Errorf("Field(%q) = (%v, %v), want (%v, true)", name, got, ok, want)
		}
	}

	if _, ok := c.Field("theta"); ok {
		t.Error("Field(theta) reported ok for unknown field")
	}
}

func TestSort(t *testing.T) {
	mk := func(strike float64, dte int, volume float64) *Contract {
		return &Contract{Strike: strike, DTE: dte, Volume: volume}
	}

	contracts := []*Contract{mk(200, 10, 50), mk(100, 30, 500), mk(150, 20, 5)}

	Sort(contracts, SortByStrike)
	if contracts[0].Strike != 100 || contracts[2].Strike != 200 {
		t.Errorf("SortByStrike order = %v, %v, %v", contracts[0].Strike, contracts[1].Strike, contracts[2].Strike)
	}

	Sort(contracts, SortByDTE)
	if contracts[0].DTE != 10 || contracts[2].DTE != 30 {
		t.Errorf("SortByDTE order = %v, %v, %v", contracts[0].DTE, contracts[1].DTE, contracts[2].DTE)
	}

	Sort(contracts, SortByVolume)
	if contracts[0].Volume != 500 || contracts[2].Volume != 5 {
		t.Errorf("SortByVolume order = %v, %v, %v", contracts[0].Volume, contracts[1].Volume, contracts[2].Volume)
	}
}

func TestDaysToExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := DaysToExpiry(now.AddDate(0, 0, 30), now); got != 30 {
		t.Errorf("DaysToExpiry(+30d) = %d, want 30", got)
	}
	if got := DaysToExpiry(now.AddDate(0, 0, -5), now); got != 0 {
		t.Errorf("DaysToExpiry(past) = %d, want 0", got)
	}
}
