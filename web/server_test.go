package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/grynn/fplot/market"
)

// fakeYahoo serves a minimal v8 chart response for any ticker.
func fakeYahoo(t *testing.T) *httptest.Server {
	t.Helper()
	d1 := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC).Unix()
	d2 := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC).Unix()
	body := fmt.Sprintf(`{"chart":{"result":[{"meta":{"regularMarketPrice":110},
		"timestamp":[%d,%d],
		"indicators":{"adjclose":[{"adjclose":[100,110]}]}}],"error":null}}`, d1, d2)

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/") {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	yahoo := fakeYahoo(t)
	t.Cleanup(yahoo.Close)

	srv, err := NewServer(market.NewClientWithBaseURL(yahoo.URL))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestIndexRendersForm(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, `name="tickers"`) {
		t.Error("index page missing the ticker form")
	}
	if strings.Contains(body, "<table>") {
		t.Error("index page shows a table without a query")
	}
}

func TestIndexRendersTable(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/?tickers=AAPL&since=max")
	if err != nil {
		t.Fatalf("GET /?tickers=AAPL: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body := readBody(t, resp)
	for _, want := range []string{"<table>", "AAPL", "SPY", "10.00%"} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

func TestStatsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/stats?tickers=AAPL&since=max")
	if err != nil {
		t.Fatalf("GET /api/stats: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var payload struct {
		Stats []struct {
			Ticker string   `json:"ticker"`
			Change *float64 `json:"change"`
			CAGR   *float64 `json:"cagr"`
		} `json:"stats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(payload.Stats) != 2 {
		t.Fatalf("got %d stats, want 2 (requested plus benchmark)", len(payload.Stats))
	}
	first := payload.Stats[0]
	if first.Ticker != "AAPL" {
		t.Errorf("first ticker = %q, want AAPL", first.Ticker)
	}
	if first.Change == nil || *first.Change != 0.10 {
		t.Errorf("change = %v, want 0.10", first.Change)
	}
	// two days of history cannot carry an annualized figure
	if first.CAGR != nil {
		t.Errorf("CAGR = %v, want null for a two-day span", *first.CAGR)
	}
}

func TestIndicatorsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/indicators?tickers=AAPL&since=max&indicators=rsi,ma_2")
	if err != nil {
		t.Fatalf("GET /api/indicators: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var payload struct {
		Dates      []string         `json:"dates"`
		Indicators map[string][]any `json:"indicators"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(payload.Dates) != 2 {
		t.Fatalf("got %d dates, want 2", len(payload.Dates))
	}
	rsi, ok := payload.Indicators["AAPL_RSI"]
	if !ok {
		t.Fatal("missing AAPL_RSI")
	}
	// two data points cannot fill a 14-period window: neutral 50
	if rsi[0] != 50.0 || rsi[1] != 50.0 {
		t.Errorf("RSI = %v, want neutral 50s", rsi)
	}
	ma, ok := payload.Indicators["AAPL_MA_2"]
	if !ok {
		t.Fatal("missing AAPL_MA_2")
	}
	if ma[0] != nil {
		t.Errorf("ma[0] = %v, want null before the window fills", ma[0])
	}
	if ma[1] != 105.0 {
		t.Errorf("ma[1] = %v, want 105", ma[1])
	}
	if _, ok := payload.Indicators["SPY_RSI"]; !ok {
		t.Error("benchmark column missing from indicators")
	}
}

func TestIndicatorsEndpointRejectsUnknown(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/indicators?tickers=AAPL&indicators=bollinger")
	if err != nil {
		t.Fatalf("GET /api/indicators: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExportEndpointCSV(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/export/csv?tickers=AAPL&since=max")
	if err != nil {
		t.Fatalf("GET /api/export/csv: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var payload struct {
		Content  string `json:"content"`
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if payload.Filename != "AAPL-SPY_max.csv" {
		t.Errorf("filename = %q, want AAPL-SPY_max.csv", payload.Filename)
	}
	lines := strings.Split(strings.TrimSpace(payload.Content), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d CSV lines, want header plus 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Date,AAPL_Price,AAPL_Drawdown,AAPL_Raw_Price") {
		t.Errorf("unexpected CSV header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2026-01-05,100,0,100") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}

func TestExportEndpointRejectsFormat(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/export/xml?tickers=AAPL")
	if err != nil {
		t.Fatalf("GET /api/export/xml: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Status != "healthy" {
		t.Errorf("status = %q, want healthy", payload.Status)
	}
}

func TestStatsEndpointRequiresTickers(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/stats")
	if err != nil {
		t.Fatalf("GET /api/stats: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}
