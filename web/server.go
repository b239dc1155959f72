// Package web serves the browser interface: a ticker form rendering a
// performance table, plus JSON endpoints exposing the same stats.
package web

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/safehtml/template"

	"github.com/grynn/fplot/market"
	"github.com/grynn/fplot/series"
	"github.com/grynn/fplot/util/dateparse"
)

//go:embed templates/*
var templateFS embed.FS

// Server handles the HTML and JSON surfaces over one market client.
type Server struct {
	client *market.Client
	index  *template.Template
	mux    *http.ServeMux
}

// NewServer parses the embedded templates and wires the routes.
func NewServer(client *market.Client) (*Server, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	index, err := template.New("index.html").ParseFS(trustedFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}

	s := &Server{client: client, index: index}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/indicators", s.handleIndicators)
	mux.HandleFunc("/api/export/", s.handleExport)
	mux.HandleFunc("/api/health", s.handleHealth)
	s.mux = mux
	return s, nil
}

// Handler exposes the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until the listener fails or the context is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("web interface listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

// IndexView is the template model for the landing page.
type IndexView struct {
	Tickers string
	Since   string
	Rows    []StatsRow
	Error   string
}

// StatsRow is one ticker's performance summary, preformatted for the
// table.
type StatsRow struct {
	Ticker string
	Change string
	CAGR   string
	AUC    string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	view := IndexView{
		Tickers: r.URL.Query().Get("tickers"),
		Since:   r.URL.Query().Get("since"),
	}
	if view.Tickers != "" {
		stats, err := s.computeStats(r.Context(), view.Tickers, view.Since)
		if err != nil {
			view.Error = err.Error()
		} else {
			view.Rows = statsRows(stats)
		}
	}

	if err := s.index.Execute(w, view); err != nil {
		slog.Error("failed to render index", "error", err)
	}
}

// tickerStats is the JSON shape of one ticker's summary. Pointers
// stand in for values that need more history than requested (CAGR
// under a year).
type tickerStats struct {
	Ticker string   `json:"ticker"`
	Change *float64 `json:"change"`
	CAGR   *float64 `json:"cagr"`
	AUC    float64  `json:"auc"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	tickers := r.URL.Query().Get("tickers")
	if tickers == "" {
		http.Error(w, "tickers parameter is required", http.StatusBadRequest)
		return
	}

	stats, err := s.computeStats(r.Context(), tickers, r.URL.Query().Get("since"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, map[string]any{"stats": stats})
}

// fetchFrame downloads daily history for a comma separated ticker
// list, the shared front half of every API endpoint.
func (s *Server) fetchFrame(ctx context.Context, tickerList, sinceInput string) (*series.Frame, error) {
	tickers := splitTickers(tickerList)
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers given")
	}

	since, err := dateparse.Since(sinceInput, time.Now())
	if err != nil {
		return nil, fmt.Errorf("invalid since value: %w", err)
	}

	frame, err := s.client.History(ctx, tickers, since, "1d")
	if err != nil {
		return nil, err
	}
	frame.DropIncompleteLastRow()
	return frame, nil
}

// computeStats derives the performance summary the page and the API
// share.
func (s *Server) computeStats(ctx context.Context, tickerList, sinceInput string) ([]tickerStats, error) {
	frame, err := s.fetchFrame(ctx, tickerList, sinceInput)
	if err != nil {
		return nil, err
	}

	auc := series.AUC(series.Drawdowns(frame))
	cagr := series.CAGR(frame)
	normalized := series.Normalize(frame, 100)

	aucOf := make(map[string]float64, len(auc))
	for _, tv := range auc {
		aucOf[tv.Ticker] = tv.Value
	}
	cagrOf := make(map[string]float64, len(cagr))
	for _, tv := range cagr {
		cagrOf[tv.Ticker] = tv.Value
	}

	stats := make([]tickerStats, 0, len(frame.Tickers))
	for _, ticker := range frame.Tickers {
		st := tickerStats{Ticker: ticker, AUC: aucOf[ticker]}
		if last := lastFinite(normalized.Values[ticker]); !math.IsNaN(last) {
			change := (last - 100) / 100
			st.Change = &change
		}
		if v, ok := cagrOf[ticker]; ok && !math.IsNaN(v) {
			value := v
			st.CAGR = &value
		}
		stats = append(stats, st)
	}
	return stats, nil
}

func statsRows(stats []tickerStats) []StatsRow {
	rows := make([]StatsRow, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, StatsRow{
			Ticker: st.Ticker,
			Change: formatPercentPtr(st.Change),
			CAGR:   formatPercentPtr(st.CAGR),
			AUC:    fmt.Sprintf("%.2f", st.AUC),
		})
	}
	return rows
}

func formatPercentPtr(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func lastFinite(values []float64) float64 {
	for i := len(values) - 1; i >= 0; i-- {
		if !math.IsNaN(values[i]) {
			return values[i]
		}
	}
	return math.NaN()
}

func splitTickers(list string) []string {
	var out []string
	for _, t := range strings.Split(list, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
