package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/grynn/fplot/config"
	"github.com/grynn/fplot/series"
)

// handleIndicators serves technical indicators for charting:
// /api/indicators?tickers=AAPL&since=1y&indicators=rsi,macd,ma_20.
// The response maps flat "<TICKER>_<INDICATOR>" keys to value arrays
// aligned with "dates".
func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	tickers := r.URL.Query().Get("tickers")
	if tickers == "" {
		http.Error(w, "tickers parameter is required", http.StatusBadRequest)
		return
	}
	names := splitTickers(r.URL.Query().Get("indicators"))
	if len(names) == 0 {
		http.Error(w, "indicators parameter is required", http.StatusBadRequest)
		return
	}

	frame, err := s.fetchFrame(r.Context(), tickers, r.URL.Query().Get("since"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	indicators := make(map[string][]any)
	for _, name := range names {
		name = strings.ToLower(name)
		for _, ticker := range frame.Tickers {
			col := frame.Values[ticker]
			switch {
			case strings.HasPrefix(name, "ma_"):
				period, err := strconv.Atoi(strings.TrimPrefix(name, "ma_"))
				if err != nil || period < 1 {
					http.Error(w, fmt.Sprintf("bad moving average %q", name), http.StatusBadRequest)
					return
				}
				indicators[fmt.Sprintf("%s_MA_%d", ticker, period)] = jsonValues(series.MovingAverage(col, period))
			case name == "rsi":
				indicators[ticker+"_RSI"] = jsonValues(series.RSI(col, 14))
			case name == "macd":
				macd, signal, histogram := series.MACD(col)
				indicators[ticker+"_MACD"] = jsonValues(macd)
				indicators[ticker+"_MACD_signal"] = jsonValues(signal)
				indicators[ticker+"_MACD_histogram"] = jsonValues(histogram)
			default:
				http.Error(w, fmt.Sprintf("unknown indicator %q", name), http.StatusBadRequest)
				return
			}
		}
	}

	writeJSON(w, map[string]any{
		"dates":      frameDates(frame),
		"indicators": indicators,
	})
}

// handleExport serves the downloaded frame as a named document:
// /api/export/csv?tickers=... or /api/export/json?tickers=....
// The response wraps the content with a suggested filename, matching
// what the frontend download button expects.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimPrefix(r.URL.Path, "/api/export/"))
	if format != "csv" && format != "json" {
		http.Error(w, "unsupported format, use csv or json", http.StatusBadRequest)
		return
	}

	tickers := r.URL.Query().Get("tickers")
	if tickers == "" {
		http.Error(w, "tickers parameter is required", http.StatusBadRequest)
		return
	}
	since := r.URL.Query().Get("since")

	frame, err := s.fetchFrame(r.Context(), tickers, since)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if since == "" {
		since = "max"
	}
	name := strings.Join(frame.Tickers, "-")

	var content string
	if format == "csv" {
		content = exportCSV(frame)
	} else {
		doc, err := json.MarshalIndent(exportDocument(frame), "", "  ")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		content = string(doc)
	}

	writeJSON(w, map[string]any{
		"content":  content,
		"filename": fmt.Sprintf("%s_%s.%s", name, since, format),
	})
}

// handleHealth is a liveness endpoint for the frontend poller.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":    "healthy",
		"version":   config.Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// exportCSV renders date, normalized price, drawdown, and raw price
// columns per ticker. Gaps export as empty cells.
func exportCSV(frame *series.Frame) string {
	normalized := series.Normalize(frame, 100)
	drawdowns := series.Drawdowns(frame)

	var b strings.Builder
	b.WriteString("Date")
	for _, t := range frame.Tickers {
		fmt.Fprintf(&b, ",%s_Price,%s_Drawdown,%s_Raw_Price", t, t, t)
	}
	b.WriteByte('\n')

	for i, date := range frame.Dates {
		b.WriteString(date.Format("2006-01-02"))
		for _, t := range frame.Tickers {
			b.WriteByte(',')
			b.WriteString(csvCell(normalized.Values[t][i]))
			b.WriteByte(',')
			b.WriteString(csvCell(drawdowns.Values[t][i]))
			b.WriteByte(',')
			b.WriteString(csvCell(frame.Values[t][i]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// exportDocument is the JSON export shape: dates plus per-ticker
// normalized, drawdown, and raw arrays.
func exportDocument(frame *series.Frame) map[string]any {
	normalized := series.Normalize(frame, 100)
	drawdowns := series.Drawdowns(frame)

	price := make(map[string][]any, len(frame.Tickers))
	drawdown := make(map[string][]any, len(frame.Tickers))
	raw := make(map[string][]any, len(frame.Tickers))
	for _, t := range frame.Tickers {
		price[t] = jsonValues(normalized.Values[t])
		drawdown[t] = jsonValues(drawdowns.Values[t])
		raw[t] = jsonValues(frame.Values[t])
	}
	return map[string]any{
		"dates":     frameDates(frame),
		"tickers":   frame.Tickers,
		"price":     price,
		"drawdown":  drawdown,
		"raw_price": raw,
	}
}

func frameDates(frame *series.Frame) []string {
	dates := make([]string, len(frame.Dates))
	for i, d := range frame.Dates {
		dates[i] = d.Format("2006-01-02")
	}
	return dates
}

// jsonValues converts a float column for encoding/json, which rejects
// NaN; gaps become null.
func jsonValues(values []float64) []any {
	out := make([]any, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = nil
		} else {
			out[i] = v
		}
	}
	return out
}

func csvCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
