// Package app dispatches a parsed command line into one of the three
// run modes: price plotting, options listing, or the web interface.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/grynn/fplot/config"
	"github.com/grynn/fplot/filter"
	"github.com/grynn/fplot/internal/cli"
	"github.com/grynn/fplot/market"
	"github.com/grynn/fplot/option"
	"github.com/grynn/fplot/series"
	"github.com/grynn/fplot/store/optcache"
	"github.com/grynn/fplot/util/dateparse"
	"github.com/grynn/fplot/view"
	"github.com/grynn/fplot/web"
)

// App ties the market client, option cache, and configuration to the
// run modes.
type App struct {
	cfg    *config.Config
	client *market.Client
	cache  *optcache.Cache
	out    io.Writer
}

// New creates an App writing to stdout.
func New(cfg *config.Config, client *market.Client, cache *optcache.Cache) *App {
	return &App{cfg: cfg, client: client, cache: cache, out: os.Stdout}
}

// Run executes the mode the command line selects.
func (a *App) Run(ctx context.Context, opts *cli.Options) error {
	switch {
	case opts.Serve:
		return a.serve(ctx, opts)
	case opts.ListsOptions():
		return a.listOptions(ctx, opts)
	default:
		return a.plot(ctx, opts)
	}
}

// plot downloads price history, prints the analysis report, and shows
// the terminal chart.
func (a *App) plot(ctx context.Context, opts *cli.Options) error {
	if len(opts.Tickers) == 0 {
		return fmt.Errorf("at least one ticker is required")
	}

	since, err := dateparse.Since(opts.Since, time.Now())
	if err != nil {
		return fmt.Errorf("invalid --since value: %w", err)
	}
	interval := dateparse.Interval(opts.Interval)

	frame, err := a.client.History(ctx, opts.Tickers, since, interval)
	if err != nil {
		return fmt.Errorf("download price history: %w", err)
	}
	if frame.DropIncompleteLastRow() {
		slog.Debug("dropped incomplete last row")
	}

	drawdowns := series.Drawdowns(frame)
	auc := series.AUC(drawdowns)
	cagr := series.CAGR(frame)
	rolling := series.RollingCAGRMedian(frame)

	fmt.Fprint(a.out, view.RenderReport(view.BuildReport(auc, cagr, rolling)))

	if opts.Debug {
		path := config.DebugExportPath()
		if err := exportFrameCSV(path, frame); err != nil {
			slog.Warn("failed to export debug CSV", "error", err)
		} else {
			slog.Info("exported price history", "path", path)
		}
	}

	data := &view.ChartData{
		Normalized: series.Normalize(frame, 100),
		Drawdowns:  drawdowns,
		AUC:        auc,
		CAGR:       cagr,
		Since:      since,
		Interval:   interval,
		Theme:      config.GetEffectiveTheme(),
	}
	return runChart(data)
}

// runChart shows the chart screen until q, ESC, or Ctrl-C. A failed
// screen (piped output, dumb terminal) is not an error: the report is
// already printed.
func runChart(data *view.ChartData) error {
	tui := tview.NewApplication()
	tui.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Key() == tcell.KeyCtrlC ||
			(event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			tui.Stop()
			return nil
		}
		return event
	})
	if err := tui.SetRoot(view.NewChartView(data), true).Run(); err != nil {
		slog.Warn("chart screen unavailable", "error", err)
	}
	return nil
}

// listOptions prints the filtered contract listing for one ticker.
func (a *App) listOptions(ctx context.Context, opts *cli.Options) error {
	if len(opts.Tickers) != 1 {
		return fmt.Errorf("options listing needs exactly one ticker, got %d", len(opts.Tickers))
	}
	ticker := opts.Tickers[0]

	kind := option.KindCall
	if opts.Put {
		kind = option.KindPut
	}

	chain := a.cache.Load(ticker)
	if chain == nil {
		var err error
		chain, err = a.client.OptionChain(ctx, ticker)
		if err != nil {
			return fmt.Errorf("download option chain: %w", err)
		}
		if err := a.cache.Save(chain); err != nil {
			slog.Warn("failed to cache option chain", "ticker", ticker, "error", err)
		}
	} else {
		slog.Debug("using cached option chain", "ticker", ticker)
	}

	contracts := buildContracts(chain, kind, time.Now())

	expr := opts.FilterExpression(a.cfg.Options.MaxExpiry)
	compiled, err := filter.Compile(expr)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}
	contracts, err = filter.Apply(compiled, contracts)
	if err != nil {
		return err
	}

	key, err := sortKey(opts.Sort, a.cfg.Options.Sort)
	if err != nil {
		return err
	}
	option.Sort(contracts, key)

	if opts.Debug {
		path := config.DebugExportPath()
		if err := exportContractsCSV(path, contracts); err != nil {
			slog.Warn("failed to export debug CSV", "error", err)
		} else {
			slog.Info("exported contracts", "path", path)
		}
	}

	if len(contracts) == 0 {
		slog.Info("no contracts matched", "ticker", ticker, "filter", expr)
		return nil
	}

	if opts.Pick {
		return pick(a.out, contracts)
	}
	for _, line := range option.DisplayAll(contracts) {
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// serve runs the web interface until the context is canceled.
func (a *App) serve(ctx context.Context, opts *cli.Options) error {
	port := a.cfg.Web.Port
	if opts.Port > 0 {
		port = opts.Port
	}
	server, err := web.NewServer(a.client)
	if err != nil {
		return fmt.Errorf("create web server: %w", err)
	}
	return server.Run(ctx, fmt.Sprintf(":%d", port))
}

// sortKey resolves the listing order: flag first, then config, then
// strike. A mistyped --sort value is an error; a bad config value
// only logs, so a stale config.yaml cannot break the listing.
func sortKey(flag, configured string) (option.SortKey, error) {
	if flag != "" {
		return option.ParseSortKey(flag)
	}
	if configured != "" {
		key, err := option.ParseSortKey(configured)
		if err != nil {
			slog.Warn("ignoring configured sort key", "error", err)
			return option.SortByStrike, nil
		}
		return key, nil
	}
	return option.SortByStrike, nil
}
