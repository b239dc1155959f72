// Package cli defines the fplot command surface and translates the
// option-listing shorthand flags into filter expressions.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/grynn/fplot/util/dateparse"
)

// Options is the parsed command line.
type Options struct {
	Tickers  []string
	Since    string
	Interval string

	Call      bool
	Put       bool
	MaxExpiry string
	MinDTE    int
	ShowAll   bool
	Filter    string
	Sort      string
	Pick      bool

	Serve bool
	Port  int

	Version  bool
	Debug    bool
	LogLevel string
}

// Parse parses the command line. The one positional argument is a
// ticker symbol or a comma separated list of them.
func Parse(args []string) (*Options, error) {
	opts := &Options{}

	flags := pflag.NewFlagSet("fplot", pflag.ContinueOnError)
	flags.SortFlags = false

	flags.StringVar(&opts.Since, "since", "", "Start date (absolute, YTD, max, '3m', 'last 2 weeks')")
	flags.StringVar(&opts.Interval, "interval", "1d", "Price interval (1d, 1wk, 1mo)")

	flags.BoolVar(&opts.Call, "call", false, "List call options for the ticker")
	flags.BoolVar(&opts.Put, "put", false, "List put options for the ticker")
	flags.StringVar(&opts.MaxExpiry, "max", "", "Maximum expiry for options, e.g. '3m', '6m', '1y'")
	flags.IntVar(&opts.MinDTE, "min-dte", 0, "Minimum days to expiry for options")
	flags.BoolVar(&opts.ShowAll, "all", false, "Show all expiries (overrides --max)")
	flags.StringVar(&opts.Filter, "filter", "", `Filter expression, e.g. "dte>10, dte<50"`)
	flags.StringVar(&opts.Sort, "sort", "", "Sort contracts by strike, dte or volume")
	flags.BoolVar(&opts.Pick, "pick", false, "Pick one contract interactively")

	flags.BoolVar(&opts.Serve, "serve", false, "Start the web interface")
	flags.IntVar(&opts.Port, "port", 0, "Web interface port")

	flags.BoolVarP(&opts.Version, "version", "v", false, "Show version and exit")
	flags.BoolVar(&opts.Debug, "debug", false, "Enable debug mode")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	rest := flags.Args()
	if len(rest) > 1 {
		return nil, fmt.Errorf("expected one TICKER argument, got %d", len(rest))
	}
	if len(rest) == 1 {
		for _, t := range strings.Split(rest[0], ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				opts.Tickers = append(opts.Tickers, t)
			}
		}
	}

	if opts.Call && opts.Put {
		return nil, fmt.Errorf("--call and --put are mutually exclusive")
	}
	return opts, nil
}

// ListsOptions reports whether the invocation is an options listing.
func (o *Options) ListsOptions() bool {
	return o.Call || o.Put
}

// FilterExpression combines the explicit --filter value with the
// shorthand flags into one engine expression. --max and --min-dte
// become dte bounds; --all suppresses the default expiry cap.
// Returns "" when nothing constrains the listing.
func (o *Options) FilterExpression(defaultMaxExpiry string) string {
	var parts []string

	if f := strings.TrimSpace(o.Filter); f != "" {
		// parenthesized so a user-level OR keeps its grouping when
		// AND-combined with the shorthand bounds
		parts = append(parts, "("+f+")")
	}
	if !o.ShowAll {
		max := o.MaxExpiry
		if max == "" {
			max = defaultMaxExpiry
		}
		parts = append(parts, fmt.Sprintf("dte<=%d", dateparse.Days(max)))
	}
	if o.MinDTE > 0 {
		parts = append(parts, fmt.Sprintf("dte>=%d", o.MinDTE))
	}
	return strings.Join(parts, ", ")
}
