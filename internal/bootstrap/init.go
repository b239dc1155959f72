package bootstrap

import (
	"log/slog"

	"github.com/grynn/fplot/config"
	"github.com/grynn/fplot/internal/cli"
	"github.com/grynn/fplot/market"
	"github.com/grynn/fplot/store/optcache"
)

// BootstrapResult contains all initialized application components.
type BootstrapResult struct {
	Cfg      *config.Config
	LogLevel slog.Level
	Client   *market.Client
	Cache    *optcache.Cache
}

// Bootstrap orchestrates the complete application initialization
// sequence: directories, default config, configuration, logging, and
// the market client with its option-chain cache.
func Bootstrap(opts *cli.Options) (*BootstrapResult, error) {
	// Phase 1: directories and first-run config
	if err := config.EnsureDirs(); err != nil {
		// Cache dir failures degrade to uncached fetches later; only
		// surface the problem here.
		slog.Warn("failed to create application directories", "error", err)
	}
	if err := config.EnsureDefaultConfig(); err != nil {
		slog.Warn("failed to write default config", "error", err)
	}

	// Phase 2: configuration and logging
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logLevel := InitLogging(cfg, opts.LogLevel, opts.Debug)

	slog.Debug("configuration loaded",
		"config_dir", config.GetConfigDir(),
		"cache_dir", config.GetCacheDir(),
		"log_level", logLevel.String())

	// Phase 3: market access
	client := market.NewClient()
	cache := optcache.New(config.GetOptionsCacheDir(), config.GetCacheTTL())

	return &BootstrapResult{
		Cfg:      cfg,
		LogLevel: logLevel,
		Client:   client,
		Cache:    cache,
	}, nil
}
