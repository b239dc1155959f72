package config

// Viper configuration loader: reads config.yaml from the user config
// directory, with environment and flag overrides.

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from config.yaml
type Config struct {
	// Logging configuration
	Logging struct {
		Level string `mapstructure:"level"` // "debug", "info", "warn", "error"
	} `mapstructure:"logging"`

	// Options listing configuration
	Options struct {
		MaxExpiry string `mapstructure:"maxExpiry"` // default expiry window, e.g. "6m"
		Sort      string `mapstructure:"sort"`      // "strike", "dte" or "volume"
	} `mapstructure:"options"`

	// Cache configuration
	Cache struct {
		TTL string `mapstructure:"ttl"` // Go duration, e.g. "1h"
	} `mapstructure:"cache"`

	// Chart configuration
	Chart struct {
		Theme string `mapstructure:"theme"` // "dark", "light", "auto"
	} `mapstructure:"chart"`

	// Web interface configuration
	Web struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"web"`
}

// LoadConfig loads configuration from config.yaml.
// Priority order (first found wins): user config dir → current
// directory (dev). Missing config.yaml means defaults.
func LoadConfig() (*Config, error) {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(GetConfigDir())
	viper.AddConfigPath(".")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("no config.yaml found, using defaults")
		} else {
			slog.Error("error reading config file", "error", err)
			return nil, err
		}
	} else {
		slog.Debug("loaded configuration", "file", viper.ConfigFileUsed())
	}

	// Allow environment variables to override config file
	viper.SetEnvPrefix("FPLOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := bindFlags(); err != nil {
		slog.Warn("failed to bind command line flags", "error", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		slog.Error("failed to unmarshal config", "error", err)
		return nil, err
	}

	return cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("logging.level", "warn")
	viper.SetDefault("options.maxExpiry", "6m")
	viper.SetDefault("options.sort", "strike")
	viper.SetDefault("cache.ttl", "1h")
	viper.SetDefault("chart.theme", "auto")
	viper.SetDefault("web.port", 8080)
}

// bindFlags binds supported command line flags to viper so they can
// override config values. The full flag surface lives in
// internal/cli; only config-shadowing flags are bound here.
func bindFlags() error {
	flagSet := pflag.NewFlagSet("fplot", pflag.ContinueOnError)
	flagSet.ParseErrorsWhitelist.UnknownFlags = true
	flagSet.SetOutput(io.Discard)

	flagSet.String("log-level", "", "Log level (debug, info, warn, error)")
	flagSet.Int("port", 0, "Web interface port")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}

	if err := viper.BindPFlag("logging.level", flagSet.Lookup("log-level")); err != nil {
		return err
	}
	if flagSet.Changed("port") {
		return viper.BindPFlag("web.port", flagSet.Lookup("port"))
	}
	return nil
}

// GetCacheTTL returns the options cache TTL, falling back to one
// hour on unparseable values.
func GetCacheTTL() time.Duration {
	ttl, err := time.ParseDuration(viper.GetString("cache.ttl"))
	if err != nil || ttl <= 0 {
		return time.Hour
	}
	return ttl
}

// GetTheme returns the chart theme setting
func GetTheme() string {
	theme := viper.GetString("chart.theme")
	if theme == "" {
		return "auto"
	}
	return theme
}

// GetEffectiveTheme resolves "auto" to an actual theme based on
// terminal detection via the COLORFGBG env var (format: "fg;bg").
func GetEffectiveTheme() string {
	theme := GetTheme()
	if theme != "auto" {
		return theme
	}
	if detected := detectTheme(os.Getenv("COLORFGBG")); detected != "" {
		return detected
	}
	return "dark"
}

// detectTheme classifies a COLORFGBG value, "" when undetectable. The
// background index must be compared as an integer: "15" sorts before
// "8" as a string but is a light background.
func detectTheme(colorfgbg string) string {
	parts := strings.Split(colorfgbg, ";")
	if colorfgbg == "" || len(parts) < 2 {
		return ""
	}
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return ""
	}
	// 0-7 = dark colors, 8+ = light colors
	if bg >= 8 {
		return "light"
	}
	return "dark"
}
