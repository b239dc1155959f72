package bootstrap

import (
	"log/slog"
	"os"
	"strings"

	"github.com/grynn/fplot/config"
)

// InitLogging installs the default slog logger on stderr. The level
// comes from configuration; --log-level overrides it and --debug
// forces debug regardless.
func InitLogging(cfg *config.Config, levelOverride string, debug bool) slog.Level {
	name := cfg.Logging.Level
	if levelOverride != "" {
		name = levelOverride
	}

	level := parseLevel(name)
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return level
}

// parseLevel maps a level name to a slog level, defaulting to warn
// so normal runs stay quiet.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
