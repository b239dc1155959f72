package config

import (
	"fmt"
	"os"
	"path/filepath"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gopkg.in/yaml.v3"
)

// Build metadata, overridden via -ldflags at release time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GenerateRunID generates a 6-character random alphanumeric ID
// (lowercase), used to name debug export files uniquely.
func GenerateRunID() string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	const length = 6
	id, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		// Fallback to a fixed marker if nanoid fails
		return "export"
	}
	return id
}

// DebugExportPath returns a unique CSV path in the temp directory for
// --debug data dumps.
func DebugExportPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("fplot-%s.csv", GenerateRunID()))
}

// defaultConfig is what EnsureDefaultConfig writes on first run. Kept
// as a struct so the file round-trips through the same yaml schema
// the loader reads.
type defaultConfigData struct {
	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
	Options struct {
		MaxExpiry string `yaml:"maxExpiry"`
		Sort      string `yaml:"sort"`
	} `yaml:"options"`
	Cache struct {
		TTL string `yaml:"ttl"`
	} `yaml:"cache"`
	Chart struct {
		Theme string `yaml:"theme"`
	} `yaml:"chart"`
	Web struct {
		Port int `yaml:"port"`
	} `yaml:"web"`
}

// EnsureDefaultConfig writes a default config.yaml to the user
// config directory if none exists yet.
func EnsureDefaultConfig() error {
	path := GetConfigFile()
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := EnsureDirs(); err != nil {
		return err
	}

	var cfg defaultConfigData
	cfg.Logging.Level = "warn"
	cfg.Options.MaxExpiry = "6m"
	cfg.Options.Sort = "strike"
	cfg.Cache.TTL = "1h"
	cfg.Chart.Theme = "auto"
	cfg.Web.Port = 8080

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	//nolint:gosec // G306: 0644 is appropriate for config file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write default config.yaml: %w", err)
	}
	return nil
}
