// Package optcache persists downloaded option chains under the user
// cache directory so repeated listings within an hour skip the
// network. Entries are gzip-compressed JSON; stale or unreadable
// entries are treated as misses.
package optcache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/grynn/fplot/market"
)

// DefaultTTL matches the upstream refresh cadence of the chain data.
const DefaultTTL = time.Hour

// Cache is a per-ticker option chain cache rooted at one directory.
type Cache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// New returns a cache rooted at dir. A non-positive ttl falls back
// to DefaultTTL.
func New(dir string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{dir: dir, ttl: ttl, now: time.Now}
}

// envelope wraps a chain with its fetch time for TTL checks.
type envelope struct {
	Timestamp time.Time     `json:"timestamp"`
	Chain     *market.Chain `json:"data"`
}

// Load returns the cached chain for ticker, or nil when the entry is
// missing, stale, or unreadable. Cache problems are never fatal; the
// caller just refetches.
func (c *Cache) Load(ticker string) *market.Chain {
	data, err := os.ReadFile(c.path(ticker))
	if err != nil {
		return nil
	}

	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		slog.Debug("options cache entry unreadable", "ticker", ticker, "error", err)
		return nil
	}
	defer gz.Close()

	var env envelope
	if err := json.NewDecoder(gz).Decode(&env); err != nil {
		slog.Debug("options cache entry corrupt", "ticker", ticker, "error", err)
		return nil
	}
	if env.Chain == nil || c.now().Sub(env.Timestamp) > c.ttl {
		return nil
	}
	return env.Chain
}

// Save writes the chain to the cache. Failures are logged and
// returned but callers treat them as non-fatal.
func (c *Cache) Save(chain *market.Chain) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	path := c.path(chain.Ticker)
	tmp, err := os.CreateTemp(c.dir, "options-*.tmp")
	if err != nil {
		return fmt.Errorf("create cache temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	gz := gzip.NewWriter(tmp)
	env := envelope{Timestamp: c.now(), Chain: chain}
	if err := json.NewEncoder(gz).Encode(env); err != nil {
		tmp.Close()
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := gz.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("compress cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

func (c *Cache) path(ticker string) string {
	return filepath.Join(c.dir, strings.ToUpper(ticker)+"_options.json.gz")
}
