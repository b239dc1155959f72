// Package market fetches quotes, price history and option chains
// from the Yahoo Finance HTTP endpoints.
package market

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/valyala/fastjson"
)

const (
	defaultBaseURL = "https://query1.finance.yahoo.com"
	defaultTimeout = 15 * time.Second

	// Yahoo rejects the default Go user agent.
	userAgent = "Mozilla/5.0 (compatible; fplot)"
)

// Client talks to the market data endpoints. The zero value is not
// usable; construct with NewClient.
type Client struct {
	httpClient *http.Client
	baseURL    string
	parsers    fastjson.ParserPool
}

// NewClient returns a client against the public endpoints.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL returns a client against a custom base URL.
// Used by tests to point at an httptest server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
	}
}

// get performs one GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	slog.Debug("market request", "url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response for %s: %w", path, err)
	}
	return body, nil
}

// parse parses a response body using the pooled fastjson parsers.
// The returned value is only valid until the parser is reused, so
// callers extract what they need before returning.
func (c *Client) parse(body []byte, extract func(*fastjson.Value) error) error {
	p := c.parsers.Get()
	defer c.parsers.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return extract(v)
}
