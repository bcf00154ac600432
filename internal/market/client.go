// Package market fetches quotes, history, fundamentals, symbol search and
// treasury yields from the upstream data providers. Every function is free of
// application state: results are returned to the caller and nothing else.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultFinnhubURL = "https://finnhub.io/api/v1"
	defaultYahooURL   = "https://query1.finance.yahoo.com"
	defaultWarmupURL  = "https://fc.yahoo.com"
	defaultUserAgent  = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultTimeout    = 10 * time.Second

	// maxBody caps how much of a response body is read into memory.
	maxBody = 8 << 20
)

// Options configures a Client. Zero values fall back to the public endpoints.
type Options struct {
	FinnhubURL string
	YahooURL   string
	WarmupURL  string
	UserAgent  string
	Timeout    time.Duration

	// HTTPClient replaces the default client. It must carry a cookie jar
	// for the crumb handshake to work against the real upstream.
	HTTPClient *http.Client

	// Crumbs lets several clients share one credential cache.
	Crumbs *CrumbCache
}

// Client is safe for concurrent use. It holds no per-request state besides
// the crumb cache.
type Client struct {
	finnhubURL string
	yahooURL   string
	warmupURL  string
	userAgent  string
	http       *http.Client
	crumbs     *CrumbCache
	log        zerolog.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options, log zerolog.Logger) (*Client, error) {
	c := &Client{
		finnhubURL: strings.TrimRight(orDefault(opts.FinnhubURL, defaultFinnhubURL), "/"),
		yahooURL:   strings.TrimRight(orDefault(opts.YahooURL, defaultYahooURL), "/"),
		warmupURL:  orDefault(opts.WarmupURL, defaultWarmupURL),
		userAgent:  orDefault(opts.UserAgent, defaultUserAgent),
		http:       opts.HTTPClient,
		log:        log.With().Str("component", "market").Logger(),
	}

	if c.http == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("creating cookie jar: %w", err)
		}
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.http = &http.Client{Jar: jar, Timeout: timeout}
	}

	c.crumbs = opts.Crumbs
	if c.crumbs == nil {
		c.crumbs = NewCrumbCache(c.handshake)
	}
	return c, nil
}

// Crumbs returns the credential cache used by this client.
func (c *Client) Crumbs() *CrumbCache {
	return c.crumbs
}

// get performs a GET and returns the body. Non-2xx is a KindNetwork error.
func (c *Client) get(ctx context.Context, op, symbol, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, newError(KindNetwork, op, symbol, fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newError(KindNetwork, op, symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, newError(KindNetwork, op, symbol, fmt.Errorf("reading body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().
			Str("op", op).
			Str("symbol", symbol).
			Int("status", resp.StatusCode).
			Msg("upstream rejected request")
		return nil, newError(KindNetwork, op, symbol, fmt.Errorf("HTTP %s", resp.Status))
	}
	return body, nil
}

// getJSON performs a GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, op, symbol, rawURL string, out any) error {
	body, err := c.get(ctx, op, symbol, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newError(KindParse, op, symbol, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
