package geonames

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://secure.geonames.org"

	// Free GeoNames accounts allow roughly 1000 credits per hour; a
	// sustained 4 req/s with a small burst stays comfortably below the
	// per-second ceiling while still letting batches make progress.
	defaultRPS   = 4.0
	defaultBurst = 2

	defaultTimeout = 15 * time.Second

	// maxRows caps search results; the first few ranked candidates are
	// enough for exact-match selection.
	maxRows = 5
)

// Config holds client settings. Username is the registered GeoNames
// account; BaseURL and rate settings are overridable for tests and
// self-hosted mirrors.
type Config struct {
	Username string
	BaseURL  string
	RPS      float64
	Burst    int
}

// Client is a rate-limited GeoNames search client.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	baseURL string
	user    string
	logger  *slog.Logger
}

// New creates a new GeoNames client.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.RPS <= 0 {
		cfg.RPS = defaultRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}

	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		baseURL: cfg.BaseURL,
		user:    cfg.Username,
		logger:  logger,
	}
}

// Close releases resources. Currently a no-op but included for interface
// consistency with the other outbound clients.
func (c *Client) Close() error {
	return nil
}

// wait blocks until the rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}
