// Package zammad implements the outbound client for the Zammad REST API:
// a GET-only bearer-authenticated transport, a bounded-retry wrapper with a
// fixed-delay rate limiter, day-scoped ticket pagination across the three
// known search payload shapes, and per-ticket article retrieval.
package zammad

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goatkit/zammad-export/internal/config"
)

// maxLoggedBody bounds how much of an error response body reaches the log.
const maxLoggedBody = 512

// pageSize is the fixed search page size.
const pageSize = 50

// APIError is a non-2xx response from the remote API. The status code makes
// it retryable; the truncated body is carried for diagnosis.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zammad: %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// errMethodNotSupported marks a programmer error; it is never retried.
var errMethodNotSupported = errors.New("zammad: only GET is supported")

// Client talks to one Zammad instance. The embedded http.Client owns the
// process-wide connection pool; create the Client once at startup and call
// Close exactly once at shutdown.
type Client struct {
	baseURL      string
	token        string
	httpClient   *http.Client
	rateDelay    time.Duration
	retryWait    time.Duration
	maxAttempts  int
	excludeTitle string
	dayFallback  bool
	logger       *log.Logger
	sleep        func(time.Duration)
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets a custom logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSleep replaces the sleep function used for retry backoff and rate
// delay (tests).
func WithSleep(fn func(time.Duration)) Option {
	return func(c *Client) { c.sleep = fn }
}

// NewClient creates a client from config.
func NewClient(cfg config.ZammadConfig, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(cfg.URL, "/"),
		token:        cfg.Token,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		rateDelay:    cfg.RateDelay(),
		retryWait:    cfg.RetryWait,
		maxAttempts:  cfg.MaxAttempts,
		excludeTitle: cfg.ExcludeTitle,
		dayFallback:  cfg.DayFallback,
		logger:       log.Default(),
		sleep:        time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxAttempts < 1 {
		c.maxAttempts = 1
	}
	return c
}

// Close releases the connection pool. Call once at shutdown.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// send performs one authenticated request and returns the raw body. Only
// GET is allowed; other methods fail fast without touching the network.
func (c *Client) send(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	if method != http.MethodGet {
		return nil, fmt.Errorf("%w, got %s", errMethodNotSupported, method)
	}

	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("GET %s failed: %v", path, err)
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("GET %s: read body failed: %v", path, err)
		return nil, fmt.Errorf("read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   path,
			Body:       truncate(string(body), maxLoggedBody),
		}
		c.logger.Printf("GET %s: status %d: %s", path, resp.StatusCode, apiErr.Body)
		return nil, apiErr
	}

	c.logger.Printf("GET %s: %d bytes", path, len(body))
	return body, nil
}

// get routes a GET through the retry and rate-limit policy. This wrapper is
// the only place retry and rate limiting exist; every network call in the
// pipeline goes through it.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		body, err := c.send(ctx, http.MethodGet, path, params)
		if err == nil {
			requestsTotal.WithLabelValues("success").Inc()
			// Fixed-delay limiter: pause after every successful call so
			// the outbound rate stays under the configured ceiling.
			if c.rateDelay > 0 {
				c.sleep(c.rateDelay)
			}
			return body, nil
		}
		lastErr = err
		requestsTotal.WithLabelValues("failure").Inc()

		if !isTransient(err) || attempt == c.maxAttempts {
			break
		}
		c.logger.Printf("GET %s attempt %d/%d failed, retrying in %s: %v",
			path, attempt, c.maxAttempts, c.retryWait, err)
		retriesTotal.Inc()
		c.sleep(c.retryWait)
	}
	return nil, lastErr
}

// isTransient reports whether a failure is worth one more attempt: an HTTP
// error status or a timeout. Decode and validation failures are not, and
// neither is the method guard.
func isTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return true
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
