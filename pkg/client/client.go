// Package client provides the PokeAPI HTTP client with client-side rate
// limiting, optional Redis response caching, and error classification.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/pokedex/pkg/cache"
	"github.com/Sternrassler/pokedex/pkg/logging"
	"github.com/Sternrassler/pokedex/pkg/pokeapi"
	"github.com/Sternrassler/pokedex/pkg/ratelimit"
)

// Prometheus metrics for PokeAPI client operations.
var (
	pokeapiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_requests_total",
		Help: "Total PokeAPI requests by endpoint and status",
	}, []string{"endpoint", "status"})

	pokeapiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pokeapi_request_duration_seconds",
		Help:    "PokeAPI request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"endpoint"})

	pokeapiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pokeapi_errors_total",
		Help: "Total PokeAPI errors by class",
	}, []string{"class"})
)

// ErrorClass represents a classification of HTTP errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents 429 Too Many Requests.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// Client is the PokeAPI client.
type Client struct {
	httpClient  *http.Client
	baseURL     *url.URL
	rateLimiter *ratelimit.Tracker
	cache       *cache.Manager
	config      Config
	logger      zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root, e.g. "https://pokeapi.co/api/v2"
	BaseURL string

	// User-Agent header identifying this application (REQUIRED)
	UserAgent string

	// Redis enables the response cache when non-nil
	Redis *redis.Client

	// CacheMaxTTL caps how long a response is cached (0 = cache.DefaultMaxTTL)
	CacheMaxTTL time.Duration

	// Rate Limiting
	RateLimit float64 // Requests per second
	Burst     int     // Requests allowed at once

	// Timeout per HTTP request (0 = no timeout)
	Timeout time.Duration
}

// DefaultConfig returns a safe default configuration without caching.
func DefaultConfig(userAgent string) Config {
	return Config{
		BaseURL:   pokeapi.DefaultBaseURL,
		UserAgent: userAgent,
		RateLimit: ratelimit.DefaultRequestsPerSecond,
		Burst:     ratelimit.DefaultBurst,
		Timeout:   30 * time.Second,
	}
}

// New creates a new PokeAPI client.
func New(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}

	baseURL, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https (got %q)", cfg.BaseURL)
	}

	logger := logging.NewLogger("pokeapi-client")

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     baseURL,
		rateLimiter: ratelimit.NewTracker(cfg.RateLimit, cfg.Burst, logger),
		config:      cfg,
		logger:      logger,
	}

	if cfg.Redis != nil {
		c.cache = cache.NewManager(cfg.Redis, cache.WithMaxTTL(cfg.CacheMaxTTL))
	}

	return c, nil
}

// Do performs an HTTP request with rate limiting, caching, and error
// classification. Non-2xx responses are returned as-is; only transport
// failures produce an error.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	endpoint := endpointLabel(req.URL.Path)

	startTime := time.Now()
	defer func() {
		pokeapiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Step 1: Serve fresh cache hits without touching the network
	cacheKey := cache.KeyForURL(req.URL)
	var staleEntry *cache.CacheEntry
	if c.cache != nil && req.Method == http.MethodGet {
		entry, err := c.cache.Get(ctx, cacheKey)
		switch {
		case err == nil:
			c.logger.Debug().Str("endpoint", req.URL.Path).Msg("Serving response from cache")
			pokeapiRequestsTotal.WithLabelValues(endpoint, "cache").Inc()
			return cache.EntryToResponse(entry), nil
		case !errors.Is(err, cache.ErrCacheMiss):
			c.logger.Warn().Err(err).Str("endpoint", req.URL.Path).Msg("Cache get error")
		}

		staleEntry, err = c.cache.GetStale(ctx, cacheKey)
		if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			c.logger.Warn().Err(err).Str("endpoint", req.URL.Path).Msg("Stale cache get error")
		}
	}

	// Step 2: Revalidate stale entries with a conditional request
	if cache.ShouldMakeConditionalRequest(staleEntry) {
		cache.AddConditionalHeaders(req, staleEntry)
		cache.ConditionalRequestsSent.Inc()
		c.logger.Debug().
			Str("endpoint", req.URL.Path).
			Str("etag", staleEntry.ETag).
			Dur("age", staleEntry.Age()).
			Msg("Making conditional request")
	}

	// Step 3: Pace the request
	if err := c.rateLimiter.Wait(ctx); err != nil {
		status := "rate_limited"
		if ctx.Err() != nil {
			status = "cancelled"
		}
		pokeapiRequestsTotal.WithLabelValues(endpoint, status).Inc()
		return nil, err
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", req.URL.Path).
		Str("method", req.Method).
		Msg("Executing PokeAPI request")

	// Step 4: Execute
	resp, err := c.httpClient.Do(req)
	if err != nil && ctx.Err() != nil {
		// Caller gave up, the API did not fail
		pokeapiRequestsTotal.WithLabelValues(endpoint, "cancelled").Inc()
		c.logger.Debug().Err(err).Str("endpoint", req.URL.Path).Msg("Request cancelled")
		return nil, fmt.Errorf("request %s: %w", req.URL.Path, ctx.Err())
	}
	if err != nil {
		errClass := c.classifyError(nil, err)
		pokeapiErrorsTotal.WithLabelValues(string(errClass)).Inc()
		pokeapiRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		c.logger.Error().Err(err).Str("endpoint", req.URL.Path).Msg("HTTP request failed")
		return nil, &APIError{
			Endpoint:   req.URL.Path,
			ErrorClass: errClass,
			Message:    "request failed",
			Err:        err,
		}
	}

	pokeapiRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	// Step 5: 304 Not Modified refreshes and serves the stale entry
	if resp.StatusCode == http.StatusNotModified && staleEntry != nil {
		resp.Body.Close()
		cache.NotModifiedResponses.Inc()
		c.logger.Debug().Str("endpoint", req.URL.Path).Msg("304 Not Modified - using cache")

		if err := c.cache.UpdateTTL(ctx, cacheKey, cache.ExpiresFromHeaders(resp.Header)); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to update cache TTL")
		}
		return cache.EntryToResponse(staleEntry), nil
	}

	if resp.StatusCode >= 400 {
		errClass := c.classifyError(resp, nil)
		pokeapiErrorsTotal.WithLabelValues(string(errClass)).Inc()
		c.logger.Warn().
			Str("endpoint", req.URL.Path).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("PokeAPI request error")
		return resp, nil
	}

	// Step 6: Update cache on success
	if c.cache != nil && resp.StatusCode == http.StatusOK && req.Method == http.MethodGet {
		entry, err := cache.ResponseToEntry(resp)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Failed to create cache entry")
		} else if entry.TTL() > 0 {
			if err := c.cache.Set(ctx, cacheKey, entry); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to cache response")
			} else {
				c.logger.Debug().
					Str("endpoint", req.URL.Path).
					Dur("ttl", entry.TTL()).
					Msg("Cached response")
			}
		}
	}

	return resp, nil
}

// classifyError categorizes an error for observability and handling.
func (c *Client) classifyError(resp *http.Response, err error) ErrorClass {
	if err != nil {
		return ErrorClassNetwork
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrorClassRateLimit
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return ErrorClassClient
	case resp.StatusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// Get performs a GET request. endpoint is either an absolute URL (as found
// in PokeAPI summary references) or a path relative to the base URL.
func (c *Client) Get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolve(endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return c.Do(req)
}

// GetJSON performs a GET request and decodes a 2xx JSON body into v.
// Non-2xx responses are returned as *APIError.
func (c *Client) GetJSON(ctx context.Context, endpoint string, v any) error {
	resp, err := c.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			ErrorClass: c.classifyError(resp, nil),
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) resolve(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return c.baseURL.String() + "/" + strings.TrimLeft(endpoint, "/")
}

// BaseURL returns the API root the client resolves relative endpoints against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// RateLimitState returns a snapshot of the client-side rate limiter.
func (c *Client) RateLimitState() ratelimit.State {
	return c.rateLimiter.GetState()
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// GetCache returns the cache manager, or nil when caching is disabled.
func (c *Client) GetCache() *cache.Manager {
	return c.cache
}

// endpointLabel collapses numeric path segments so that per-resource
// requests share one metric series: /api/v2/pokemon/25/ -> /api/v2/pokemon/{id}
func endpointLabel(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if _, err := strconv.Atoi(seg); err == nil {
			segments[i] = "{id}"
		}
	}
	return "/" + strings.Join(segments, "/")
}
