package ratelimit

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Prometheus metrics for request pacing.
var (
	pokeapiRateLimitWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pokeapi_rate_limit_wait_seconds",
		Help:    "Time requests spent waiting for a rate limit token",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
	})

	pokeapiRateLimitThrottlesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokeapi_rate_limit_throttles_total",
		Help: "Total number of requests delayed by the client-side rate limit",
	})
)

// throttleThreshold is the wait below which a request is not counted as throttled.
const throttleThreshold = time.Millisecond

// Tracker paces outgoing requests with a token bucket.
// Safe for concurrent use.
type Tracker struct {
	limiter *rate.Limiter
	logger  zerolog.Logger

	allowed   atomic.Int64
	throttled atomic.Int64
	totalWait atomic.Int64 // nanoseconds
}

// NewTracker creates a tracker allowing rps requests per second with the given burst.
// Non-positive values fall back to the package defaults.
func NewTracker(rps float64, burst int, logger zerolog.Logger) *Tracker {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &Tracker{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// Wait blocks until a request may be sent or ctx is done.
func (t *Tracker) Wait(ctx context.Context) error {
	start := time.Now()
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	waited := time.Since(start)

	t.allowed.Add(1)
	pokeapiRateLimitWaitSeconds.Observe(waited.Seconds())

	if waited >= throttleThreshold {
		t.throttled.Add(1)
		t.totalWait.Add(int64(waited))
		pokeapiRateLimitThrottlesTotal.Inc()
		t.logger.Debug().
			Dur("wait", waited).
			Msg("Request throttled by client-side rate limit")
	}

	return nil
}

// Allow reports whether a request may be sent now without waiting.
func (t *Tracker) Allow() bool {
	if !t.limiter.Allow() {
		return false
	}
	t.allowed.Add(1)
	return true
}

// GetState returns a snapshot of the tracker.
func (t *Tracker) GetState() State {
	return State{
		RequestsPerSecond: float64(t.limiter.Limit()),
		Burst:             t.limiter.Burst(),
		Allowed:           t.allowed.Load(),
		Throttled:         t.throttled.Load(),
		TotalWait:         time.Duration(t.totalWait.Load()),
	}
}

// SetRate changes the allowed request rate.
func (t *Tracker) SetRate(rps float64) {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	t.limiter.SetLimit(rate.Limit(rps))
	t.logger.Info().Float64("requests_per_second", rps).Msg("Rate limit updated")
}
