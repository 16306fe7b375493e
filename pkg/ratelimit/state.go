// Package ratelimit implements client-side request pacing for PokeAPI.
//
// PokeAPI is free and unauthenticated and asks consumers to limit how often
// they call it. The Tracker keeps requests under a configured rate with a
// token bucket and records how long callers had to wait.
package ratelimit

import (
	"time"
)

// Defaults for the token bucket.
const (
	// DefaultRequestsPerSecond keeps a full page load (1 list + 10 detail
	// calls) well inside a second.
	DefaultRequestsPerSecond = 20

	// DefaultBurst covers one page load without waiting: the list call
	// plus one detail call per record of a 10-record page.
	DefaultBurst = 11
)

// State is a snapshot of a Tracker.
type State struct {
	// RequestsPerSecond is the configured rate.
	RequestsPerSecond float64 `json:"requests_per_second"`

	// Burst is the bucket size.
	Burst int `json:"burst"`

	// Allowed counts requests that passed the limiter.
	Allowed int64 `json:"allowed"`

	// Throttled counts requests that had to wait for a token.
	Throttled int64 `json:"throttled"`

	// TotalWait is the accumulated time spent waiting.
	TotalWait time.Duration `json:"total_wait"`
}

// AverageWait returns the mean wait of throttled requests.
// Returns 0 if no request was throttled.
func (s State) AverageWait() time.Duration {
	if s.Throttled == 0 {
		return 0
	}
	return s.TotalWait / time.Duration(s.Throttled)
}

// IsThrottling reports whether any request has been delayed.
func (s State) IsThrottling() bool {
	return s.Throttled > 0
}
