package cache

import (
	"net/http"
	"time"
)

// CacheEntry is a cached PokeAPI response as stored in Redis.
type CacheEntry struct {
	Data []byte `json:"data"`

	// ETag validates the entry with If-None-Match.
	ETag string `json:"etag"`

	// Expires is when the entry stops being fresh. Redis keeps it for
	// StaleWindow afterwards so it can still be revalidated.
	Expires time.Time `json:"expires"`

	// LastModified validates the entry with If-Modified-Since.
	LastModified time.Time `json:"last_modified"`

	StatusCode int         `json:"status_code"`
	Headers    http.Header `json:"headers"`
	CachedAt   time.Time   `json:"cached_at"`
}

// IsExpired reports whether the entry is no longer fresh.
func (e *CacheEntry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the remaining freshness, or 0 once expired.
func (e *CacheEntry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// Age is the time since the response was cached.
func (e *CacheEntry) Age() time.Duration {
	if e.CachedAt.IsZero() {
		return 0
	}
	return time.Since(e.CachedAt)
}

// CanRevalidate reports whether the entry carries a validator for a
// conditional request.
func (e *CacheEntry) CanRevalidate() bool {
	return e.ETag != "" || !e.LastModified.IsZero()
}
