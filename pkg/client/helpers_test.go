package client

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/pokedex/pkg/cache"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q): %v", raw, err)
	}
	return u
}

// writeRaw stores entry as-is, bypassing the manager's freshness checks.
func writeRaw(t *testing.T, redisClient *redis.Client, key cache.CacheKey, entry *cache.CacheEntry) {
	t.Helper()
	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := redisClient.Set(context.Background(), key.String(), data, cache.StaleWindow).Err(); err != nil {
		t.Fatalf("Redis set failed: %v", err)
	}
}
