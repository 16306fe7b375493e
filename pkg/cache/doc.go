// Package cache provides an optional Redis-backed HTTP response cache for
// PokeAPI requests.
//
// PokeAPI data changes rarely and the service asks clients to cache
// responses. The cache manager stores raw response bodies and validators:
//
// - TTL from Cache-Control max-age, falling back to Expires, then DefaultTTL
// - ETag support for conditional requests (If-None-Match)
// - Last-Modified support (If-Modified-Since)
// - Prometheus metrics for observability
// - Deterministic cache key generation
//
// Cached bodies are raw API payloads; adapted records are never stored, and
// nothing here outlives the Redis TTL.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.CacheKey{
//		Endpoint:    "/api/v2/pokemon",
//		QueryParams: url.Values{"offset": []string{"0"}, "limit": []string{"10"}},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// fetch from PokeAPI
//	}
//
// # Conditional Requests
//
//	if cache.ShouldMakeConditionalRequest(entry) {
//		cache.AddConditionalHeaders(req, entry)
//		// PokeAPI answers 304 if the resource is unchanged
//	}
//
// # Metrics
//
//   - pokeapi_cache_hits_total{layer="redis"} - Cache hits
//   - pokeapi_cache_misses_total - Cache misses
//   - pokeapi_cache_written_bytes_total{layer="redis"} - Bytes written to the cache
//   - pokeapi_304_responses_total - Conditional request successes
//   - pokeapi_conditional_requests_total - Conditional requests sent
//   - pokeapi_cache_errors_total{operation} - Cache operation errors
package cache
