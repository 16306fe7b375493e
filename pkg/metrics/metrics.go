// Package metrics exposes the Prometheus registry used by the pokedex
// packages. Metrics are defined next to the code that records them
// (client, cache, ratelimit, pagination) and registered via promauto.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registerer all pokedex metrics are registered with.
var Registry = prometheus.DefaultRegisterer

// Handler serves the default gatherer in the Prometheus text format.
func Handler() http.Handler {
	return HandlerFor(prometheus.DefaultGatherer)
}

// HandlerFor serves g in the Prometheus text format.
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Metrics
//
// Request (pkg/client):
//   - pokeapi_requests_total{endpoint, status} (Counter)
//   - pokeapi_request_duration_seconds{endpoint} (Histogram)
//   - pokeapi_errors_total{class} (Counter): client, server, rate_limit, network
//
// Cache (pkg/cache):
//   - pokeapi_cache_hits_total{layer="redis"} (Counter)
//   - pokeapi_cache_misses_total (Counter)
//   - pokeapi_cache_written_bytes_total{layer="redis"} (Counter)
//   - pokeapi_304_responses_total (Counter)
//   - pokeapi_conditional_requests_total (Counter)
//   - pokeapi_cache_errors_total{operation} (Counter)
//
// Rate limit (pkg/ratelimit):
//   - pokeapi_rate_limit_wait_seconds (Histogram): time spent waiting for a token
//   - pokeapi_rate_limit_throttles_total (Counter): requests that had to wait
//
// Pagination (pkg/pagination):
//   - pokeapi_pages_loaded_total (Counter)
//   - pokeapi_page_failures_total (Counter)
//   - pokeapi_records_loaded_total (Counter)
//   - pokeapi_page_duration_seconds (Histogram)
//
// Example queries:
//
//	# Cache hit rate
//	sum(rate(pokeapi_cache_hits_total[5m])) /
//	(sum(rate(pokeapi_cache_hits_total[5m])) + sum(rate(pokeapi_cache_misses_total[5m])))
//
//	# Page failure ratio
//	rate(pokeapi_page_failures_total[5m]) / rate(pokeapi_pages_loaded_total[5m])
//
//	# P95 request latency
//	histogram_quantile(0.95, rate(pokeapi_request_duration_seconds_bucket[5m]))
