package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for page loading.
var (
	pokeapiPagesLoadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokeapi_pages_loaded_total",
		Help: "Total number of pages loaded completely",
	})

	pokeapiPageFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokeapi_page_failures_total",
		Help: "Total number of pages that failed and yielded no records",
	})

	pokeapiRecordsLoadedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokeapi_records_loaded_total",
		Help: "Total number of Pokémon records loaded through pages",
	})

	pokeapiPageDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pokeapi_page_duration_seconds",
		Help:    "Time to resolve one page including all detail requests",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})
)
