// Package metrics exposes Prometheus instrumentation for the search server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsearch"

var (
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Time spent ranking a query",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
		[]string{"mode"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of results returned per query",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"mode"},
	)

	ResultSelectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "result_selections_total",
			Help:      "Total number of search results opened",
		},
	)

	IndexedDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "indexed_documents",
			Help:      "Number of published documents in the search index",
		},
	)

	IndexReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_reloads_total",
			Help:      "Content reloads by outcome",
		},
		[]string{"status"}, // "ok" / "error"
	)
)

func init() {
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(ResultSelectionsTotal)
	prometheus.MustRegister(IndexedDocuments)
	prometheus.MustRegister(IndexReloadsTotal)
}

// ObserveSearch records one query's latency and result count.
func ObserveSearch(mode string, elapsed time.Duration, results int) {
	SearchDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	SearchResults.WithLabelValues(mode).Observe(float64(results))
}
