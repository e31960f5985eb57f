// Package metrics defines the Prometheus collectors of the engine and exposes
// an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the engine.
type Metrics struct {
	SearchQueriesTotal   *prometheus.CounterVec
	SearchLatency        *prometheus.HistogramVec
	SearchResultsCount   *prometheus.HistogramVec
	DocsIndexedTotal     prometheus.Counter
	MalformedLinesTotal  prometheus.Counter
	SkippedFilesTotal    prometheus.Counter
	ReindexTotal         *prometheus.CounterVec
	JobsTotal            *prometheus.CounterVec
	CorpusDocuments      prometheus.Gauge
	CorpusTerms          prometheus.Gauge
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestsInFlight prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates all collectors and registers them with reg. A nil reg uses a
// fresh private registry, which keeps repeated construction in tests safe.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ire_search_queries_total",
				Help: "Total search queries by engine and result (hit, zero_result, error).",
			},
			[]string{"engine", "result"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ire_search_latency_seconds",
				Help:    "Search latency in seconds by engine.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"engine"},
		),
		SearchResultsCount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ire_search_results",
				Help:    "Number of ranked documents per search by engine.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 500, 1000},
			},
			[]string{"engine"},
		),
		DocsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ire_documents_indexed_total",
				Help: "Total documents indexed.",
			},
		),
		MalformedLinesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ire_malformed_lines_total",
				Help: "Total corpus lines skipped for having the wrong number of fields.",
			},
		),
		SkippedFilesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ire_skipped_files_total",
				Help: "Total corpus files skipped because they could not be read.",
			},
		),
		ReindexTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ire_reindex_total",
				Help: "Total full reindex runs by status.",
			},
			[]string{"status"},
		),
		JobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ire_jobs_total",
				Help: "Total background jobs by type and final status.",
			},
			[]string{"type", "status"},
		),
		CorpusDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ire_corpus_documents",
				Help: "Number of documents in the published corpus.",
			},
		),
		CorpusTerms: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ire_corpus_terms",
				Help: "Number of distinct terms in the published corpus.",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ire_http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ire_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.DocsIndexedTotal,
		m.MalformedLinesTotal,
		m.SkippedFilesTotal,
		m.ReindexTotal,
		m.JobsTotal,
		m.CorpusDocuments,
		m.CorpusTerms,
		m.HTTPRequestsTotal,
		m.HTTPRequestsInFlight,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler for the registry the
// metrics were registered with.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
