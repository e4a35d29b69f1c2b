package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scanner metrics
var (
	ScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movie_catalog_scans_total",
			Help: "Total number of directory scans started",
		},
	)

	ScanCandidatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movie_catalog_scan_candidates_total",
			Help: "Total number of candidate titles discovered by scanning",
		},
	)

	ScanDirectoriesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movie_catalog_scan_directories_skipped_total",
			Help: "Total number of unreadable directories skipped during scans",
		},
	)

	ScanWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movie_catalog_scan_workers",
			Help: "Configured size of the scan worker pool",
		},
	)
)

// Resolution metrics
var (
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_catalog_resolutions_total",
			Help: "Total number of title resolutions against the lookup service",
		},
		[]string{"status"}, // "found", "not_found"
	)

	ResolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "movie_catalog_resolution_duration_seconds",
			Help:    "Duration of a full title resolution (search plus detail fetch)",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// Asset fetch metrics
var (
	ImageFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_catalog_image_fetches_total",
			Help: "Total number of artwork fetch attempts",
		},
		[]string{"kind", "status"}, // kind: "poster"/"backdrop", status: "ok"/"error"
	)
)

// Catalog metrics
var (
	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movie_catalog_entries",
			Help: "Current number of entries in the catalog",
		},
	)

	CatalogInsertsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movie_catalog_inserts_total",
			Help: "Total number of successful catalog inserts",
		},
	)
)

// Store metrics
var (
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_catalog_store_operations_total",
			Help: "Total number of catalog store operations",
		},
		[]string{"operation", "status"}, // operation: "save"/"delete"/"load"
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movie_catalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movie_catalog_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movie_catalog_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)
