// Package metrics provides Prometheus instrumentation for the movie catalog.
//
// Metrics are registered via promauto at package load and exported on the
// metrics port configured in startup. They cover the three stages of the
// pipeline (scanning, resolution, asset fetching), the catalog itself, and
// the HTTP adapter.
//
// Call InitializeMetrics once at startup so every labeled series is present
// from the first scrape rather than appearing on first use.
package metrics
