package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, status := range []string{"found", "not_found"} {
		ResolutionsTotal.WithLabelValues(status)
	}

	for _, kind := range []string{"poster", "backdrop"} {
		for _, status := range []string{"ok", "error"} {
			ImageFetchesTotal.WithLabelValues(kind, status)
		}
	}

	for _, op := range []string{"save", "delete", "load"} {
		for _, status := range []string{"ok", "error"} {
			StoreOperationsTotal.WithLabelValues(op, status)
		}
	}
}
