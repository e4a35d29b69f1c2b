package resolver

import (
	"context"
	"errors"
	"time"

	"movie-catalog/internal/logging"
	"movie-catalog/internal/metrics"
	"movie-catalog/internal/tmdb"
)

// ErrNotFound is returned when a title yields no usable lookup match,
// whether because the service returned zero results or because either
// request failed. Callers distinguish only found from not found.
var ErrNotFound = errors.New("no movies found")

// Lookup is the slice of the lookup-service client the resolver consumes.
type Lookup interface {
	Search(ctx context.Context, query string) ([]tmdb.SearchResult, error)
	Details(ctx context.Context, id int) (*tmdb.Movie, error)
}

// Resolver resolves candidate titles into detailed movie records.
type Resolver struct {
	lookup Lookup
}

// New creates a Resolver backed by the given lookup service.
func New(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve searches for title and returns the detail record of the first
// result in service order. It returns ErrNotFound for every per-title
// failure; the error is never fatal to a scan.
func (r *Resolver) Resolve(ctx context.Context, title string) (*tmdb.Movie, error) {
	start := time.Now()
	defer func() {
		metrics.ResolutionDuration.Observe(time.Since(start).Seconds())
	}()

	logging.Debug("Searching for movie: %q", title)

	results, err := r.lookup.Search(ctx, title)
	if err != nil {
		logging.Warn("Search failed for %q: %v", title, err)
		metrics.ResolutionsTotal.WithLabelValues("not_found").Inc()
		return nil, ErrNotFound
	}
	if len(results) == 0 {
		logging.Debug("No results for %q", title)
		metrics.ResolutionsTotal.WithLabelValues("not_found").Inc()
		return nil, ErrNotFound
	}

	chosen := results[0]
	logging.Debug("Picking first matching movie for %q: %q (id %d)", title, chosen.Title, chosen.ID)

	movie, err := r.lookup.Details(ctx, chosen.ID)
	if err != nil {
		logging.Warn("Detail fetch failed for %q (id %d): %v", title, chosen.ID, err)
		metrics.ResolutionsTotal.WithLabelValues("not_found").Inc()
		return nil, ErrNotFound
	}

	metrics.ResolutionsTotal.WithLabelValues("found").Inc()
	return movie, nil
}
