// Package scan orchestrates the catalog pipeline: directory walking, title
// resolution, artwork fetching, and catalog insertion.
//
// A Coordinator runs a bounded worker pool. Both directory listings and
// candidate titles are ordinary pool work items — recursing into a
// subdirectory is dispatched like any other unit of work, so a deep tree
// does not serialize behind a slow sibling subtree, and the pool bound is
// the backpressure protecting the rate-limited lookup service.
//
// Per-title failures never fail a scan. A title that resolves to nothing is
// counted and logged; an unreadable directory is counted and its subtree
// skipped; missing artwork still produces a catalog entry. Cancelling the
// context stops new work from being dispatched while in-flight items finish.
//
// AddManual runs the same resolve, fetch, and insert sequence synchronously
// for one user-entered title and surfaces resolver.ErrNotFound so the
// caller can report "no movies found" instead of silently doing nothing.
package scan
