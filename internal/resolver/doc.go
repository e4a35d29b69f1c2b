// Package resolver turns a candidate title into a fully detailed movie
// record using the lookup service.
//
// Resolution is a two-step exchange: a title search, then a detail request
// for the first result in the service's own ranking (no local re-ranking is
// attempted). Every failure mode — transport error, service error, zero
// results — folds into ErrNotFound, which is a recoverable per-title
// outcome: bulk scans log it and move on, manual adds surface it to the
// user.
//
// A Resolver holds no mutable state and may be shared across any number of
// scan workers.
package resolver
