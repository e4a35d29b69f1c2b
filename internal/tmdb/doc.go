// Package tmdb is a minimal client for the parts of The Movie Database v3
// REST API that the catalog pipeline consumes: title search, movie details
// with credits, configuration ping, and artwork download from the image CDN.
//
// The client is stateless beyond its configuration and is safe for use from
// any number of goroutines. Failures are returned as opaque errors; callers
// fold them into their own per-title outcomes and never inspect the cause.
//
// Base URLs are settable so tests can point the client at httptest servers.
package tmdb
