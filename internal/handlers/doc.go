// Package handlers provides the HTTP handlers for the movie catalog API.
//
// It includes:
//   - Catalog listing and single-entry lookup by TMDB ID
//   - Poster and backdrop delivery as JPEG
//   - Manual title addition and store-backed removal
//   - Scan triggering and progress reporting
//   - Health, readiness, and version endpoints
package handlers
