// Package startup handles application initialization: configuration loading
// from environment variables, directory validation, build information, and
// the structured startup/shutdown log output.
//
// Configuration is read once by LoadConfig. TMDB_API_KEY is the only
// required setting; everything else has a default. Persistence is a
// feature flag: when the database directory cannot be made writable the
// catalog simply runs in-memory.
package startup
