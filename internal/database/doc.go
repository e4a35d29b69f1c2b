// Package database persists catalog entries to SQLite.
//
// The store is a plain key-record mirror of the in-memory catalog: one row
// per movie ID holding the metadata fields, cast summary, and source path.
// Artwork rasters are not persisted; they are re-fetched by the next scan.
//
// The catalog functions fully without the store — persistence only decides
// what is visible immediately after a restart, before a rescan completes.
package database
