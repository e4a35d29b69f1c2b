// Package scanner lists directories for the scan pipeline.
//
// ListDirectory performs a single, non-recursive listing, splitting the
// entries into subdirectories (which the coordinator dispatches as their own
// work items, so a deep tree never serializes behind a slow sibling) and
// candidate titles derived from recognized movie files.
//
// The scanner never fails a scan: an unreadable directory surfaces as an
// error for that one listing and the coordinator skips the subtree.
package scanner
