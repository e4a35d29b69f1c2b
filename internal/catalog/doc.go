// Package catalog holds the resolved movie collection that the rest of the
// application observes.
//
// An Entry bundles one resolved movie record with its cast summary, its
// fetched artwork, and the file it was discovered from. Entries are
// immutable once built.
//
// The Catalog keeps entries permanently sorted by case-insensitive title,
// deduplicated by movie ID, and safe under concurrent insertion from many
// scan workers. Every successful insert fires exactly one notification to
// each subscriber, carrying the entry's index at the moment of insertion.
// Notifications are delivered after the catalog's lock is released, so a
// subscriber may read the catalog freely from its callback — but the index
// it received may already be stale; anything beyond a one-shot reaction
// should re-query by movie ID.
package catalog
