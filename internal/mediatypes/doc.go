// Package mediatypes provides shared type definitions and utilities for movie
// file handling across the movie-catalog application.
//
// This package exists as a dependency-free foundation that can be imported by
// other packages without creating import cycles. It contains primitive types,
// constants, and pure utility functions with no external dependencies beyond
// the standard library.
//
// # Movie File Detection
//
// Use IsMovieFile to decide whether a directory entry should be scanned:
//
//	if mediatypes.IsMovieFile(name) {
//	    // Derive a candidate title and queue it for resolution
//	}
//
// Note that matching is a raw suffix check against the fixed format list, not
// a proper extension check; see the function documentation for the details.
//
// # Title Derivation
//
// Use DeriveTitle to turn a filename into a lookup query:
//
//	title := mediatypes.DeriveTitle("The.Matrix.1999.mp4") // "The Matrix "
//
// # Image Kinds
//
// The package defines an ImageKind enum for the two artwork slots a catalog
// entry can carry:
//
//	mediatypes.ImagePoster
//	mediatypes.ImageBackdrop
package mediatypes
