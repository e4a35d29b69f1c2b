// Package assets retrieves and prepares the artwork for a catalog entry.
//
// For each resolved movie the fetcher downloads the poster (size tag w342)
// and the backdrop (w780) from the image source, decodes them, and — when
// both are available — rescales the backdrop to the poster's height with
// Lanczos resampling, deriving the width from the original aspect ratio.
//
// Artwork is strictly best-effort. A missing path reference, a failed
// download, or an undecodable payload silently drops that one image kind;
// the entry is still cataloged with whatever artwork survived. Fetch never
// returns an error and never retries.
package assets
