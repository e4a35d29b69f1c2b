package mediatypes

import (
	"strconv"
	"strings"
)

// ImageKind identifies one of the two artwork slots of a catalog entry.
type ImageKind string

const (
	// ImagePoster is the portrait artwork shown beside the entry.
	ImagePoster ImageKind = "poster"
	// ImageBackdrop is the wide artwork shown behind the entry.
	ImageBackdrop ImageKind = "backdrop"
)

// ImageKinds lists every kind an entry can carry. Exactly these two exist;
// the set is closed.
var ImageKinds = []ImageKind{ImagePoster, ImageBackdrop}

// CandidateTitle is a lookup query paired with the file it came from.
// Path is empty for manually entered titles.
type CandidateTitle struct {
	Title string
	Path  string
}

// MovieFileSuffixes is the fixed set of recognized movie file formats.
var MovieFileSuffixes = []string{"mp4", "avi", "flv", "webm", "ogg", "mov", "3gp", "wmv"}

// IsMovieFile reports whether name looks like a movie file.
//
// Known quirk: this is a raw, case-sensitive suffix match rather than an
// extension match, so "weird.xmp4" is accepted. The behavior is kept
// deliberately; product has not asked for a stricter check.
func IsMovieFile(name string) bool {
	for _, suffix := range MovieFileSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// DeriveTitle turns a filename into a candidate lookup title.
//
// The name is split on "." and the segments are accumulated left to right,
// each followed by a space, stopping at (and excluding) the first segment
// that parses entirely as an integer. This drops the extension and trailing
// numeric tags (year, resolution) in one pass:
//
//	"Inception.mp4"        -> "Inception "
//	"The.Matrix.1999.mp4"  -> "The Matrix "
//
// A filename with no numeric segment yields every segment, extension
// included. The trailing space is part of the contract; the lookup service
// ignores it.
func DeriveTitle(fileName string) string {
	var b strings.Builder

	for _, part := range strings.Split(fileName, ".") {
		if _, err := strconv.Atoi(part); err == nil {
			break
		}
		b.WriteString(part)
		b.WriteString(" ")
	}

	return b.String()
}
