package catalog

import (
	"strings"
	"time"

	"movie-catalog/internal/assets"
	"movie-catalog/internal/mediatypes"
	"movie-catalog/internal/tmdb"
)

// maxCastNames caps the cast summary at the first credited names. Kept as
// one explicit constant; the summary never carries a trailing separator.
const maxCastNames = 10

// Entry is one cataloged movie: the resolved record, its derived cast
// summary, its artwork, and the file it came from (empty for manual adds).
// Entries are immutable after construction.
type Entry struct {
	Movie       *tmdb.Movie
	CastSummary string
	Images      map[mediatypes.ImageKind]assets.RenderableImage
	SourcePath  string
	AddedAt     time.Time
}

// NewEntry builds an immutable catalog entry from a resolved movie, its
// fetched artwork, and the originating file path.
func NewEntry(movie *tmdb.Movie, images map[mediatypes.ImageKind]assets.RenderableImage, sourcePath string) *Entry {
	if images == nil {
		images = make(map[mediatypes.ImageKind]assets.RenderableImage)
	}
	return &Entry{
		Movie:       movie,
		CastSummary: castSummary(movie.Cast()),
		Images:      images,
		SourcePath:  sourcePath,
		AddedAt:     time.Now(),
	}
}

// RestoredEntry rebuilds an entry from persisted fields. The cast summary
// is taken as stored rather than re-derived, since the store does not keep
// the full cast list, and artwork starts out absent until the next scan
// re-fetches it.
func RestoredEntry(movie *tmdb.Movie, castSummary, sourcePath string, addedAt time.Time) *Entry {
	return &Entry{
		Movie:       movie,
		CastSummary: castSummary,
		Images:      make(map[mediatypes.ImageKind]assets.RenderableImage),
		SourcePath:  sourcePath,
		AddedAt:     addedAt,
	}
}

// Title returns the entry's display title.
func (e *Entry) Title() string {
	return e.Movie.Title
}

// Image returns the raster for the given kind, if it was fetched.
func (e *Entry) Image(kind mediatypes.ImageKind) (assets.RenderableImage, bool) {
	img, ok := e.Images[kind]
	return img, ok
}

// orderKey is the catalog's sort key: the title, case-folded.
func (e *Entry) orderKey() string {
	return strings.ToLower(e.Movie.Title)
}

// castSummary joins the first maxCastNames credited names, in credited
// order, separated by ", " with no trailing separator.
func castSummary(cast []tmdb.CastMember) string {
	n := len(cast)
	if n > maxCastNames {
		n = maxCastNames
	}

	names := make([]string, 0, n)
	for _, member := range cast[:n] {
		names = append(names, member.Name)
	}
	return strings.Join(names, ", ")
}
