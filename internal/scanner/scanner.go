package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"movie-catalog/internal/logging"
	"movie-catalog/internal/mediatypes"
)

// Listing is the result of listing one directory.
type Listing struct {
	// Subdirs are absolute paths of child directories, in listing order.
	Subdirs []string
	// Titles are the candidate titles derived from recognized movie files.
	Titles []mediatypes.CandidateTitle
}

// ListDirectory reads a single directory level. Files are matched with
// mediatypes.IsMovieFile and turned into candidate titles; directories are
// returned for the caller to schedule. Entry order is whatever the
// filesystem reports; the catalog's sort makes it irrelevant.
func ListDirectory(dir string) (*Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	listing := &Listing{}
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if entry.IsDir() {
			listing.Subdirs = append(listing.Subdirs, path)
			continue
		}
		if !mediatypes.IsMovieFile(name) {
			continue
		}

		title := mediatypes.DeriveTitle(name)
		logging.Debug("Found movie file %s, candidate title %q", path, title)
		listing.Titles = append(listing.Titles, mediatypes.CandidateTitle{
			Title: title,
			Path:  path,
		})
	}

	return listing, nil
}
