package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestListDirectory(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "Inception.mp4"))
	writeFile(t, filepath.Join(dir, "The.Matrix.1999.mp4"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	if err := os.Mkdir(filepath.Join(dir, "series"), 0755); err != nil {
		t.Fatal(err)
	}

	listing, err := ListDirectory(dir)
	if err != nil {
		t.Fatalf("ListDirectory returned error: %v", err)
	}

	if len(listing.Subdirs) != 1 || filepath.Base(listing.Subdirs[0]) != "series" {
		t.Errorf("Subdirs = %v, want one entry 'series'", listing.Subdirs)
	}
	if len(listing.Titles) != 2 {
		t.Fatalf("got %d titles, want 2: %+v", len(listing.Titles), listing.Titles)
	}

	byTitle := make(map[string]string)
	for _, ct := range listing.Titles {
		byTitle[ct.Title] = ct.Path
	}
	if _, ok := byTitle["Inception "]; !ok {
		t.Errorf("missing derived title %q in %v", "Inception ", byTitle)
	}
	if _, ok := byTitle["The Matrix "]; !ok {
		t.Errorf("missing derived title %q in %v", "The Matrix ", byTitle)
	}
}

func TestListDirectorySuffixQuirk(t *testing.T) {
	dir := t.TempDir()
	// Raw suffix match: accepted even though ".xmp4" is not a known extension.
	writeFile(t, filepath.Join(dir, "weird.xmp4"))

	listing, err := ListDirectory(dir)
	if err != nil {
		t.Fatalf("ListDirectory returned error: %v", err)
	}
	if len(listing.Titles) != 1 {
		t.Errorf("got %d titles, want 1 (suffix-match quirk)", len(listing.Titles))
	}
}

func TestListDirectoryUnreadable(t *testing.T) {
	if _, err := ListDirectory(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestListDirectoryEmpty(t *testing.T) {
	listing, err := ListDirectory(t.TempDir())
	if err != nil {
		t.Fatalf("ListDirectory returned error: %v", err)
	}
	if len(listing.Subdirs) != 0 || len(listing.Titles) != 0 {
		t.Errorf("empty dir listing = %+v, want empty", listing)
	}
}
