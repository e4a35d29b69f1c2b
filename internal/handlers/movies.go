package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/jpeg"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"movie-catalog/internal/catalog"
	"movie-catalog/internal/logging"
	"movie-catalog/internal/mediatypes"
	"movie-catalog/internal/resolver"
)

// jpegQuality is used when encoding rasters for delivery.
const jpegQuality = 85

// MovieResponse is the JSON shape of one catalog entry.
type MovieResponse struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Tagline     string   `json:"tagline,omitempty"`
	Overview    string   `json:"overview,omitempty"`
	ReleaseDate string   `json:"releaseDate,omitempty"`
	Year        string   `json:"year,omitempty"`
	Cast        string   `json:"cast,omitempty"`
	Images      []string `json:"images"`
	SourcePath  string   `json:"sourcePath,omitempty"`
	AddedAt     string   `json:"addedAt"`
}

// MovieListResponse is the JSON shape of the catalog listing.
type MovieListResponse struct {
	Movies []MovieResponse `json:"movies"`
	Count  int             `json:"count"`
}

func movieResponse(entry *catalog.Entry) MovieResponse {
	// Deterministic kind order; only fetched kinds are listed.
	images := make([]string, 0, len(entry.Images))
	for _, kind := range mediatypes.ImageKinds {
		if _, ok := entry.Image(kind); ok {
			images = append(images, string(kind))
		}
	}

	m := entry.Movie
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Tagline:     m.Tagline,
		Overview:    m.Overview,
		ReleaseDate: m.ReleaseDate,
		Year:        m.ReleaseYear(),
		Cast:        entry.CastSummary,
		Images:      images,
		SourcePath:  entry.SourcePath,
		AddedAt:     entry.AddedAt.Format(time.RFC3339),
	}
}

// ListMovies returns the catalog in its sorted order
func (h *Handlers) ListMovies(w http.ResponseWriter, _ *http.Request) {
	entries := h.catalog.Entries()
	movies := make([]MovieResponse, 0, len(entries))
	for _, entry := range entries {
		movies = append(movies, movieResponse(entry))
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, MovieListResponse{Movies: movies, Count: len(movies)})
}

// GetMovie returns a single catalog entry by TMDB ID
func (h *Handlers) GetMovie(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.entryFromRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, movieResponse(entry))
}

// AddMovieRequest is the body of a manual add.
type AddMovieRequest struct {
	Title string `json:"title"`
}

// AddMovie resolves a user-entered title and catalogs it
func (h *Handlers) AddMovie(w http.ResponseWriter, r *http.Request) {
	var req AddMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeJSONError(w, "title is required", http.StatusBadRequest)
		return
	}

	entry, err := h.coordinator.AddManual(r.Context(), title)
	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			writeJSONError(w, "no movies found", http.StatusNotFound)
			return
		}
		logging.Error("manual add failed for %q: %v", title, err)
		writeJSONError(w, "failed to add movie", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, movieResponse(entry))
}

// DeleteMovie removes a persisted entry from the store. The in-memory
// catalog is append-only; the row disappears from listings after the next
// restart.
func (h *Handlers) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r)
	if !ok {
		return
	}

	if h.store == nil {
		writeJSONError(w, "persistence is disabled", http.StatusServiceUnavailable)
		return
	}

	if err := h.store.DeleteEntry(id); err != nil {
		logging.Error("failed to delete movie %d: %v", id, err)
		writeJSONError(w, "failed to delete movie", http.StatusInternalServerError)
		return
	}

	writeJSONStatus(w, "deleted")
}

// GetPoster serves the entry's poster as JPEG
func (h *Handlers) GetPoster(w http.ResponseWriter, r *http.Request) {
	h.serveImage(w, r, mediatypes.ImagePoster)
}

// GetBackdrop serves the entry's backdrop as JPEG
func (h *Handlers) GetBackdrop(w http.ResponseWriter, r *http.Request) {
	h.serveImage(w, r, mediatypes.ImageBackdrop)
}

func (h *Handlers) serveImage(w http.ResponseWriter, r *http.Request, kind mediatypes.ImageKind) {
	entry, ok := h.entryFromRequest(w, r)
	if !ok {
		return
	}

	img, ok := entry.Image(kind)
	if !ok {
		writeJSONError(w, string(kind)+" not available", http.StatusNotFound)
		return
	}

	// Encode to a buffer first so a failed encode can still 500 cleanly.
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img.Image, &jpeg.Options{Quality: jpegQuality}); err != nil {
		logging.Error("failed to encode %s for movie %d: %v", kind, entry.Movie.ID, err)
		writeJSONError(w, "failed to encode image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := buf.WriteTo(w); err != nil {
		logging.Error("failed to write %s response: %v", kind, err)
	}
}

// idFromRequest parses the {id} route variable, writing a 400 on failure.
func idFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSONError(w, "invalid movie id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// entryFromRequest looks up the entry for the {id} route variable, writing
// a 400 or 404 on failure.
func (h *Handlers) entryFromRequest(w http.ResponseWriter, r *http.Request) (*catalog.Entry, bool) {
	id, ok := idFromRequest(w, r)
	if !ok {
		return nil, false
	}

	entry, ok := h.catalog.FindByID(id)
	if !ok {
		writeJSONError(w, "movie not found", http.StatusNotFound)
		return nil, false
	}
	return entry, true
}
