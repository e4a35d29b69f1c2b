package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"movie-catalog/internal/assets"
	"movie-catalog/internal/catalog"
	"movie-catalog/internal/database"
	"movie-catalog/internal/mediatypes"
	"movie-catalog/internal/resolver"
	"movie-catalog/internal/scan"
	"movie-catalog/internal/startup"
	"movie-catalog/internal/tmdb"
)

// fakeLookup resolves titles from a fixed map. An optional gate blocks
// every search until the channel is closed.
type fakeLookup struct {
	movies map[string]*tmdb.Movie
	gate   chan struct{}
}

func (f *fakeLookup) Search(_ context.Context, query string) ([]tmdb.SearchResult, error) {
	if f.gate != nil {
		<-f.gate
	}
	movie, ok := f.movies[query]
	if !ok {
		return nil, nil
	}
	return []tmdb.SearchResult{{ID: movie.ID, Title: movie.Title}}, nil
}

func (f *fakeLookup) Details(_ context.Context, id int) (*tmdb.Movie, error) {
	for _, m := range f.movies {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, errors.New("unknown id")
}

// failingSource always fails, so added entries carry no artwork.
type failingSource struct{}

func (failingSource) FetchImage(context.Context, string, string) ([]byte, error) {
	return nil, errors.New("image source down")
}

type testEnv struct {
	catalog     *catalog.Catalog
	coordinator *scan.Coordinator
	router      *mux.Router
	mediaDir    string
}

func newTestEnv(t *testing.T, lookup *fakeLookup, store *database.Database) *testEnv {
	t.Helper()

	cat := catalog.New()
	co := scan.New(
		resolver.New(lookup),
		assets.New(failingSource{}),
		cat,
		scan.Config{Workers: 2, QueueSize: 8},
	)
	mediaDir := t.TempDir()
	h := New(cat, co, store, &startup.Config{MediaDir: mediaDir})

	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/movies", h.ListMovies).Methods("GET")
	api.HandleFunc("/movies", h.AddMovie).Methods("POST")
	api.HandleFunc("/movies/{id}", h.GetMovie).Methods("GET")
	api.HandleFunc("/movies/{id}", h.DeleteMovie).Methods("DELETE")
	api.HandleFunc("/movies/{id}/poster", h.GetPoster).Methods("GET")
	api.HandleFunc("/movies/{id}/backdrop", h.GetBackdrop).Methods("GET")
	api.HandleFunc("/scan", h.TriggerScan).Methods("POST")
	api.HandleFunc("/scan/progress", h.ScanProgress).Methods("GET")

	return &testEnv{catalog: cat, coordinator: co, router: r, mediaDir: mediaDir}
}

func (env *testEnv) do(method, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func knownMovies() map[string]*tmdb.Movie {
	return map[string]*tmdb.Movie{
		"Inception": {
			ID:          1,
			Title:       "Inception",
			ReleaseDate: "2010-07-15",
			Credits:     tmdb.Credits{Cast: []tmdb.CastMember{{Name: "Leonardo DiCaprio"}}},
		},
	}
}

func testRaster(w, h int) assets.RenderableImage {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	return assets.RenderableImage{Image: img, Width: w, Height: h}
}

func insertEntry(env *testEnv, id int, title string, images map[mediatypes.ImageKind]assets.RenderableImage) {
	env.catalog.Insert(catalog.NewEntry(&tmdb.Movie{ID: id, Title: title}, images, "/media/"+title+".mp4"))
}

func TestListMoviesEmpty(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{}, nil)

	rec := env.do("GET", "/api/movies", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp MovieListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 0 || len(resp.Movies) != 0 {
		t.Errorf("response = %+v, want empty listing", resp)
	}
}

func TestListMoviesSorted(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{}, nil)
	insertEntry(env, 2, "Zodiac", nil)
	insertEntry(env, 1, "alien", nil)
	insertEntry(env, 3, "Inception", nil)

	rec := env.do("GET", "/api/movies", "")
	var resp MovieListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	var titles []string
	for _, m := range resp.Movies {
		titles = append(titles, m.Title)
	}
	want := []string{"alien", "Inception", "Zodiac"}
	for i := range want {
		if i >= len(titles) || titles[i] != want[i] {
			t.Fatalf("titles = %v, want %v", titles, want)
		}
	}
}

func TestGetMovie(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{}, nil)
	images := map[mediatypes.ImageKind]assets.RenderableImage{
		mediatypes.ImagePoster: testRaster(4, 6),
	}
	insertEntry(env, 42, "Inception", images)

	rec := env.do("GET", "/api/movies/42", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp MovieResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != 42 || resp.Title != "Inception" {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Images) != 1 || resp.Images[0] != "poster" {
		t.Errorf("Images = %v, want [poster]", resp.Images)
	}
}

func TestGetMovieNotFound(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{}, nil)
	if rec := env.do("GET", "/api/movies/99", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetMovieInvalidID(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{}, nil)
	if rec := env.do("GET", "/api/movies/abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAddMovie(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{movies: knownMovies()}, nil)

	rec := env.do("POST", "/api/movies", `{"title": "Inception"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	var resp MovieResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Title != "Inception" || resp.Year != "2010" {
		t.Errorf("response = %+v", resp)
	}
	if resp.SourcePath != "" {
		t.Errorf("SourcePath = %q, want empty for manual add", resp.SourcePath)
	}
	if env.catalog.Size() != 1 {
		t.Errorf("catalog size = %d, want 1", env.catalog.Size())
	}
}

func TestAddMovieNotFound(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{movies: knownMovies()}, nil)

	rec := env.do("POST", "/api/movies", `{"title": "No Such Movie"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no movies found") {
		t.Errorf("body = %q, want the not-found message", rec.Body.String())
	}
}

func TestAddMovieBadRequest(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{}, nil)

	if rec := env.do("POST", "/api/movies", "{not json"); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", rec.Code)
	}
	if rec := env.do("POST", "/api/movies", `{"title": "  "}`); rec.Code != http.StatusBadRequest {
		t.Errorf("blank title: status = %d, want 400", rec.Code)
	}
}

func TestGetPoster(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{}, nil)
	images := map[mediatypes.ImageKind]assets.RenderableImage{
		mediatypes.ImagePoster: testRaster(8, 12),
	}
	insertEntry(env, 7, "Alien", images)

	rec := env.do("GET", "/api/movies/7/poster", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q, want image/jpeg", ct)
	}

	img, err := jpeg.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("decoding served poster: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 12 {
		t.Errorf("served poster is %dx%d, want 8x12", b.Dx(), b.Dy())
	}
}

func TestGetBackdropAbsentIs404(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{}, nil)
	insertEntry(env, 7, "Alien", map[mediatypes.ImageKind]assets.RenderableImage{
		mediatypes.ImagePoster: testRaster(4, 6),
	})

	if rec := env.do("GET", "/api/movies/7/backdrop", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteMovieWithoutStore(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{}, nil)
	insertEntry(env, 7, "Alien", nil)

	if rec := env.do("DELETE", "/api/movies/7", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when persistence is disabled", rec.Code)
	}
}

func TestDeleteMovie(t *testing.T) {
	store, err := database.New(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	env := newTestEnv(t, &fakeLookup{}, store)
	entry := catalog.NewEntry(&tmdb.Movie{ID: 7, Title: "Alien"}, nil, "")
	env.catalog.Insert(entry)
	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("SaveEntry: %v", err)
	}

	if rec := env.do("DELETE", "/api/movies/7", ""); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	entries, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("store has %d entries after delete, want 0", len(entries))
	}
}

func TestTriggerScan(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{movies: knownMovies()}, nil)

	rec := env.do("POST", "/api/scan", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}

	// The media root is an empty temp dir, so the scan finishes quickly.
	deadline := time.After(5 * time.Second)
	for env.coordinator.IsScanning() {
		select {
		case <-deadline:
			t.Fatal("scan never finished")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestTriggerScanConflict(t *testing.T) {
	gate := make(chan struct{})
	env := newTestEnv(t, &fakeLookup{movies: knownMovies(), gate: gate}, nil)

	if err := os.WriteFile(filepath.Join(env.mediaDir, "Inception.mp4"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	// Back-to-back triggers: the scan slot is claimed before the first
	// response is written, so the second cannot also report started.
	if rec := env.do("POST", "/api/scan", ""); rec.Code != http.StatusAccepted {
		t.Fatalf("first trigger status = %d, want 202", rec.Code)
	}
	if rec := env.do("POST", "/api/scan", ""); rec.Code != http.StatusConflict {
		t.Errorf("second trigger status = %d, want 409 while a scan is running", rec.Code)
	}

	close(gate)
	deadline := time.After(5 * time.Second)
	for env.coordinator.IsScanning() {
		select {
		case <-deadline:
			t.Fatal("scan never finished")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestScanProgressEndpoint(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{}, nil)

	rec := env.do("GET", "/api/scan/progress", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var p scan.Progress
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decoding progress: %v", err)
	}
	if p.Scanning {
		t.Error("Scanning = true before any scan")
	}
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{}, nil)
	insertEntry(env, 1, "Inception", nil)

	rec := env.do("GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != statusHealthy {
		t.Errorf("Status = %q, want %q", resp.Status, statusHealthy)
	}
	if resp.CatalogSize != 1 {
		t.Errorf("CatalogSize = %d, want 1", resp.CatalogSize)
	}
	if resp.Persistence {
		t.Error("Persistence = true without a store")
	}
}

func TestReadinessCheck(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{}, nil)
	if rec := env.do("GET", "/readyz", ""); rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestGetVersion(t *testing.T) {
	env := newTestEnv(t, &fakeLookup{}, nil)

	rec := env.do("GET", "/version", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var info startup.BuildInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if info.Version == "" || info.GoVersion == "" {
		t.Errorf("incomplete build info: %+v", info)
	}
}
