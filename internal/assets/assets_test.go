package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"movie-catalog/internal/mediatypes"
	"movie-catalog/internal/tmdb"
)

// pngBytes encodes a solid-color image of the given dimensions.
func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 60, B: 80, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

type fakeSource struct {
	bySize map[string][]byte
	errFor map[string]error
}

func (f *fakeSource) FetchImage(_ context.Context, _ string, sizeTag string) ([]byte, error) {
	if err := f.errFor[sizeTag]; err != nil {
		return nil, err
	}
	data, ok := f.bySize[sizeTag]
	if !ok {
		return nil, errors.New("no such image")
	}
	return data, nil
}

func testMovie() *tmdb.Movie {
	return &tmdb.Movie{
		ID:           1,
		Title:        "Test Movie",
		PosterPath:   "/poster.jpg",
		BackdropPath: "/backdrop.jpg",
	}
}

func TestFetchBothImages(t *testing.T) {
	source := &fakeSource{bySize: map[string][]byte{
		PosterSize:   pngBytes(t, 342, 513),
		BackdropSize: pngBytes(t, 780, 439),
	}}

	images := New(source).Fetch(context.Background(), testMovie())

	poster, ok := images[mediatypes.ImagePoster]
	if !ok {
		t.Fatal("poster missing")
	}
	backdrop, ok := images[mediatypes.ImageBackdrop]
	if !ok {
		t.Fatal("backdrop missing")
	}

	if poster.Width != 342 || poster.Height != 513 {
		t.Errorf("poster = %dx%d, want 342x513", poster.Width, poster.Height)
	}
	if backdrop.Height != poster.Height {
		t.Errorf("backdrop height = %d, want poster height %d", backdrop.Height, poster.Height)
	}

	// Width must stay proportional to the original 780x439 aspect ratio.
	wantWidth := int(float64(780) * float64(poster.Height) / float64(439))
	if diff := backdrop.Width - wantWidth; diff < -2 || diff > 2 {
		t.Errorf("backdrop width = %d, want ~%d (proportional)", backdrop.Width, wantWidth)
	}
}

func TestFetchBackdropTallerThanPoster(t *testing.T) {
	source := &fakeSource{bySize: map[string][]byte{
		PosterSize:   pngBytes(t, 100, 150),
		BackdropSize: pngBytes(t, 200, 400),
	}}

	images := New(source).Fetch(context.Background(), testMovie())

	backdrop := images[mediatypes.ImageBackdrop]
	if backdrop.Height != 150 {
		t.Errorf("backdrop height = %d, want 150", backdrop.Height)
	}
	wantWidth := int(float64(200) * 150.0 / 400.0)
	if diff := backdrop.Width - wantWidth; diff < -2 || diff > 2 {
		t.Errorf("backdrop width = %d, want ~%d", backdrop.Width, wantWidth)
	}
}

func TestFetchBackdropUnavailable(t *testing.T) {
	source := &fakeSource{
		bySize: map[string][]byte{PosterSize: pngBytes(t, 342, 513)},
		errFor: map[string]error{BackdropSize: errors.New("timeout")},
	}

	images := New(source).Fetch(context.Background(), testMovie())

	if _, ok := images[mediatypes.ImagePoster]; !ok {
		t.Error("poster missing despite successful fetch")
	}
	if _, ok := images[mediatypes.ImageBackdrop]; ok {
		t.Error("backdrop present despite failed fetch")
	}
}

func TestFetchUndecodableBytes(t *testing.T) {
	source := &fakeSource{bySize: map[string][]byte{
		PosterSize:   []byte("not an image"),
		BackdropSize: pngBytes(t, 780, 439),
	}}

	images := New(source).Fetch(context.Background(), testMovie())

	if _, ok := images[mediatypes.ImagePoster]; ok {
		t.Error("poster present despite undecodable payload")
	}
	// Without a poster the backdrop keeps its original dimensions.
	backdrop, ok := images[mediatypes.ImageBackdrop]
	if !ok {
		t.Fatal("backdrop missing")
	}
	if backdrop.Width != 780 || backdrop.Height != 439 {
		t.Errorf("backdrop = %dx%d, want unscaled 780x439", backdrop.Width, backdrop.Height)
	}
}

func TestFetchMissingPathRefs(t *testing.T) {
	source := &fakeSource{}
	movie := &tmdb.Movie{ID: 2, Title: "No Art"}

	images := New(source).Fetch(context.Background(), movie)
	if len(images) != 0 {
		t.Errorf("got %d images for movie without path refs, want 0", len(images))
	}
}
