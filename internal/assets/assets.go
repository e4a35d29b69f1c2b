package assets

import (
	"bytes"
	"context"
	"image"

	"movie-catalog/internal/logging"
	"movie-catalog/internal/mediatypes"
	"movie-catalog/internal/metrics"
	"movie-catalog/internal/tmdb"

	// Image format decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP format support
)

const (
	// PosterSize is the image-source size bucket for posters.
	PosterSize = "w342"
	// BackdropSize is the image-source size bucket for backdrops.
	BackdropSize = "w780"
)

// RenderableImage is a decoded raster ready for presentation.
type RenderableImage struct {
	Image  image.Image
	Width  int
	Height int
}

// ImageSource is the slice of the image-source client the fetcher consumes.
type ImageSource interface {
	FetchImage(ctx context.Context, pathRef, sizeTag string) ([]byte, error)
}

// Fetcher downloads and decodes artwork. It holds no cross-call state and
// is safe for concurrent use.
type Fetcher struct {
	source ImageSource
}

// New creates a Fetcher backed by the given image source.
func New(source ImageSource) *Fetcher {
	return &Fetcher{source: source}
}

// Fetch retrieves the poster and backdrop for movie. The returned map has
// zero, one, or two entries; each failed image kind is simply absent. When
// both decode, the backdrop is rescaled so its height equals the poster's,
// width proportional to the original aspect ratio.
func (f *Fetcher) Fetch(ctx context.Context, movie *tmdb.Movie) map[mediatypes.ImageKind]RenderableImage {
	images := make(map[mediatypes.ImageKind]RenderableImage)

	poster, ok := f.fetchOne(ctx, mediatypes.ImagePoster, movie.PosterPath, PosterSize)
	if ok {
		images[mediatypes.ImagePoster] = poster
	}

	backdrop, ok := f.fetchOne(ctx, mediatypes.ImageBackdrop, movie.BackdropPath, BackdropSize)
	if ok {
		if _, hasPoster := images[mediatypes.ImagePoster]; hasPoster {
			backdrop = scaleToHeight(backdrop, poster.Height)
		}
		images[mediatypes.ImageBackdrop] = backdrop
	}

	return images
}

// fetchOne downloads and decodes a single image kind. A false return means
// the kind is unavailable; the cause has already been logged.
func (f *Fetcher) fetchOne(ctx context.Context, kind mediatypes.ImageKind, pathRef, sizeTag string) (RenderableImage, bool) {
	if pathRef == "" {
		logging.Debug("No %s path reference, skipping", kind)
		metrics.ImageFetchesTotal.WithLabelValues(string(kind), "error").Inc()
		return RenderableImage{}, false
	}

	data, err := f.source.FetchImage(ctx, pathRef, sizeTag)
	if err != nil {
		logging.Warn("Could not fetch %s %q: %v", kind, pathRef, err)
		metrics.ImageFetchesTotal.WithLabelValues(string(kind), "error").Inc()
		return RenderableImage{}, false
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logging.Warn("Could not decode %s %q: %v", kind, pathRef, err)
		metrics.ImageFetchesTotal.WithLabelValues(string(kind), "error").Inc()
		return RenderableImage{}, false
	}

	bounds := img.Bounds()
	metrics.ImageFetchesTotal.WithLabelValues(string(kind), "ok").Inc()
	return RenderableImage{
		Image:  img,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, true
}

// scaleToHeight resizes ri to the target height, computing the width from
// the aspect ratio. Lanczos gives the smooth resampling the presentation
// layer expects for backdrops.
func scaleToHeight(ri RenderableImage, height int) RenderableImage {
	if ri.Height == height || height <= 0 {
		return ri
	}
	resized := imaging.Resize(ri.Image, 0, height, imaging.Lanczos)
	bounds := resized.Bounds()
	return RenderableImage{
		Image:  resized,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
}
