package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"

	// Cap on artwork downloads; the largest size tag we request (w780)
	// stays far below this.
	maxImageBytes = 32 << 20
)

// CastMember is one credited cast entry, in the service's credited order.
type CastMember struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// Movie is the detail-level record for one movie. The ID is assigned by the
// service and is the only safe cross-reference key; titles are not unique.
// A Movie is never mutated after the detail fetch.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Tagline      string  `json:"tagline"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	BackdropPath string  `json:"backdrop_path"`
	PosterPath   string  `json:"poster_path"`
	Credits      Credits `json:"credits"`
}

// Credits is the cast block appended to a detail response.
type Credits struct {
	Cast []CastMember `json:"cast"`
}

// Cast returns the credited cast list in credited order.
func (m *Movie) Cast() []CastMember {
	return m.Credits.Cast
}

// ReleaseYear returns the year portion of the release date, or "" when the
// service supplied no date.
func (m *Movie) ReleaseYear() string {
	if i := strings.IndexByte(m.ReleaseDate, '-'); i > 0 {
		return m.ReleaseDate[:i]
	}
	return ""
}

// SearchResult is one summary row from a title search, in service order.
type SearchResult struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

// Client talks to the TMDB REST API and image CDN.
type Client struct {
	apiKey       string
	language     string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
}

// New creates a TMDB client for the given API key. The language is passed to
// search and detail requests; empty defaults to "en".
func New(apiKey, language string) *Client {
	if language == "" {
		language = "en"
	}
	return &Client{
		apiKey:       apiKey,
		language:     language,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// SetImageBaseURL overrides the image CDN base URL. Used by tests.
func (c *Client) SetImageBaseURL(u string) {
	c.imageBaseURL = strings.TrimRight(u, "/")
}

// Ping verifies the service is reachable and the API key is accepted by
// requesting the configuration endpoint. The caller treats a failure here
// as fatal: the application has no function without the lookup service.
func (c *Client) Ping(ctx context.Context) error {
	reqURL := fmt.Sprintf("%s/configuration?api_key=%s", c.baseURL, url.QueryEscape(c.apiKey))

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return fmt.Errorf("lookup service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lookup service rejected configuration request: %s", resp.Status)
	}
	return nil
}

// Search queries the movie search endpoint and returns the results in the
// order the service ranked them.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	reqURL := fmt.Sprintf("%s/search/movie?api_key=%s&language=%s&query=%s",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(c.language), url.QueryEscape(query))

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned %s", resp.Status)
	}

	var body struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	return body.Results, nil
}

// Details fetches the full record for one movie ID, credits included.
func (c *Client) Details(ctx context.Context, id int) (*Movie, error) {
	reqURL := fmt.Sprintf("%s/movie/%d?api_key=%s&language=%s&append_to_response=credits",
		c.baseURL, id, url.QueryEscape(c.apiKey), url.QueryEscape(c.language))

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("details for %d returned %s", id, resp.Status)
	}

	var movie Movie
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return nil, fmt.Errorf("decoding details response: %w", err)
	}
	return &movie, nil
}

// FetchImage downloads raw artwork bytes. pathRef is the opaque relative
// path from a Movie record and sizeTag is a CDN size bucket such as "w342"
// or "w780".
func (c *Client) FetchImage(ctx context.Context, pathRef, sizeTag string) ([]byte, error) {
	if pathRef == "" {
		return nil, fmt.Errorf("empty image path")
	}
	if !strings.HasPrefix(pathRef, "/") {
		pathRef = "/" + pathRef
	}
	reqURL := fmt.Sprintf("%s/%s%s", c.imageBaseURL, sizeTag, pathRef)

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("reading image body: %w", err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}
