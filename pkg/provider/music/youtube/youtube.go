// Package youtube provides a music Searcher that resolves song queries
// against the public YouTube results page.
//
// YouTube embeds the result list as a ytInitialData JSON blob in the page
// markup; the first videoRenderer entry in that blob is the best match. No
// API key is required, which matches how the rest of the system treats music
// lookup as an optional, degradable feature.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/TestingGuyz/hanuman/pkg/provider/music"
)

const (
	defaultBaseURL = "https://www.youtube.com"

	// Results pages run to a few MB; cap reads well above that.
	maxPageBytes = 8 << 20
)

// Option is a functional option for configuring the YouTube Searcher.
type Option func(*Searcher)

// WithBaseURL overrides the default YouTube base URL. Used by tests.
func WithBaseURL(url string) Option {
	return func(s *Searcher) { s.baseURL = url }
}

// WithTimeout sets a per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) { s.httpClient.Timeout = d }
}

// Searcher implements music.Searcher by scraping the YouTube results page.
type Searcher struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new YouTube Searcher.
func New(opts ...Option) *Searcher {
	s := &Searcher{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Lookup implements music.Searcher.
func (s *Searcher) Lookup(ctx context.Context, query string) (*music.Track, error) {
	if query == "" {
		return nil, errors.New("youtube: query must not be empty")
	}

	u := fmt.Sprintf("%s/results?search_query=%s", s.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("youtube: build request: %w", err)
	}
	req.Header.Set("Accept-Language", "en")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube: results page HTTP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube: results page: unexpected status %d", resp.StatusCode)
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("youtube: read results page: %w", err)
	}

	track := parseFirstVideo(page)
	if track == nil {
		return nil, nil
	}
	track.URL = s.baseURL + "/watch?v=" + track.URL
	return track, nil
}

// videoRendererRe locates the first videoRenderer entry and captures the
// video ID, the first thumbnail URL, and the first title text run. All three
// fields appear in this order inside one renderer object.
var videoRendererRe = regexp.MustCompile(
	`"videoRenderer":\{"videoId":"([^"]+)".*?"thumbnails":\[\{"url":"([^"]+)".*?"title":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)"`,
)

// unescapeRe handles the JSON escapes that actually occur in titles.
var unescapeRe = regexp.MustCompile(`\\(["\\/])`)

// parseFirstVideo extracts the first video result from a raw results page.
// The returned Track has the bare video ID in its URL field; the caller
// prefixes the watch URL. Returns nil when the page has no video results.
func parseFirstVideo(page []byte) *music.Track {
	m := videoRendererRe.FindSubmatch(page)
	if m == nil {
		return nil
	}
	title := unescapeRe.ReplaceAll(m[3], []byte("$1"))
	return &music.Track{
		Title:     string(title),
		URL:       string(m[1]),
		Thumbnail: string(m[2]),
	}
}

// Ensure Searcher implements music.Searcher at compile time.
var _ music.Searcher = (*Searcher)(nil)
