// Package tavily provides a WebSearcher backed by the Tavily search API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/TestingGuyz/hanuman/pkg/provider/search"
)

const (
	defaultBaseURL    = "https://api.tavily.com"
	defaultMaxResults = 3
)

// Option is a functional option for configuring the Tavily Searcher.
type Option func(*Searcher)

// WithBaseURL overrides the default API base URL. Used by tests.
func WithBaseURL(url string) Option {
	return func(s *Searcher) { s.baseURL = url }
}

// WithSearchDepth sets the Tavily search depth ("basic" or "advanced").
// Defaults to "basic".
func WithSearchDepth(depth string) Option {
	return func(s *Searcher) { s.searchDepth = depth }
}

// WithTimeout sets a per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) { s.httpClient.Timeout = d }
}

// Searcher implements search.WebSearcher using the Tavily REST API.
type Searcher struct {
	apiKey      string
	baseURL     string
	searchDepth string
	httpClient  *http.Client
}

// New creates a new Tavily Searcher. apiKey must be non-empty.
func New(apiKey string, opts ...Option) (*Searcher, error) {
	if apiKey == "" {
		return nil, errors.New("tavily: apiKey must not be empty")
	}
	s := &Searcher{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		searchDepth: "basic",
		httpClient:  &http.Client{},
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// searchRequest is the JSON payload sent to POST /search.
type searchRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

// searchResponse mirrors the Tavily response envelope.
type searchResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search implements search.WebSearcher.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) (*search.Response, error) {
	if query == "" {
		return nil, errors.New("tavily: query must not be empty")
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	payload, err := json.Marshal(searchRequest{
		APIKey:        s.apiKey,
		Query:         query,
		SearchDepth:   s.searchDepth,
		MaxResults:    maxResults,
		IncludeAnswer: true,
	})
	if err != nil {
		return nil, fmt.Errorf("tavily: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("tavily: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily: search HTTP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("tavily: search: unexpected status %d: %s", resp.StatusCode, body)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("tavily: decode response: %w", err)
	}

	out := &search.Response{Answer: sr.Answer}
	for _, r := range sr.Results {
		out.Results = append(out.Results, search.Result{
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
		})
	}
	return out, nil
}

// Ensure Searcher implements search.WebSearcher at compile time.
var _ search.WebSearcher = (*Searcher)(nil)
