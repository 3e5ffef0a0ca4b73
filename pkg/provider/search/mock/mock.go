// Package mock provides a test double for the search.WebSearcher interface.
package mock

import (
	"context"
	"sync"

	"github.com/TestingGuyz/hanuman/pkg/provider/search"
)

// SearchCall records a single invocation of Search.
type SearchCall struct {
	// Ctx is the context passed to Search.
	Ctx context.Context
	// Query is the query passed to Search.
	Query string
	// MaxResults is the result cap passed to Search.
	MaxResults int
}

// Searcher is a mock implementation of search.WebSearcher.
// Zero values cause Search to return an empty Response and nil error.
type Searcher struct {
	mu sync.Mutex

	// Response is returned by Search. Nil yields an empty Response.
	Response *search.Response

	// Err, if non-nil, is returned as the error from Search.
	Err error

	// SearchCalls records every invocation of Search in order.
	SearchCalls []SearchCall
}

// Search records the call and returns the configured response.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) (*search.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SearchCalls = append(s.SearchCalls, SearchCall{Ctx: ctx, Query: query, MaxResults: maxResults})
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Response == nil {
		return &search.Response{}, nil
	}
	return s.Response, nil
}

// Reset clears all recorded calls. Thread-safe.
func (s *Searcher) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SearchCalls = nil
}

// Ensure Searcher implements search.WebSearcher at compile time.
var _ search.WebSearcher = (*Searcher)(nil)
