// Package mock provides a test double for the music.Searcher interface.
package mock

import (
	"context"
	"sync"

	"github.com/TestingGuyz/hanuman/pkg/provider/music"
)

// LookupCall records a single invocation of Lookup.
type LookupCall struct {
	// Ctx is the context passed to Lookup.
	Ctx context.Context
	// Query is the query passed to Lookup.
	Query string
}

// Searcher is a mock implementation of music.Searcher.
// Zero values cause Lookup to return nil, nil (no track found).
type Searcher struct {
	mu sync.Mutex

	// Track is returned by Lookup.
	Track *music.Track

	// Err, if non-nil, is returned as the error from Lookup.
	Err error

	// LookupCalls records every invocation of Lookup in order.
	LookupCalls []LookupCall
}

// Lookup records the call and returns the configured response.
func (s *Searcher) Lookup(ctx context.Context, query string) (*music.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LookupCalls = append(s.LookupCalls, LookupCall{Ctx: ctx, Query: query})
	return s.Track, s.Err
}

// Reset clears all recorded calls. Thread-safe.
func (s *Searcher) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LookupCalls = nil
}

// Ensure Searcher implements music.Searcher at compile time.
var _ music.Searcher = (*Searcher)(nil)
