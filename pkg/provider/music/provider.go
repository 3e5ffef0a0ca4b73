// Package music defines the Searcher interface for song lookup backends.
//
// A music provider resolves a free-text song request ("play hanuman chalisa")
// to a single playable track with a link the client can open. Playback itself
// happens on the client; the server only finds the track.
//
// Implementations must be safe for concurrent use.
package music

import "context"

// Track is one playable song result.
type Track struct {
	// Title is the track's display title.
	Title string `json:"title"`

	// URL is the playable link for the track.
	URL string `json:"url"`

	// Thumbnail is a cover image URL, or "" when none is available.
	Thumbnail string `json:"thumbnail"`
}

// Searcher is the abstraction over any song lookup backend.
type Searcher interface {
	// Lookup resolves query to the best-matching track.
	// Returns (nil, nil) when nothing matched; that is not an error.
	Lookup(ctx context.Context, query string) (*Track, error)
}
