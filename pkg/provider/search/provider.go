// Package search defines the WebSearcher interface for web search backends.
//
// A search provider answers free-text queries with a short ranked result list
// plus, when the backend supports it, a synthesised answer snippet. The
// conversation controller feeds both into the LLM for a spoken summary.
//
// Implementations must be safe for concurrent use.
package search

import "context"

// Result is a single ranked search hit.
type Result struct {
	// Title is the page title.
	Title string

	// URL is the canonical page URL.
	URL string

	// Content is a relevance-trimmed text snippet from the page. May be empty
	// for backends that return bare links.
	Content string
}

// Response is the outcome of one search query.
type Response struct {
	// Answer is a backend-synthesised direct answer to the query, or "" when
	// the backend does not provide one.
	Answer string

	// Results is the ranked hit list, best first. Empty means the query
	// matched nothing; that is not an error.
	Results []Result
}

// WebSearcher is the abstraction over any web search backend.
type WebSearcher interface {
	// Search runs query and returns up to maxResults hits. maxResults <= 0
	// selects the backend default.
	Search(ctx context.Context, query string, maxResults int) (*Response, error)
}
