package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.APIKey != "tvly-key" {
			t.Errorf("expected api_key 'tvly-key', got %q", req.APIKey)
		}
		if req.Query != "hanuman chalisa" {
			t.Errorf("expected query 'hanuman chalisa', got %q", req.Query)
		}
		if req.MaxResults != 3 {
			t.Errorf("expected max_results 3, got %d", req.MaxResults)
		}
		if !req.IncludeAnswer {
			t.Error("expected include_answer true")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"answer": "A devotional hymn.",
			"results": [
				{"title": "Hanuman Chalisa", "url": "https://example.com/hc", "content": "Forty verses."},
				{"title": "History", "url": "https://example.com/h", "content": ""}
			]
		}`))
	}))
	defer srv.Close()

	s, err := New("tvly-key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	resp, err := s.Search(context.Background(), "hanuman chalisa", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Answer != "A devotional hymn." {
		t.Errorf("Answer = %q, want 'A devotional hymn.'", resp.Answer)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(resp.Results))
	}
	if resp.Results[0].Title != "Hanuman Chalisa" || resp.Results[0].URL != "https://example.com/hc" {
		t.Errorf("unexpected first result %+v", resp.Results[0])
	}
}

func TestSearch_EmptyResultsIsNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"answer": "", "results": []}`))
	}))
	defer srv.Close()

	s, err := New("key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resp, err := s.Search(context.Background(), "nothing at all", 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("len(Results) = %d, want 0", len(resp.Results))
	}
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s, err := New("key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Search(context.Background(), "query", 3); err == nil {
		t.Error("expected error for 502 response")
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	s, err := New("key")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Search(context.Background(), "", 3); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestNew_EmptyAPIKey(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error("expected error for empty API key")
	}
}
