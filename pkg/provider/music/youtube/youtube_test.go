package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const samplePage = `<html><script>var ytInitialData = {"contents":{"sectionList":[` +
	`{"videoRenderer":{"videoId":"dQw4w9WgXcQ","thumbnail":{"thumbnails":[{"url":"https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg","width":120}]},` +
	`"title":{"runs":[{"text":"Hanuman Chalisa \"Full\""}]}}},` +
	`{"videoRenderer":{"videoId":"second","thumbnail":{"thumbnails":[{"url":"https://i.ytimg.com/vi/second/default.jpg"}]},` +
	`"title":{"runs":[{"text":"Second Result"}]}}}]}};</script></html>`

func TestParseFirstVideo(t *testing.T) {
	t.Parallel()

	track := parseFirstVideo([]byte(samplePage))
	if track == nil {
		t.Fatal("parseFirstVideo: got nil, want a track")
	}
	if track.URL != "dQw4w9WgXcQ" {
		t.Errorf("video ID = %q, want %q", track.URL, "dQw4w9WgXcQ")
	}
	if track.Title != `Hanuman Chalisa "Full"` {
		t.Errorf("title = %q, want unescaped title", track.Title)
	}
	if track.Thumbnail != "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg" {
		t.Errorf("thumbnail = %q", track.Thumbnail)
	}
}

func TestParseFirstVideo_NoResults(t *testing.T) {
	t.Parallel()

	if track := parseFirstVideo([]byte("<html>no videos here</html>")); track != nil {
		t.Errorf("parseFirstVideo: got %+v, want nil", track)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/results" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("search_query"); got != "hanuman chalisa" {
			t.Errorf("search_query = %q, want 'hanuman chalisa'", got)
		}
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	s := New(WithBaseURL(srv.URL))
	track, err := s.Lookup(context.Background(), "hanuman chalisa")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if track == nil {
		t.Fatal("Lookup: got nil track")
	}
	if track.URL != srv.URL+"/watch?v=dQw4w9WgXcQ" {
		t.Errorf("URL = %q, want watch link", track.URL)
	}
}

func TestLookup_NothingFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>empty</html>"))
	}))
	defer srv.Close()

	s := New(WithBaseURL(srv.URL))
	track, err := s.Lookup(context.Background(), "zzz")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if track != nil {
		t.Errorf("Lookup: got %+v, want nil for no results", track)
	}
}

func TestLookup_EmptyQuery(t *testing.T) {
	t.Parallel()

	s := New()
	if _, err := s.Lookup(context.Background(), ""); err == nil {
		t.Error("expected error for empty query")
	}
}
