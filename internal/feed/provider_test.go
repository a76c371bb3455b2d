package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"plain text", "plain text"},
		{"a\n\n  b", "a b"},
		{"<img src='x'>", ""},
	}
	for _, tt := range tests {
		if got := stripHTML(tt.in); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 300); got != "short" {
		t.Errorf("got %q", got)
	}
	long := make([]byte, 400)
	for i := range long {
		long[i] = 'x'
	}
	got := truncate(string(long), 300)
	if len([]rune(got)) != 300 {
		t.Errorf("truncated length = %d, want 300", len([]rune(got)))
	}
	if got[len(got)-3:] != "..." {
		t.Errorf("expected ellipsis suffix, got %q", got[len(got)-3:])
	}
}

func TestJSONProviderFetch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, `{"articles": [
			{"url": "https://a.com/1", "title": "One", "description": "<p>d1</p>",
			 "publishedAt": "2025-06-01T10:00:00Z", "source": {"name": "Wire"}},
			{"url": "https://a.com/2", "title": "Two",
			 "publishedAt": "2025-06-01T09:00:00Z", "source": {"name": "Wire"}},
			{"url": "", "title": "no url, skipped"}
		]}`)
	}))
	defer srv.Close()

	p := NewJSONProvider("test-api", srv.URL+"/search?q=%s")
	items, err := p.Fetch(context.Background(), "zero day", 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotQuery != "zero day" {
		t.Errorf("query sent = %q", gotQuery)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].URL != "https://a.com/1" || items[0].Source != "Wire" {
		t.Errorf("item = %+v", items[0])
	}
	if items[0].Summary != "d1" {
		t.Errorf("summary not stripped: %q", items[0].Summary)
	}
}

func TestJSONProviderHonorsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"articles": [
			{"url": "https://a.com/1", "title": "1"},
			{"url": "https://a.com/2", "title": "2"},
			{"url": "https://a.com/3", "title": "3"}
		]}`)
	}))
	defer srv.Close()

	p := NewJSONProvider("test-api", srv.URL+"/search?q=%s")
	items, err := p.Fetch(context.Background(), "q", 2)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected limit of 2, got %d", len(items))
	}
}

func TestJSONProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewJSONProvider("test-api", srv.URL+"/search?q=%s")
	if _, err := p.Fetch(context.Background(), "q", 10); err == nil {
		t.Error("expected error on non-200 status")
	}
}

func TestRSSProviderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, `<?xml version="1.0"?>
<rss version="2.0"><channel>
  <title>Example Wire</title>
  <item>
    <title>Breach at vendor</title>
    <link>https://example.com/breach</link>
    <description>&lt;p&gt;Details inside&lt;/p&gt;</description>
    <pubDate>Mon, 02 Jun 2025 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Second story</title>
    <link>https://example.com/second</link>
    <pubDate>Mon, 02 Jun 2025 09:00:00 GMT</pubDate>
  </item>
</channel></rss>`)
	}))
	defer srv.Close()

	p := NewRSSProvider("test-rss", srv.URL+"/rss?q=%s")
	items, err := p.Fetch(context.Background(), "breach", 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].URL != "https://example.com/breach" {
		t.Errorf("url = %q", items[0].URL)
	}
	if items[0].Source != "Example Wire" {
		t.Errorf("source = %q, want channel title", items[0].Source)
	}
	if items[0].Summary != "Details inside" {
		t.Errorf("summary = %q", items[0].Summary)
	}
	if items[0].PublishedAt.IsZero() {
		t.Error("expected parsed publish time")
	}
}

func TestRSSProviderHonorsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, `<?xml version="1.0"?>
<rss version="2.0"><channel><title>W</title>
  <item><title>1</title><link>https://e.com/1</link></item>
  <item><title>2</title><link>https://e.com/2</link></item>
  <item><title>3</title><link>https://e.com/3</link></item>
</channel></rss>`)
	}))
	defer srv.Close()

	p := NewRSSProvider("test-rss", srv.URL+"/rss?q=%s")
	items, err := p.Fetch(context.Background(), "q", 1)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 item with limit 1, got %d", len(items))
	}
}
