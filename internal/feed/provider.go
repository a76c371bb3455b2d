package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Provider fetches items matching a query. Any error means "zero items from
// this provider this cycle" to the caller.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query string, limit int) ([]Item, error)
}

// RSSProvider runs a query through a search-style RSS/Atom endpoint.
// The URL template carries one %s slot for the escaped query, e.g.
// https://news.google.com/rss/search?q=%s.
type RSSProvider struct {
	name        string
	urlTemplate string
	parser      *gofeed.Parser
}

func NewRSSProvider(name, urlTemplate string) *RSSProvider {
	return &RSSProvider{name: name, urlTemplate: urlTemplate, parser: gofeed.NewParser()}
}

func (p *RSSProvider) Name() string { return p.name }

func (p *RSSProvider) Fetch(ctx context.Context, query string, limit int) ([]Item, error) {
	feedURL := fmt.Sprintf(p.urlTemplate, url.QueryEscape(query))
	parsed, err := p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", p.name, err)
	}

	now := time.Now()
	items := make([]Item, 0, limit)
	for _, entry := range parsed.Items {
		if len(items) >= limit {
			break
		}
		if entry.Link == "" {
			continue
		}
		pub := now
		if entry.PublishedParsed != nil {
			pub = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			pub = *entry.UpdatedParsed
		}

		source := p.name
		if parsed.Title != "" {
			source = parsed.Title
		}

		desc := entry.Description
		if desc == "" {
			desc = entry.Content
		}

		items = append(items, Item{
			URL:         entry.Link,
			Title:       entry.Title,
			Source:      source,
			Summary:     truncate(stripHTML(desc), 300),
			PublishedAt: pub,
		})
	}
	return items, nil
}

// JSONProvider queries a JSON search API returning {"articles": [...]}
// objects with url/title/source/publishedAt fields.
type JSONProvider struct {
	name        string
	urlTemplate string
	client      *http.Client
}

func NewJSONProvider(name, urlTemplate string) *JSONProvider {
	return &JSONProvider{name: name, urlTemplate: urlTemplate, client: http.DefaultClient}
}

func (p *JSONProvider) Name() string { return p.name }

type jsonResponse struct {
	Articles []jsonArticle `json:"articles"`
}

type jsonArticle struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

func (p *JSONProvider) Fetch(ctx context.Context, query string, limit int) ([]Item, error) {
	endpoint := fmt.Sprintf(p.urlTemplate, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", p.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", p.name, resp.StatusCode)
	}

	var body jsonResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", p.name, err)
	}

	items := make([]Item, 0, limit)
	for _, a := range body.Articles {
		if len(items) >= limit {
			break
		}
		if a.URL == "" {
			continue
		}
		source := a.Source.Name
		if source == "" {
			source = p.name
		}
		pub := a.PublishedAt
		if pub.IsZero() {
			pub = time.Now()
		}
		items = append(items, Item{
			URL:         a.URL,
			Title:       a.Title,
			Source:      source,
			Summary:     truncate(stripHTML(a.Description), 300),
			PublishedAt: pub,
		})
	}
	return items, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
