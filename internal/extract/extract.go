// Package extract pulls readable article content out of a web page.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const fetchTimeout = 30 * time.Second

// Article is the extracted, display-ready content of one page.
type Article struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Byline      string `json:"byline,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	TextContent string `json:"textContent"`
	Length      int    `json:"length"`
}

// Extractor wraps readability extraction behind a narrow surface so the
// reading path can be faked in tests.
type Extractor interface {
	Extract(ctx context.Context, url string) (*Article, error)
}

// Readability is the go-readability backed extractor.
type Readability struct{}

func (Readability) Extract(ctx context.Context, url string) (*Article, error) {
	timeout := fetchTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	parsed, err := readability.FromURL(url, timeout)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", url, err)
	}

	return &Article{
		URL:         url,
		Title:       parsed.Title,
		Byline:      parsed.Byline,
		Excerpt:     parsed.Excerpt,
		TextContent: parsed.TextContent,
		Length:      parsed.Length,
	}, nil
}

// Encode serializes an article for the extraction cache.
func Encode(a *Article) ([]byte, error) {
	return json.Marshal(a)
}

// Decode deserializes a cached payload. A nil result with nil error means
// the payload was unreadable and should be treated as a cache miss.
func Decode(data []byte) *Article {
	var a Article
	if err := json.Unmarshal(data, &a); err != nil {
		return nil
	}
	return &a
}
