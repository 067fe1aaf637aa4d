package fetch

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/vocabmark/vocabmark/internal/highlight"
)

// Page is a loaded document the engine can mark, like a browser tab.
type Page struct {
	Source string
	Title  string
	Doc    *html.Node
}

// IsURL reports whether target names a URL rather than a local path.
// Single-letter schemes are treated as Windows drive letters.
func IsURL(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return strings.Contains(target, "://")
	}
	return len(u.Scheme) > 1
}

// Load fetches a URL or reads a local file and parses it. URLs with any
// scheme other than http or https fail with ErrRestricted before anything
// is loaded.
func (c *Client) Load(ctx context.Context, target string) (*Page, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("target is required")
	}

	var markup string
	if IsURL(target) {
		body, err := c.Fetch(ctx, target)
		if err != nil {
			return nil, err
		}
		markup = body
	} else {
		data, err := os.ReadFile(target)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", target, err)
		}
		markup = string(data)
	}

	doc, err := highlight.ParseString(markup)
	if err != nil {
		return nil, err
	}
	return &Page{Source: target, Title: highlight.Title(doc), Doc: doc}, nil
}
