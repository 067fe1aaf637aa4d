package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MaxBodySize is the default maximum number of bytes read from a response.
const MaxBodySize = 4 << 20

var (
	// ErrRestricted is returned for targets the highlighter must not touch,
	// such as browser-internal pages.
	ErrRestricted = errors.New("cannot perform this action on a restricted page")
	ErrNotHTML    = errors.New("not an HTML page")
)

// Client fetches web pages as HTML.
type Client struct {
	http    *http.Client
	maxBody int64
}

// New creates a new fetch Client.
func New(timeout time.Duration, maxBody int64) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxBody <= 0 {
		maxBody = MaxBodySize
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		maxBody: maxBody,
	}
}

// NewWithHTTPClient creates a Client with a custom http.Client (for testing).
func NewWithHTTPClient(c *http.Client) *Client {
	return &Client{http: c, maxBody: MaxBodySize}
}

// CheckURL parses rawURL and rejects anything that is not http or https.
func CheckURL(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("URL is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	case "":
		return nil, fmt.Errorf("URL must have http or https scheme, got none")
	default:
		return nil, fmt.Errorf("%w: %s", ErrRestricted, rawURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL: missing host in %q", rawURL)
	}
	return parsed, nil
}

// Fetch retrieves the given URL and returns its HTML.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	parsed, err := CheckURL(rawURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch failed: HTTP %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(strings.ToLower(ct), "html") {
		return "", fmt.Errorf("%w: %s", ErrNotHTML, ct)
	}

	limited := io.LimitReader(resp.Body, c.maxBody+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if int64(len(body)) > c.maxBody {
		body = body[:c.maxBody]
	}

	return string(body), nil
}
