// Package goquery provides HTML-parsing implementations of synthara
// URL discovery using CSS selectors.
package goquery

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/synthara-ai/synthara"
)

// DefaultSearchEndpoint is the HTML (non-JS) DuckDuckGo results page.
const DefaultSearchEndpoint = "https://html.duckduckgo.com/html/"

// Ensure SearchFinder implements synthara.URLFinder at compile time.
var _ synthara.URLFinder = (*SearchFinder)(nil)

// SearchFinder discovers candidate URLs by scraping a search engine's
// HTML results page for the user query.
type SearchFinder struct {
	client   *http.Client
	endpoint string
}

// SearchOption configures a SearchFinder.
type SearchOption func(*SearchFinder)

// WithSearchClient sets the underlying HTTP client.
func WithSearchClient(client *http.Client) SearchOption {
	return func(f *SearchFinder) { f.client = client }
}

// WithSearchEndpoint overrides the results page URL. Useful for tests.
func WithSearchEndpoint(endpoint string) SearchOption {
	return func(f *SearchFinder) { f.endpoint = endpoint }
}

// NewSearchFinder creates a SearchFinder.
func NewSearchFinder(opts ...SearchOption) *SearchFinder {
	f := &SearchFinder{endpoint: DefaultSearchEndpoint}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = http.DefaultClient
	}
	return f
}

// FindURLs fetches one results page for the query and returns up to max
// result URLs in page order.
func (f *SearchFinder) FindURLs(ctx context.Context, query string, max int) ([]string, error) {
	endpoint := f.endpoint + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Synthara/1.0)")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, endpoint)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	return ExtractResultURLs(doc, max), nil
}

// ExtractResultURLs collects result links from a parsed DuckDuckGo HTML
// results page, resolving the uddg redirect wrapper when present.
func ExtractResultURLs(doc *goquery.Document, max int) []string {
	urls := []string{}
	doc.Find("a.result__a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		if resolved := resolveResultURL(href); resolved != "" {
			urls = append(urls, resolved)
		}
		return len(urls) < max
	})
	return urls
}

// resolveResultURL unwraps DuckDuckGo's /l/?uddg=<target> redirect and
// rejects anything that is not a plain http(s) URL.
func resolveResultURL(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	if target := parsed.Query().Get("uddg"); target != "" {
		href = target
		if parsed, err = url.Parse(href); err != nil {
			return ""
		}
	}

	if !strings.HasPrefix(parsed.Scheme, "http") {
		return ""
	}
	return parsed.String()
}
