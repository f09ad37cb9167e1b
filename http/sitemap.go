// Package http provides HTTP-based implementations of synthara URL
// discovery: sitemap-driven candidate finding and reachability probing.
package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/synthara-ai/synthara"
)

// Ensure SitemapFinder implements synthara.URLFinder at compile time.
var _ synthara.URLFinder = (*SitemapFinder)(nil)

// SitemapFinder discovers candidate URLs from a site's sitemap.
// The query must name a site (a URL or bare host); robots.txt Sitemap
// directives are consulted first, then /sitemap.xml. Sitemap indexes
// are resolved recursively. Queries that do not look like a site
// yield no candidates so other finders can take over.
type SitemapFinder struct {
	client *http.Client
}

// NewSitemapFinder creates a SitemapFinder with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapFinder(client *http.Client) *SitemapFinder {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapFinder{client: client}
}

// FindURLs returns up to max URLs from the sitemap of the site the
// query names. Returns an empty slice when the query is not a site.
func (f *SitemapFinder) FindURLs(ctx context.Context, query string, max int) ([]string, error) {
	base, ok := siteFromQuery(query)
	if !ok {
		return []string{}, nil
	}

	sitemaps, err := f.sitemapURLs(ctx, base)
	if err != nil {
		return nil, err
	}

	var urls []string
	seen := make(map[string]bool)
	for _, sm := range sitemaps {
		if len(urls) >= max {
			break
		}
		found, err := f.walkSitemap(ctx, sm, seen, max-len(urls))
		if err != nil {
			return nil, err
		}
		urls = append(urls, found...)
	}
	if urls == nil {
		urls = []string{}
	}
	return urls, nil
}

// siteFromQuery extracts a site base URL from the query, if the query
// is a URL or a bare hostname like "example.com".
func siteFromQuery(query string) (*url.URL, bool) {
	candidate := strings.TrimSpace(query)
	if candidate == "" || strings.ContainsAny(candidate, " \t\n") {
		return nil, false
	}
	if !strings.Contains(candidate, "://") {
		if !strings.Contains(candidate, ".") {
			return nil, false
		}
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Host == "" {
		return nil, false
	}
	parsed.Path = ""
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed, true
}

// sitemapURLs discovers sitemap locations from robots.txt, falling back
// to the conventional /sitemap.xml.
func (f *SitemapFinder) sitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robots := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	if sitemaps, err := f.sitemapsFromRobots(ctx, robots.String()); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	fallback := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	exists, err := f.urlExists(ctx, fallback.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{fallback.String()}, nil
	}
	return nil, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (f *SitemapFinder) sitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := f.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			if sm := strings.TrimSpace(line[len("sitemap:"):]); sm != "" {
				sitemaps = append(sitemaps, sm)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// walkSitemap fetches one sitemap and collects up to max page URLs,
// recursing into <sitemapindex> entries.
func (f *SitemapFinder) walkSitemap(ctx context.Context, sitemapURL string, seen map[string]bool, max int) ([]string, error) {
	if max <= 0 || seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := f.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, sm := range root.SelectElements("sitemap") {
			loc := locText(sm)
			if loc == "" {
				continue
			}
			found, err := f.walkSitemap(ctx, loc, seen, max-len(urls))
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
			if len(urls) >= max {
				break
			}
		}
		return urls, nil
	}

	var urls []string
	for _, el := range root.SelectElements("url") {
		if loc := locText(el); loc != "" {
			urls = append(urls, loc)
			if len(urls) >= max {
				break
			}
		}
	}
	return urls, nil
}

func locText(el *etree.Element) string {
	loc := el.SelectElement("loc")
	if loc == nil {
		return ""
	}
	return strings.TrimSpace(loc.Text())
}

func (f *SitemapFinder) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

func (f *SitemapFinder) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
