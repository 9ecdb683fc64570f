package goquery

import (
	"bytes"
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sitemirror"
	"sitemirror/bloom"
)

// Ensure LinkDiscoverer implements sitemirror.PageDiscoverer at compile time.
var _ sitemirror.PageDiscoverer = (*LinkDiscoverer)(nil)

// LinkDiscoverer finds page routes by scanning anchors on the target page.
// It is the fallback when a site publishes no sitemap: a single depth-one
// pass over the landing page, not a recursive crawl.
type LinkDiscoverer struct {
	fetcher sitemirror.Fetcher
}

// NewLinkDiscoverer creates a LinkDiscoverer that fetches the target page
// with the given fetcher.
func NewLinkDiscoverer(fetcher sitemirror.Fetcher) *LinkDiscoverer {
	return &LinkDiscoverer{fetcher: fetcher}
}

// DiscoverPages fetches the target and returns the target's own route plus
// the routes of same-origin anchor links on it, at most limit entries.
func (d *LinkDiscoverer) DiscoverPages(ctx context.Context, target string, limit int) ([]string, error) {
	body, err := d.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, sitemirror.Errorf(sitemirror.EINVALID, "parse page %s: %v", target, err)
	}

	seen := bloom.NewSeen(10_000, 0.001)
	routes := []string{routeOf(target)}
	seen.Visit(routes[0])

	doc.Find("a[href]").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if limit > 0 && len(routes) >= limit {
			return false
		}
		raw, _ := el.Attr("href")
		resolved, ok := sitemirror.Resolve(raw, target)
		if !ok || !sitemirror.SameOrigin(resolved, target) {
			return true
		}
		route := routeOf(resolved)
		if !pageRoute(route) || !seen.Visit(route) {
			return true
		}
		routes = append(routes, route)
		return true
	})

	return routes, nil
}

// routeOf reduces an absolute URL to its route path.
func routeOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}

// pageRoute reports whether a path plausibly names a page rather than an
// asset file.
func pageRoute(route string) bool {
	switch strings.ToLower(path.Ext(route)) {
	case "", ".html", ".htm":
		return true
	}
	return false
}
