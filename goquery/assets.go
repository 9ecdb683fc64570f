// Package goquery implements HTML scanning using the goquery library.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sitemirror"
	"sitemirror/extract"
)

// Elements scanned for direct asset references. Anchor hrefs are page
// navigation, not assets, and are handled by link discovery instead.
var assetSelectors = []struct {
	selector string
	attr     string
}{
	{"link[href]", "href"},
	{"script[src]", "src"},
	{"img[src]", "src"},
	{"source[src]", "src"},
	{"video[src]", "src"},
	{"video[poster]", "poster"},
	{"audio[src]", "src"},
	{"embed[src]", "src"},
	{"object[data]", "data"},
	{"iframe[src]", "src"},
}

var srcsetSelectors = []string{"img[srcset]", "source[srcset]"}

// Scanner extracts asset references from page HTML.
type Scanner struct{}

// NewScanner creates a new Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// AssetRefs returns the absolute URLs of assets referenced by the page:
// attribute references on media and resource elements, srcset candidates,
// and references embedded in inline script and style bodies. Results are
// deduplicated in document order and not filtered by origin.
func (s *Scanner) AssetRefs(content []byte, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, sitemirror.Errorf(sitemirror.EINVALID, "parse page %s: %v", baseURL, err)
	}

	var out []string
	seen := make(map[string]bool)
	add := func(raw string) {
		resolved, ok := sitemirror.Resolve(raw, baseURL)
		if !ok || seen[resolved] {
			return
		}
		seen[resolved] = true
		out = append(out, resolved)
	}

	for _, sel := range assetSelectors {
		doc.Find(sel.selector).Each(func(_ int, el *goquery.Selection) {
			raw, _ := el.Attr(sel.attr)
			add(raw)
		})
	}

	for _, sel := range srcsetSelectors {
		doc.Find(sel).Each(func(_ int, el *goquery.Selection) {
			raw, _ := el.Attr("srcset")
			for _, candidate := range srcsetURLs(raw) {
				add(candidate)
			}
		})
	}

	doc.Find("script").Each(func(_ int, el *goquery.Selection) {
		if _, external := el.Attr("src"); external {
			return
		}
		for _, ref := range extract.References(el.Text(), sitemirror.AssetScript, baseURL) {
			add(ref)
		}
	})
	doc.Find("style").Each(func(_ int, el *goquery.Selection) {
		for _, ref := range extract.References(el.Text(), sitemirror.AssetStylesheet, baseURL) {
			add(ref)
		}
	})

	return out, nil
}

// srcsetURLs extracts the candidate URLs from a srcset value, discarding
// width and density descriptors.
func srcsetURLs(value string) []string {
	var out []string
	for _, entry := range strings.Split(value, ",") {
		fields := strings.Fields(entry)
		if len(fields) > 0 {
			out = append(out, fields[0])
		}
	}
	return out
}
