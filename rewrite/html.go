package rewrite

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"sitemirror"
)

// URL-bearing attributes rewritten on any element carrying them. srcset is
// handled separately because it holds a candidate list, not a single URL.
var urlAttrs = []string{"href", "src", "poster", "data"}

// HTML rewrites references in a captured page: element attributes, srcset
// candidate lists, and inline script and style bodies. refs maps absolute
// remote URLs to local paths and includes both assets and pages, so
// same-site navigation links are localized too.
func HTML(content []byte, pageURL, pagePath string, refs map[string]string) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, sitemirror.Errorf(sitemirror.EINVALID, "parse page %s: %v", pageURL, err)
	}

	repl := replacer(pageURL, pagePath, refs)

	for _, attr := range urlAttrs {
		doc.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			raw, _ := s.Attr(attr)
			if local, ok := repl(raw); ok {
				s.SetAttr(attr, local)
			}
		})
	}

	doc.Find("[srcset]").Each(func(_ int, s *goquery.Selection) {
		raw, _ := s.Attr("srcset")
		if out := rewriteSrcset(raw, repl); out != raw {
			s.SetAttr("srcset", out)
		}
	})

	// Inline bodies use the text rewriters. Script and style elements hold
	// raw text, so SetText round-trips without entity escaping.
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		rewriteInline(s, sitemirror.AssetScript, pageURL, pagePath, refs)
	})
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		rewriteInline(s, sitemirror.AssetStylesheet, pageURL, pagePath, refs)
	})

	var buf bytes.Buffer
	for _, n := range doc.Selection.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, sitemirror.Errorf(sitemirror.EINTERNAL, "render page %s: %v", pageURL, err)
		}
	}
	return buf.Bytes(), nil
}

func rewriteInline(s *goquery.Selection, typ sitemirror.AssetType, pageURL, pagePath string, refs map[string]string) {
	body := s.Text()
	if body == "" {
		return
	}
	if out := string(Text([]byte(body), typ, pageURL, pagePath, refs)); out != body {
		s.SetText(out)
	}
}

// rewriteSrcset rewrites each candidate URL in a srcset value, preserving
// width and density descriptors.
func rewriteSrcset(value string, repl func(string) (string, bool)) string {
	entries := strings.Split(value, ",")
	out := make([]string, 0, len(entries))
	changed := false
	for _, entry := range entries {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}
		if local, ok := repl(fields[0]); ok {
			fields[0] = local
			changed = true
		}
		out = append(out, strings.Join(fields, " "))
	}
	if !changed {
		return value
	}
	return strings.Join(out, ", ")
}
