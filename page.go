package sitemirror

import (
	"path"
	"strings"
)

// Page is one requested document route mapped to a local file. Pages are
// fetched first and use route-derived names rather than allocator-assigned
// ones.
type Page struct {
	// Route is the requested path, e.g. "/" or "/pricing".
	Route string

	// URL is the absolute URL the route resolves to on the target site.
	URL string

	// LocalPath is the slash-separated path of the saved file relative to
	// the output folder.
	LocalPath string
}

// PageFileName derives the local file name for a page route.
// "/" becomes index.html, "/foo/bar" becomes foo/bar.html, and a trailing
// slash maps to index.html inside that directory.
func PageFileName(route string) string {
	route = strings.TrimPrefix(route, "/")
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if route == "" {
		return "index.html"
	}
	if strings.HasSuffix(route, "/") {
		return route + "index.html"
	}
	switch strings.ToLower(path.Ext(route)) {
	case ".html", ".htm":
		return route
	}
	return route + ".html"
}
