package crawl

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"

	"sitemirror"
)

// PathAllocator maps each distinct absolute asset URL to a unique local file
// path. Allocation is deterministic for a given allocation order and
// idempotent: once assigned, a URL's path never changes for the remainder of
// the run. Pages use route-derived names and never go through the allocator.
type PathAllocator struct {
	byURL  map[string]string
	byPath map[string]string
}

// NewPathAllocator creates an empty allocator.
func NewPathAllocator() *PathAllocator {
	return &PathAllocator{
		byURL:  make(map[string]string),
		byPath: make(map[string]string),
	}
}

// Allocate returns the local path for the URL, assigning one on first call.
// The URL's path component is the default; a query string is disambiguated
// with a short stable hash, and remaining collisions get an incrementing
// numeric suffix before the extension.
func (a *PathAllocator) Allocate(rawURL string) (string, error) {
	if p, ok := a.byURL[rawURL]; ok {
		return p, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", sitemirror.Errorf(sitemirror.EINVALID, "unparseable asset URL %q", rawURL)
	}

	p := strings.TrimPrefix(u.Path, "/")
	if p == "" || strings.HasSuffix(p, "/") {
		p += "index.html"
	}

	if u.RawQuery != "" {
		p = insertBeforeExt(p, "-"+queryTag(u.RawQuery))
	}

	candidate := p
	for i := 1; ; i++ {
		claimedBy, claimed := a.byPath[candidate]
		if !claimed {
			break
		}
		if claimedBy == rawURL {
			break
		}
		candidate = insertBeforeExt(p, fmt.Sprintf("-%d", i))
	}

	a.byURL[rawURL] = candidate
	a.byPath[candidate] = rawURL
	return candidate, nil
}

// Claim reserves a path for a URL without derivation, used for page files so
// assets can never collide with them.
func (a *PathAllocator) Claim(rawURL, localPath string) {
	if _, ok := a.byURL[rawURL]; ok {
		return
	}
	a.byURL[rawURL] = localPath
	a.byPath[localPath] = rawURL
}

// PathFor returns the assigned path for a URL, if any.
func (a *PathAllocator) PathFor(rawURL string) (string, bool) {
	p, ok := a.byURL[rawURL]
	return p, ok
}

// URLFor returns the URL that claimed a path, if any.
func (a *PathAllocator) URLFor(localPath string) (string, bool) {
	u, ok := a.byPath[localPath]
	return u, ok
}

// Snapshot returns a copy of the URL→path map.
func (a *PathAllocator) Snapshot() map[string]string {
	m := make(map[string]string, len(a.byURL))
	for u, p := range a.byURL {
		m[u] = p
	}
	return m
}

// queryTag derives a short stable tag from a query string so that two URLs
// sharing a path but differing in query land in distinct files.
func queryTag(rawQuery string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(rawQuery))[:8]
}

// insertBeforeExt inserts a suffix before the file extension, or appends it
// when the name has none.
func insertBeforeExt(p, suffix string) string {
	ext := path.Ext(p)
	return strings.TrimSuffix(p, ext) + suffix + ext
}
