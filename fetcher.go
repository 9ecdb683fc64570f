package sitemirror

import "context"

// Fetcher retrieves raw bytes from absolute URLs.
// Implementations may use plain HTTP or browser automation to handle
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch performs a GET for the URL and returns the response body.
	// Non-2xx responses are returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Close releases any resources held by the fetcher.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// FileStore persists mirrored files under an output folder.
// Paths are slash-separated and relative to that folder; implementations
// create parent directories as needed.
type FileStore interface {
	Write(path string, data []byte) error

	// WriteIfChanged writes only when the stored content differs.
	// Returns true if a write happened.
	WriteIfChanged(path string, data []byte) (bool, error)

	Read(path string) ([]byte, error)
	Exists(path string) bool
}

// PageDiscoverer produces page routes for a target site when none are given
// explicitly. Implementations hide the sitemap-vs-link-crawl distinction.
type PageDiscoverer interface {
	// DiscoverPages returns same-origin page routes (paths starting with
	// "/") for the target URL, at most limit entries.
	DiscoverPages(ctx context.Context, target string, limit int) ([]string, error)
}
