// Package http provides an HTTP-based implementation of sitemirror.Fetcher
// and sitemap-driven page discovery.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"sitemirror"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (30s).
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements sitemirror.Fetcher at compile time.
var _ sitemirror.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript; it serves static
// pages and all asset downloads.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the response body for the given URL. A 404 maps to
// ENOTFOUND so callers can treat dangling references as terminal; other
// non-2xx statuses map to EUNAVAILABLE and are retryable.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, sitemirror.Errorf(sitemirror.EINVALID, "building request for %s: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, sitemirror.Errorf(sitemirror.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, sitemirror.Errorf(sitemirror.ENOTFOUND, "HTTP 404 for %s", url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, sitemirror.Errorf(sitemirror.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, sitemirror.Errorf(sitemirror.EUNAVAILABLE, "reading %s: %v", url, err)
	}

	return body, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
