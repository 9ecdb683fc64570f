// Package rod provides a browser-based implementation of sitemirror.Fetcher
// for capturing pages that render their content with JavaScript.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"sitemirror"
)

// DefaultFetchTimeout is the default per-page rendering timeout.
// Kept consistent with http.DefaultFetchTimeout (30s).
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements sitemirror.Fetcher at compile time.
var _ sitemirror.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager *BrowserManager
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page rendering timeout.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher backed by a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager

	return f, nil
}

// Fetch navigates to the URL, waits for the page to load, and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, sitemirror.Errorf(sitemirror.EUNAVAILABLE, "opening page for %s: %v", url, err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return nil, sitemirror.Errorf(sitemirror.EUNAVAILABLE, "navigating to %s: %v", url, err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, sitemirror.Errorf(sitemirror.EUNAVAILABLE, "waiting for %s to load: %v", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, sitemirror.Errorf(sitemirror.EUNAVAILABLE, "reading rendered HTML for %s: %v", url, err)
	}

	f.manager.IncrementPageCount()
	return []byte(html), nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
