// Package crawl provides site mirroring orchestration.
// It coordinates page capture, asset discovery, concurrent downloading,
// and reference rewriting into a self-contained local copy.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sitemirror"
	"sitemirror/extract"
	"sitemirror/goquery"
	"sitemirror/rewrite"
)

// Mirror orchestrates the capture of a site into a local folder.
type Mirror struct {
	// Fetcher downloads assets and, when PageFetcher is nil, pages too.
	Fetcher sitemirror.Fetcher

	// PageFetcher, if set, is used for page routes only. A browser-based
	// fetcher here captures JavaScript-rendered markup while assets still
	// go through plain HTTP.
	PageFetcher sitemirror.Fetcher

	Store       sitemirror.FileStore
	Limiter     *DomainLimiter
	Logger      *slog.Logger
	SourceMaps  bool
	Concurrency int
	RetryDelays []time.Duration
}

// Summary holds the outcome of a mirror run.
type Summary struct {
	Pages        int
	PagesFailed  int
	Assets       int
	AssetsFailed int
	SourceMaps   int
}

// ProgressEvent reports progress during a mirror run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressPageFetched ProgressType = iota
	ProgressPageFailed
	ProgressAssetFetched
	ProgressAssetFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting mirror progress.
type ProgressFunc func(event ProgressEvent)

// assetResult holds the outcome of downloading a single asset.
type assetResult struct {
	url       string
	sourceMap bool
	err       error
}

// Run mirrors the given routes of the target site. Individual page and asset
// failures are recorded in the Summary rather than aborting the run; Run
// returns an error only when no page could be captured at all or the output
// store fails.
func (m *Mirror) Run(ctx context.Context, target string, routes []string, progress ProgressFunc) (*Summary, error) {
	base, err := url.Parse(target)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, sitemirror.Errorf(sitemirror.EINVALID, "invalid target URL %q", target)
	}
	if len(routes) == 0 {
		routes = []string{"/"}
	}

	alloc := NewPathAllocator()
	summary := &Summary{}

	pages, err := m.fetchPages(ctx, base, routes, alloc, summary, progress)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, sitemirror.Errorf(sitemirror.EUNAVAILABLE, "no page could be captured from %s", target)
	}

	types := make(map[string]sitemirror.AssetType)
	discovered, contents, failed, err := m.discoverAssets(ctx, target, pages, alloc, types, summary)
	if err != nil {
		return nil, err
	}

	persisted, err := m.downloadAssets(ctx, discovered, contents, failed, alloc, types, summary, progress)
	if err != nil {
		return nil, err
	}

	if err := m.rewriteAll(pages, persisted, alloc, types); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished})
	}
	return summary, nil
}

// fetchPages captures each requested route sequentially. A route that cannot
// be fetched is logged and skipped.
func (m *Mirror) fetchPages(ctx context.Context, base *url.URL, routes []string, alloc *PathAllocator, summary *Summary, progress ProgressFunc) ([]*sitemirror.Page, error) {
	fetcher := m.PageFetcher
	if fetcher == nil {
		fetcher = m.Fetcher
	}

	var pages []*sitemirror.Page
	seen := make(map[string]bool)

	for _, route := range routes {
		if !strings.HasPrefix(route, "/") {
			route = "/" + route
		}
		if seen[route] {
			continue
		}
		seen[route] = true

		pageURL := base.ResolveReference(&url.URL{Path: route}).String()
		body, err := m.fetch(ctx, fetcher, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			summary.PagesFailed++
			m.log("page fetch failed", "route", route, "err", err)
			if progress != nil {
				progress(ProgressEvent{Type: ProgressPageFailed, URL: pageURL, Error: err})
			}
			continue
		}

		p := &sitemirror.Page{
			Route:     route,
			URL:       pageURL,
			LocalPath: sitemirror.PageFileName(route),
		}
		alloc.Claim(p.URL, p.LocalPath)
		if err := m.Store.Write(p.LocalPath, body); err != nil {
			return nil, err
		}

		pages = append(pages, p)
		summary.Pages++
		m.log("page captured", "route", route, "path", p.LocalPath, "bytes", len(body))
		if progress != nil {
			progress(ProgressEvent{Type: ProgressPageFetched, URL: pageURL, Completed: len(pages), Total: len(routes)})
		}
	}

	return pages, nil
}

// discoverAssets scans captured pages for asset references, then walks the
// reference graph breadth-first: scannable assets are fetched immediately so
// their own references can be followed. Local paths are assigned in discovery
// order, which makes allocation deterministic for identical content.
func (m *Mirror) discoverAssets(ctx context.Context, target string, pages []*sitemirror.Page, alloc *PathAllocator, types map[string]sitemirror.AssetType, summary *Summary) (discovered []string, contents map[string][]byte, failed map[string]bool, err error) {
	work := NewWorklist()
	contents = make(map[string][]byte)
	failed = make(map[string]bool)

	note := func(ref string) {
		if !sitemirror.SameOrigin(ref, target) {
			return
		}
		if _, claimed := alloc.PathFor(ref); claimed {
			return
		}
		if _, aerr := alloc.Allocate(ref); aerr != nil {
			return
		}
		types[ref] = sitemirror.RefineType(types[ref], sitemirror.TypeForURL(ref))
		work.Push(ref)
		discovered = append(discovered, ref)
	}

	scanner := goquery.NewScanner()
	for _, p := range pages {
		body, rerr := m.Store.Read(p.LocalPath)
		if rerr != nil {
			return nil, nil, nil, rerr
		}
		refs, serr := scanner.AssetRefs(body, p.URL)
		if serr != nil {
			m.log("page scan failed", "path", p.LocalPath, "err", serr)
			continue
		}
		for _, ref := range refs {
			note(ref)
		}
	}

	for {
		assetURL, ok := work.Pop()
		if !ok {
			break
		}
		if work.Processed(assetURL) {
			continue
		}
		work.MarkProcessed(assetURL)

		// Only scannable content needs fetching during discovery;
		// binaries wait for the concurrent download phase.
		typ := types[assetURL]
		if !typ.Rewritable() {
			continue
		}

		body, ferr := m.fetch(ctx, m.Fetcher, assetURL)
		if ferr != nil {
			if ctx.Err() != nil {
				return nil, nil, nil, ctx.Err()
			}
			failed[assetURL] = true
			summary.AssetsFailed++
			m.log("asset fetch failed", "url", assetURL, "err", ferr)
			continue
		}
		contents[assetURL] = body

		for _, ref := range extract.References(string(body), typ, assetURL) {
			note(ref)
		}
	}

	return discovered, contents, failed, nil
}

// downloadAssets persists every discovered asset, fetching the ones that
// discovery did not already pull. Downloads run concurrently; failures are
// counted, not fatal. Returns the URLs that were actually persisted.
func (m *Mirror) downloadAssets(ctx context.Context, discovered []string, contents map[string][]byte, failed map[string]bool, alloc *PathAllocator, types map[string]sitemirror.AssetType, summary *Summary, progress ProgressFunc) (map[string]bool, error) {
	concurrency := m.Concurrency
	if concurrency <= 0 {
		concurrency = 8
	}

	pending := make([]string, 0, len(discovered))
	for _, u := range discovered {
		if !failed[u] {
			pending = append(pending, u)
		}
	}

	resultCh := make(chan assetResult, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, assetURL := range pending {
			assetURL := assetURL
			g.Go(func() error {
				resultCh <- m.persistAsset(gctx, assetURL, contents[assetURL], alloc, types)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	persisted := make(map[string]bool)
	completed := 0
	for res := range resultCh {
		completed++
		if res.err != nil {
			summary.AssetsFailed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressAssetFailed, Completed: completed, Total: len(pending), URL: res.url, Error: res.err})
			}
			continue
		}
		persisted[res.url] = true
		summary.Assets++
		if res.sourceMap {
			summary.SourceMaps++
		}
		if progress != nil {
			progress(ProgressEvent{Type: ProgressAssetFetched, Completed: completed, Total: len(pending), URL: res.url})
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return persisted, nil
}

// persistAsset downloads (if needed) and writes one asset, capturing its
// source map when enabled.
func (m *Mirror) persistAsset(ctx context.Context, assetURL string, body []byte, alloc *PathAllocator, types map[string]sitemirror.AssetType) assetResult {
	localPath, _ := alloc.PathFor(assetURL)

	if body == nil {
		// A previous run may have stored this binary already.
		if m.Store.Exists(localPath) {
			return assetResult{url: assetURL}
		}
		var err error
		body, err = m.fetch(ctx, m.Fetcher, assetURL)
		if err != nil {
			return assetResult{url: assetURL, err: err}
		}
	}

	var mapped bool
	if m.SourceMaps && types[assetURL] == sitemirror.AssetScript {
		body, mapped = CaptureSourceMap(ctx, m.Fetcher.Fetch, m.Store, assetURL, body, localPath)
	}

	if err := m.Store.Write(localPath, body); err != nil {
		return assetResult{url: assetURL, err: err}
	}
	return assetResult{url: assetURL, sourceMap: mapped}
}

// rewriteAll replaces captured references in pages and scannable assets with
// relative local paths. Only successfully persisted targets enter the
// replacement map, so dangling references keep their original URLs.
func (m *Mirror) rewriteAll(pages []*sitemirror.Page, persisted map[string]bool, alloc *PathAllocator, types map[string]sitemirror.AssetType) error {
	refs := make(map[string]string, len(persisted)+len(pages))
	for u := range persisted {
		if p, ok := alloc.PathFor(u); ok {
			refs[u] = p
		}
	}
	for _, p := range pages {
		refs[p.URL] = p.LocalPath
	}

	for _, p := range pages {
		body, err := m.Store.Read(p.LocalPath)
		if err != nil {
			return err
		}
		out, err := rewrite.HTML(body, p.URL, p.LocalPath, refs)
		if err != nil {
			m.log("page rewrite failed", "path", p.LocalPath, "err", err)
			continue
		}
		if _, err := m.Store.WriteIfChanged(p.LocalPath, out); err != nil {
			return err
		}
	}

	for u := range persisted {
		typ := types[u]
		if !typ.Rewritable() {
			continue
		}
		localPath, _ := alloc.PathFor(u)
		body, err := m.Store.Read(localPath)
		if err != nil {
			return err
		}
		out := rewrite.Text(body, typ, u, localPath, refs)
		if _, err := m.Store.WriteIfChanged(localPath, out); err != nil {
			return err
		}
	}

	return nil
}

// fetch applies the per-domain rate limit and retry policy around a fetcher.
func (m *Mirror) fetch(ctx context.Context, f sitemirror.Fetcher, rawURL string) ([]byte, error) {
	if m.Limiter != nil {
		if u, err := url.Parse(rawURL); err == nil {
			if err := m.Limiter.Wait(ctx, u.Host); err != nil {
				return nil, err
			}
		}
	}

	delays := m.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, rawURL, f.Fetch, m.logf, delays)
}

func (m *Mirror) log(msg string, args ...any) {
	if m.Logger != nil {
		m.Logger.Debug(msg, args...)
	}
}

func (m *Mirror) logf(format string, args ...any) {
	if m.Logger != nil {
		m.Logger.Debug(fmt.Sprintf(format, args...))
	}
}
