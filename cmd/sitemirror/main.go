package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"sitemirror"
	"sitemirror/crawl"
	"sitemirror/fs"
	"sitemirror/goquery"
	mirrorhttp "sitemirror/http"
	"sitemirror/rod"
	mirrorslog "sitemirror/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Out         string        `short:"o" help:"Output directory (default: target host name)"`
	Concurrency int           `short:"c" default:"8" help:"Concurrent asset download limit"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Fetch timeout per request"`
	Rate        float64       `default:"4" help:"Max requests per second per domain"`
	MaxPages    int           `default:"100" help:"Max pages to discover when no paths are given"`
	Render      bool          `help:"Render pages in a headless browser before capture"`
	SourceMaps  bool          `help:"Capture JavaScript source maps alongside scripts"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`
	URL         string        `arg:"" required:"" help:"Site URL to mirror"`
	Paths       []string      `arg:"" optional:"" help:"Page paths to capture (default: discovered from sitemap or links)"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sitemirror"),
		kong.Description("Mirror a website into a self-contained local folder"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	target, err := url.Parse(cli.URL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return fmt.Errorf("invalid site URL %q (must be absolute http(s))", cli.URL)
	}

	outDir := cli.Out
	if outDir == "" {
		outDir = target.Hostname()
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var fetcher sitemirror.Fetcher = mirrorhttp.NewFetcher(mirrorhttp.WithTimeout(cli.Timeout))
	if cli.Verbose {
		fetcher = mirrorslog.NewLoggingFetcher(fetcher, logger)
	}
	defer fetcher.Close()

	var pageFetcher sitemirror.Fetcher
	if cli.Render {
		rodFetcher, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer rodFetcher.Close()
		pageFetcher = rodFetcher
		if cli.Verbose {
			pageFetcher = mirrorslog.NewLoggingFetcher(pageFetcher, logger)
		}
	}

	routes := cli.Paths
	if len(routes) == 0 {
		routes, err = m.discoverRoutes(ctx, cli, fetcher, logger)
		if err != nil {
			return err
		}
	}

	mirror := &crawl.Mirror{
		Fetcher:     fetcher,
		PageFetcher: pageFetcher,
		Store:       fs.NewStore(outDir),
		Limiter:     crawl.NewDomainLimiter(cli.Rate),
		Logger:      logger,
		SourceMaps:  cli.SourceMaps,
		Concurrency: cli.Concurrency,
	}

	progress := func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressPageFailed:
			fmt.Fprintf(stderr, "page failed: %s: %v\n", e.URL, e.Error)
		case crawl.ProgressAssetFailed:
			fmt.Fprintf(stderr, "asset failed: %s: %v\n", e.URL, e.Error)
		}
	}

	summary, err := mirror.Run(ctx, cli.URL, routes, progress)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "mirrored %d pages and %d assets", summary.Pages, summary.Assets)
	if summary.SourceMaps > 0 {
		fmt.Fprintf(stdout, " (%d source maps)", summary.SourceMaps)
	}
	if failed := summary.PagesFailed + summary.AssetsFailed; failed > 0 {
		fmt.Fprintf(stdout, ", %d failed", failed)
	}
	fmt.Fprintf(stdout, " → %s\n", outDir)

	return nil
}

// discoverRoutes finds page routes when none were given: the sitemap first,
// then a depth-one link scan of the landing page, then just the root.
func (m *Main) discoverRoutes(ctx context.Context, cli *CLI, fetcher sitemirror.Fetcher, logger *slog.Logger) ([]string, error) {
	var sitemaps sitemirror.PageDiscoverer = mirrorhttp.NewSitemapSource(nil)
	var links sitemirror.PageDiscoverer = goquery.NewLinkDiscoverer(fetcher)
	if cli.Verbose {
		sitemaps = mirrorslog.NewLoggingPageDiscoverer(sitemaps, "sitemap", logger)
		links = mirrorslog.NewLoggingPageDiscoverer(links, "links", logger)
	}

	routes, err := sitemaps.DiscoverPages(ctx, cli.URL, cli.MaxPages)
	if err != nil {
		logger.Debug("sitemap discovery failed", "err", err)
	}
	if len(routes) > 0 {
		return routes, nil
	}

	routes, err = links.DiscoverPages(ctx, cli.URL, cli.MaxPages)
	if err != nil {
		logger.Debug("link discovery failed", "err", err)
	}
	if len(routes) > 0 {
		return routes, nil
	}

	return []string{"/"}, nil
}
