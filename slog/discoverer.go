package slog

import (
	"context"
	"log/slog"
	"time"

	"sitemirror"
)

// Ensure LoggingPageDiscoverer implements sitemirror.PageDiscoverer.
var _ sitemirror.PageDiscoverer = (*LoggingPageDiscoverer)(nil)

// LoggingPageDiscoverer wraps a PageDiscoverer with debug logging.
type LoggingPageDiscoverer struct {
	next   sitemirror.PageDiscoverer
	source string
	logger *slog.Logger
}

// NewLoggingPageDiscoverer creates a new LoggingPageDiscoverer. The source
// label identifies which discovery strategy is being wrapped.
func NewLoggingPageDiscoverer(next sitemirror.PageDiscoverer, source string, logger *slog.Logger) *LoggingPageDiscoverer {
	return &LoggingPageDiscoverer{next: next, source: source, logger: logger}
}

// DiscoverPages delegates to the wrapped discoverer and logs the operation.
func (d *LoggingPageDiscoverer) DiscoverPages(ctx context.Context, target string, limit int) (routes []string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("page discovery",
			"source", d.source,
			"target", target,
			"count", len(routes),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.DiscoverPages(ctx, target, limit)
}
