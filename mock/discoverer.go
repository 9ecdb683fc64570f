package mock

import (
	"context"

	"sitemirror"
)

var _ sitemirror.PageDiscoverer = (*PageDiscoverer)(nil)

// PageDiscoverer is a mock implementation of sitemirror.PageDiscoverer.
type PageDiscoverer struct {
	DiscoverPagesFn func(ctx context.Context, target string, limit int) ([]string, error)
}

func (d *PageDiscoverer) DiscoverPages(ctx context.Context, target string, limit int) ([]string, error) {
	return d.DiscoverPagesFn(ctx, target, limit)
}
