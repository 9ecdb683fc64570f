package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemirror"
	"sitemirror/mock"
	sitemirrorslog "sitemirror/slog"
)

func TestLoggingPageDiscoverer_DiscoverPages(t *testing.T) {
	t.Parallel()

	t.Run("logs source, count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageDiscoverer{
			DiscoverPagesFn: func(ctx context.Context, target string, limit int) ([]string, error) {
				return []string{"/", "/pricing"}, nil
			},
		}

		d := sitemirrorslog.NewLoggingPageDiscoverer(inner, "sitemap", logger)
		routes, err := d.DiscoverPages(context.Background(), "https://example.com/", 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"/", "/pricing"}, routes)
		output := buf.String()
		assert.Contains(t, output, "page discovery")
		assert.Contains(t, output, "source=sitemap")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PageDiscoverer{
			DiscoverPagesFn: func(ctx context.Context, target string, limit int) ([]string, error) {
				return nil, sitemirror.Errorf(sitemirror.EUNAVAILABLE, "no sitemap")
			},
		}

		d := sitemirrorslog.NewLoggingPageDiscoverer(inner, "sitemap", logger)
		_, err := d.DiscoverPages(context.Background(), "https://example.com/", 0)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=")
	})
}
