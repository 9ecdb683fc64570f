//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemirror"
	"sitemirror/rod"
)

// Ensure Fetcher implements sitemirror.Fetcher.
var _ sitemirror.Fetcher = (*rod.Fetcher)(nil)

func TestFetcher_Fetch_RendersScriptedContent(t *testing.T) {
	t.Parallel()

	// A page whose body is empty until a script runs.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><head><title>app</title></head>
<body><div id="root"></div>
<script>document.getElementById("root").innerHTML = "<h1>rendered</h1>";</script>
</body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	body, err := fetcher.Fetch(ctx, srv.URL)
	require.NoError(t, err)

	assert.Contains(t, string(body), "<h1>rendered</h1>")
}

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Don't respond - let context cancellation interrupt
		select {}
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, srv.URL)
	assert.Error(t, err)
}
