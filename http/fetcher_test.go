package http_test

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemirror"
	sitemirrorhttp "sitemirror/http"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns response body on success", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			_, _ = w.Write([]byte("<html><body>hello</body></html>"))
		}))
		defer srv.Close()

		f := sitemirrorhttp.NewFetcher()
		defer f.Close()

		body, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>hello</body></html>", string(body))
	})

	t.Run("maps 404 to ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			nethttp.NotFound(w, r)
		}))
		defer srv.Close()

		f := sitemirrorhttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL+"/missing.js")
		assert.Equal(t, sitemirror.ENOTFOUND, sitemirror.ErrorCode(err))
	})

	t.Run("maps server errors to EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			w.WriteHeader(nethttp.StatusInternalServerError)
		}))
		defer srv.Close()

		f := sitemirrorhttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)
		assert.Equal(t, sitemirror.EUNAVAILABLE, sitemirror.ErrorCode(err))
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			w.WriteHeader(nethttp.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("cached"))
		}))
		defer srv.Close()

		f := sitemirrorhttp.NewFetcher()
		defer f.Close()

		body, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "cached", string(body))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := sitemirrorhttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(ctx, srv.URL)
		assert.Error(t, err)
	})
}
