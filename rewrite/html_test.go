package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitemirror/rewrite"
)

func TestHTML_RewritesAttributes(t *testing.T) {
	t.Parallel()

	page := []byte(`<!DOCTYPE html>
<html><head>
<link rel="stylesheet" href="/css/main.css">
<script src="https://site.example/js/app.js"></script>
</head><body>
<img src="/img/logo.png" alt="logo">
<a href="/pricing">Pricing</a>
<a href="https://other.example/about">External</a>
<video poster="/img/poster.jpg" src="/media/intro.mp4"></video>
</body></html>`)

	refs := map[string]string{
		"https://site.example/css/main.css":    "css/main.css",
		"https://site.example/js/app.js":       "js/app.js",
		"https://site.example/img/logo.png":    "img/logo.png",
		"https://site.example/img/poster.jpg":  "img/poster.jpg",
		"https://site.example/media/intro.mp4": "media/intro.mp4",
		"https://site.example/pricing":         "pricing.html",
	}

	out, err := rewrite.HTML(page, "https://site.example/", "index.html", refs)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `href="css/main.css"`)
	assert.Contains(t, html, `src="js/app.js"`)
	assert.Contains(t, html, `src="img/logo.png"`)
	assert.Contains(t, html, `href="pricing.html"`)
	assert.Contains(t, html, `poster="img/poster.jpg"`)
	assert.Contains(t, html, `src="media/intro.mp4"`)
	// Links to uncaptured origins survive unchanged.
	assert.Contains(t, html, `href="https://other.example/about"`)
}

func TestHTML_RewritesSrcset(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><body><img srcset="/img/s.png 480w, /img/l.png 1080w" src="/img/l.png"></body></html>`)
	refs := map[string]string{
		"https://site.example/img/s.png": "img/s.png",
		"https://site.example/img/l.png": "img/l.png",
	}

	out, err := rewrite.HTML(page, "https://site.example/gallery", "gallery.html", refs)
	require.NoError(t, err)

	assert.Contains(t, string(out), `srcset="img/s.png 480w, img/l.png 1080w"`)
	assert.Contains(t, string(out), `src="img/l.png"`)
}

func TestHTML_RewritesInlineScriptAndStyle(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><head>
<style>body { background: url(/img/bg.png); }</style>
<script>fetch("/api/config.json");</script>
</head><body></body></html>`)

	refs := map[string]string{
		"https://site.example/img/bg.png":      "img/bg.png",
		"https://site.example/api/config.json": "api/config.json",
	}

	out, err := rewrite.HTML(page, "https://site.example/", "index.html", refs)
	require.NoError(t, err)

	assert.Contains(t, string(out), `url(img/bg.png)`)
	assert.Contains(t, string(out), `fetch("api/config.json")`)
}

func TestHTML_SubdirectoryPageUsesParentTraversal(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><head><link rel="stylesheet" href="/css/main.css"></head><body></body></html>`)
	refs := map[string]string{
		"https://site.example/css/main.css": "css/main.css",
	}

	out, err := rewrite.HTML(page, "https://site.example/docs/intro", "docs/intro.html", refs)
	require.NoError(t, err)

	assert.Contains(t, string(out), `href="../css/main.css"`)
}

func TestHTML_IsIdempotent(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><head><link rel="stylesheet" href="/css/main.css"></head><body><img src="/img/a.png"></body></html>`)
	refs := map[string]string{
		"https://site.example/css/main.css": "css/main.css",
		"https://site.example/img/a.png":    "img/a.png",
	}

	once, err := rewrite.HTML(page, "https://site.example/", "index.html", refs)
	require.NoError(t, err)
	twice, err := rewrite.HTML(once, "https://site.example/", "index.html", refs)
	require.NoError(t, err)

	assert.Equal(t, string(once), string(twice))
}
