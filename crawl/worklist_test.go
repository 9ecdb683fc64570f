package crawl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sitemirror/crawl"
)

func TestWorklist_FIFOOrder(t *testing.T) {
	t.Parallel()

	w := crawl.NewWorklist()
	assert.True(t, w.Push("https://site.example/a.js"))
	assert.True(t, w.Push("https://site.example/b.js"))
	assert.True(t, w.Push("https://site.example/c.js"))
	assert.Equal(t, 3, w.Len())

	first, ok := w.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://site.example/a.js", first)

	second, ok := w.Pop()
	assert.True(t, ok)
	assert.Equal(t, "https://site.example/b.js", second)
}

func TestWorklist_EnqueuesEachURLOnce(t *testing.T) {
	t.Parallel()

	w := crawl.NewWorklist()
	assert.True(t, w.Push("https://site.example/a.js"))
	assert.False(t, w.Push("https://site.example/a.js"))
	assert.Equal(t, 1, w.Len())

	// Re-pushing after the pop must not requeue either, which is what
	// terminates mutual-import cycles.
	url, ok := w.Pop()
	assert.True(t, ok)
	w.MarkProcessed(url)
	assert.False(t, w.Push(url))
	assert.Equal(t, 0, w.Len())
	assert.True(t, w.Processed(url))
	assert.True(t, w.Known(url))
}

func TestWorklist_PopOnEmpty(t *testing.T) {
	t.Parallel()

	w := crawl.NewWorklist()
	url, ok := w.Pop()
	assert.False(t, ok)
	assert.Empty(t, url)
}
