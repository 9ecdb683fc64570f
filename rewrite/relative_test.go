package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sitemirror/rewrite"
)

func TestRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from string
		to   string
		want string
	}{
		{"root to root", "index.html", "app.js", "app.js"},
		{"root to subdir", "index.html", "assets/app.js", "assets/app.js"},
		{"subdir to root", "foo/bar.html", "app.js", "../app.js"},
		{"sibling dirs", "a/b/c.css", "a/img/x.png", "../img/x.png"},
		{"same dir", "assets/app.js", "assets/app.js.map", "app.js.map"},
		{"deep to shallow", "a/b/c/page.html", "a/style.css", "../../style.css"},
		{"shallow to deep", "index.html", "a/b/c/chunk.js", "a/b/c/chunk.js"},
		{"shared deep prefix", "docs/guide/intro.html", "docs/guide/img/d.png", "img/d.png"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rewrite.RelativePath(tt.from, tt.to))
		})
	}
}
