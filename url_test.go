package sitemirror_test

import (
	"testing"

	"sitemirror"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	base := "https://x.test/docs/page"

	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"absolute https used as-is", "https://x.test/app.js", "https://x.test/app.js", true},
		{"absolute http used as-is", "http://x.test/app.js", "http://x.test/app.js", true},
		{"protocol-relative gets https", "//cdn.test/lib.js", "https://cdn.test/lib.js", true},
		{"root-relative resolves against origin", "/static/app.js", "https://x.test/static/app.js", true},
		{"relative resolves against base directory", "img/logo.png", "https://x.test/docs/img/logo.png", true},
		{"dotdot relative", "../app.css", "https://x.test/app.css", true},
		{"data URI ignored", "data:image/png;base64,AAAA", "", false},
		{"fragment ignored", "#section", "", false},
		{"empty ignored", "", "", false},
		{"whitespace ignored", "   ", "", false},
		{"mailto ignored", "mailto:a@b.test", "", false},
		{"javascript ignored", "javascript:void(0)", "", false},
		{"malformed ignored", "http://[::1", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := sitemirror.Resolve(tt.raw, base)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_NeverPanics(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "   ", "://", "http://", "%zz", "\x00", "......", "//", "#", "data:"}
	for _, in := range inputs {
		_, _ = sitemirror.Resolve(in, "https://x.test/")
		_, _ = sitemirror.Resolve(in, "not a url")
	}
}

func TestSameOrigin(t *testing.T) {
	t.Parallel()

	assert.True(t, sitemirror.SameOrigin("https://x.test/a", "https://x.test/b?q=1"))
	assert.False(t, sitemirror.SameOrigin("https://x.test/a", "http://x.test/a"), "scheme differs")
	assert.False(t, sitemirror.SameOrigin("https://x.test/a", "https://x.test:8443/a"), "port differs")
	assert.False(t, sitemirror.SameOrigin("https://x.test/a", "https://cdn.test/a"), "host differs")
}
