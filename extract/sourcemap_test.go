package extract_test

import (
	"testing"

	"sitemirror/extract"

	"github.com/stretchr/testify/assert"
)

func TestSourceMapURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script string
		want   string
		found  bool
	}{
		{
			name:   "hash directive",
			script: "var x=1;\n//# sourceMappingURL=app.js.map\n",
			want:   "app.js.map",
			found:  true,
		},
		{
			name:   "at directive",
			script: "var x=1;\n//@ sourceMappingURL=legacy.js.map",
			want:   "legacy.js.map",
			found:  true,
		},
		{
			name:   "block directive",
			script: "var x=1;/*# sourceMappingURL=min.js.map */",
			want:   "min.js.map",
			found:  true,
		},
		{
			name:   "absolute map URL",
			script: "//# sourceMappingURL=https://x.test/maps/app.js.map",
			want:   "https://x.test/maps/app.js.map",
			found:  true,
		},
		{
			name:   "last line directive wins",
			script: "//# sourceMappingURL=old.map\nvar y=2;\n//# sourceMappingURL=new.map",
			want:   "new.map",
			found:  true,
		},
		{
			name:   "no directive",
			script: "var x=1; // sourceMappingURL mentioned in prose",
			found:  false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, found := extract.SourceMapURL(tt.script)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewriteSourceMapDirective(t *testing.T) {
	t.Parallel()

	t.Run("line form", func(t *testing.T) {
		t.Parallel()

		script := "var x=1;\n//@ sourceMappingURL=https://x.test/app.js.map\n"
		got := extract.RewriteSourceMapDirective(script, "app.js.map")

		assert.Equal(t, "var x=1;\n//# sourceMappingURL=app.js.map\n", got)
	})

	t.Run("block form normalized to line form", func(t *testing.T) {
		t.Parallel()

		script := "var x=1;/*# sourceMappingURL=https://x.test/app.js.map */"
		got := extract.RewriteSourceMapDirective(script, "app.js.map")

		assert.Equal(t, "var x=1;//# sourceMappingURL=app.js.map", got)
	})
}
