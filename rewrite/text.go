package rewrite

import (
	"strings"

	"sitemirror"
	"sitemirror/extract"
)

// Text rewrites references inside script, stylesheet, or structured content.
// refs maps absolute remote URLs to local paths; selfURL and selfPath are the
// remote URL and local path of the document being rewritten. References to
// URLs absent from refs are left untouched.
//
// Only scheme-absolute, protocol-relative, and root-relative spellings are
// rewritten. Document-relative references already resolve correctly on disk
// because local paths preserve the remote directory layout, and leaving them
// alone makes rewriting idempotent.
func Text(content []byte, typ sitemirror.AssetType, selfURL, selfPath string, refs map[string]string) []byte {
	out := extract.Rewrite(string(content), typ, replacer(selfURL, selfPath, refs))
	return []byte(out)
}

// replacer builds the raw-reference substitution used for both text content
// and HTML attributes.
func replacer(selfURL, selfPath string, refs map[string]string) func(raw string) (string, bool) {
	return func(raw string) (string, bool) {
		if !rewritableRef(raw) {
			return "", false
		}
		abs, ok := sitemirror.Resolve(raw, selfURL)
		if !ok {
			return "", false
		}
		local, ok := refs[abs]
		if !ok {
			return "", false
		}
		return RelativePath(selfPath, local), true
	}
}

func rewritableRef(raw string) bool {
	raw = strings.TrimSpace(raw)
	return strings.HasPrefix(raw, "http://") ||
		strings.HasPrefix(raw, "https://") ||
		strings.HasPrefix(raw, "/")
}
