package extract

import "regexp"

// Source-map directive forms: single-line //# or //@ comments, and the
// /*# ... */ block form some minifiers emit.
var (
	reMapLine  = regexp.MustCompile(`(?m)^[ \t]*//[#@][ \t]*sourceMappingURL=(\S+)[ \t]*$`)
	reMapBlock = regexp.MustCompile(`/\*+[#@][ \t]*sourceMappingURL=([^\s*]+)[ \t]*\*+/`)
)

// SourceMapURL returns the raw source-map reference from a script's trailing
// directive. When both forms appear the last single-line directive wins.
// The reference may be relative or a data URI; the caller decides whether it
// is fetchable.
func SourceMapURL(script string) (string, bool) {
	if m := reMapLine.FindAllStringSubmatch(script, -1); len(m) > 0 {
		return m[len(m)-1][1], true
	}
	if m := reMapBlock.FindAllStringSubmatch(script, -1); len(m) > 0 {
		return m[len(m)-1][1], true
	}
	return "", false
}

// RewriteSourceMapDirective replaces every source-map directive in the
// script with the canonical single-line form pointing at local.
func RewriteSourceMapDirective(script, local string) string {
	canonical := "//# sourceMappingURL=" + local
	script = reMapLine.ReplaceAllString(script, canonical)
	script = reMapBlock.ReplaceAllString(script, canonical)
	return script
}
