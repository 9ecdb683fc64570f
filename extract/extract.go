// Package extract finds asset references embedded in script, stylesheet,
// and JSON content by matching a fixed table of common bundler and CSS
// idioms. Coverage is deliberately best-effort pattern matching, not full
// language parsing.
package extract

import (
	"path"
	"regexp"
	"strings"

	"sitemirror"
)

// Script reference idioms. Each pattern captures exactly one quoted literal;
// unquoted expressions (variables, template strings) never match, which
// keeps import(someVariable) from being chased as a path.
var scriptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`import\(\s*["']([^"']+)["']\s*\)`),
	regexp.MustCompile(`(?:import|export)[\w$*{},\s]*?\s+from\s+["']([^"']+)["']`),
	regexp.MustCompile(`import\s+["']([^"']+)["']`),
	regexp.MustCompile(`require\(\s*["']([^"']+)["']\s*\)`),
	regexp.MustCompile(`new\s+URL\(\s*["']([^"']+)["']`),
	regexp.MustCompile(`fetch\(\s*["']([^"']+)["']`),
	// Catch-all for bundler manifests and loader configs.
	regexp.MustCompile(`["']?(?:chunk|src|href|url)["']?\s*:\s*["']([^"']+)["']`),
}

// Stylesheet idioms: url() in its double-quoted, single-quoted, and bare
// forms, plus quoted @import. @import url(...) is covered by the url()
// patterns.
var stylesheetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)url\(\s*"([^"]+)"\s*\)`),
	regexp.MustCompile(`(?i)url\(\s*'([^']+)'\s*\)`),
	regexp.MustCompile(`(?i)url\(\s*([^)'"\s]+)\s*\)`),
	regexp.MustCompile(`(?i)@import\s+"([^"]+)"`),
	regexp.MustCompile(`(?i)@import\s+'([^']+)'`),
}

// Structured (JSON-like) content: only a fixed set of keys is recognized,
// and only absolute http(s) values are chased since JSON has no reliable
// base-URL convention.
var structuredPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"(?:src|href|url|image|icon|logo|poster|thumbnail)"\s*:\s*"(https?://[^"]+)"`),
}

func patternsFor(typ sitemirror.AssetType) []*regexp.Regexp {
	switch typ {
	case sitemirror.AssetScript:
		return scriptPatterns
	case sitemirror.AssetStylesheet:
		return stylesheetPatterns
	case sitemirror.AssetStructured:
		return structuredPatterns
	default:
		return nil
	}
}

// knownExts are extensions that make a bare quoted literal plausible as an
// asset path even without a slash.
var knownExts = map[string]bool{
	".js": true, ".mjs": true, ".css": true, ".json": true, ".map": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true,
	".webp": true, ".ico": true, ".avif": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".html": true, ".htm": true, ".xml": true, ".txt": true,
	".wasm": true, ".mp3": true, ".mp4": true, ".webm": true,
}

// looksLikePath reports whether a captured literal syntactically resembles a
// real path. Ordinary identifiers or interpolation fragments that happen to
// sit inside a matched idiom are rejected.
func looksLikePath(s string) bool {
	if s == "" {
		return false
	}
	if strings.ContainsAny(s, " \t\r\n`") || strings.Contains(s, "${") {
		return false
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "//") {
		return true
	}
	if strings.Contains(s, "/") {
		return true
	}
	p := s
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return knownExts[strings.ToLower(path.Ext(p))]
}

// References scans content of the given type and returns the deduplicated
// absolute URLs of embedded asset references, resolved against base (the
// containing document's own URL). Unresolvable or ignorable references are
// dropped.
func References(content string, typ sitemirror.AssetType, base string) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(raw string) {
		resolved, ok := sitemirror.Resolve(raw, base)
		if !ok || seen[resolved] {
			return
		}
		seen[resolved] = true
		out = append(out, resolved)
	}

	for _, re := range patternsFor(typ) {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			raw := m[1]
			if typ != sitemirror.AssetStructured && !looksLikePath(raw) {
				continue
			}
			add(raw)
		}
	}

	if typ == sitemirror.AssetScript {
		for _, candidate := range webpackChunks(content) {
			add(candidate)
		}
	}

	return out
}

// Rewrite re-runs the same idiom patterns over content and replaces each
// captured reference for which repl returns a substitution. Everything else
// is left byte-for-byte untouched.
func Rewrite(content string, typ sitemirror.AssetType, repl func(raw string) (string, bool)) string {
	for _, re := range patternsFor(typ) {
		content = re.ReplaceAllStringFunc(content, func(match string) string {
			idx := re.FindStringSubmatchIndex(match)
			if idx == nil || len(idx) < 4 {
				return match
			}
			raw := match[idx[2]:idx[3]]
			if typ != sitemirror.AssetStructured && !looksLikePath(raw) {
				return match
			}
			sub, ok := repl(raw)
			if !ok {
				return match
			}
			return match[:idx[2]] + sub + match[idx[3]:]
		})
	}
	return content
}
