package sitemirror

import (
	"net/url"
	"strings"
)

// Resolve normalizes a raw reference found in page or asset content into an
// absolute http(s) URL. The base URL is that of the document containing the
// reference. The bool result is false when the reference is not a fetchable
// asset (data URIs, fragments, non-http schemes) or is malformed; such
// references are silently ignored, never treated as fatal.
//
// Fragments are stripped: URLs differing only by fragment identify the same
// asset.
func Resolve(raw, base string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "data:") || strings.HasPrefix(raw, "#") {
		return "", false
	}
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	resolved := ref
	if !ref.IsAbs() {
		b, err := url.Parse(base)
		if err != nil {
			return "", false
		}
		resolved = b.ResolveReference(ref)
	}

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	if resolved.Host == "" {
		return "", false
	}
	resolved.Fragment = ""
	return resolved.String(), true
}

// SameOrigin reports whether two absolute URLs share scheme, host, and port.
func SameOrigin(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return ua.Scheme == ub.Scheme && ua.Host == ub.Host
}
