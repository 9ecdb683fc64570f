package sitemirror

import (
	"net/url"
	"path"
	"strings"
)

// AssetType classifies an asset by how its content is scanned and rewritten.
type AssetType int

// Asset types, ordered from least to most specific.
const (
	AssetOther AssetType = iota
	AssetScript
	AssetStylesheet
	AssetStructured
)

// String returns a human-readable name for logging.
func (t AssetType) String() string {
	switch t {
	case AssetScript:
		return "script"
	case AssetStylesheet:
		return "stylesheet"
	case AssetStructured:
		return "structured"
	default:
		return "other"
	}
}

// Rewritable reports whether content of this type supports reference
// rewriting. Binary asset types (images, fonts) are copied verbatim.
func (t AssetType) Rewritable() bool {
	return t != AssetOther
}

// Asset is a remote resource referenced, directly or indirectly, by a
// captured page. The URL is the identity key for all tracking maps and is
// immutable once resolved.
type Asset struct {
	URL       string
	Type      AssetType
	LocalPath string
	Fetched   bool
	Content   []byte
}

// TypeForURL infers an asset type from the extension of the URL's path
// component. The comparison is case-insensitive; query strings and fragments
// do not affect classification.
func TypeForURL(rawURL string) AssetType {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".js", ".mjs":
		return AssetScript
	case ".css":
		return AssetStylesheet
	case ".json":
		return AssetStructured
	default:
		return AssetOther
	}
}

// RefineType resolves repeat observations of the same URL with different
// inferred types: a specific type always wins over AssetOther, and a later
// specific observation replaces an earlier one. AssetOther never downgrades
// a specific type.
func RefineType(current, observed AssetType) AssetType {
	if observed == AssetOther {
		return current
	}
	return observed
}
