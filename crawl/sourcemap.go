package crawl

import (
	"context"
	"encoding/json"
	"path"

	"sitemirror"
	"sitemirror/extract"
)

// CaptureSourceMap inspects a fetched script for a sourceMappingURL directive,
// retrieves the referenced map, and stores it next to the script as
// localPath + ".map". The returned body has the directive rewritten to the
// local map file's base name, so it sits in the same directory as the script.
//
// Any failure is non-fatal: the script body is returned unchanged and the
// bool result is false. Inline data: maps are left alone, they travel with
// the script already.
func CaptureSourceMap(ctx context.Context, fetch FetchFunc, store sitemirror.FileStore, scriptURL string, body []byte, localPath string) ([]byte, bool) {
	raw, ok := extract.SourceMapURL(string(body))
	if !ok {
		return body, false
	}

	mapURL, ok := sitemirror.Resolve(raw, scriptURL)
	if !ok {
		return body, false
	}

	data, err := fetch(ctx, mapURL)
	if err != nil {
		return body, false
	}
	if !json.Valid(data) {
		return body, false
	}

	mapPath := localPath + ".map"
	if err := store.Write(mapPath, data); err != nil {
		return body, false
	}

	rewritten := extract.RewriteSourceMapDirective(string(body), path.Base(mapPath))
	return []byte(rewritten), true
}
