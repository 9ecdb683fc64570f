// Package rewrite replaces captured remote references in mirrored files with
// relative local paths, so the mirror browses correctly from file:// or any
// static file server regardless of mount point.
package rewrite

import (
	"path"
	"strings"
)

// RelativePath computes the relative link from the directory containing
// fromFile to toFile. Both are slash-separated paths relative to the same
// output root.
func RelativePath(fromFile, toFile string) string {
	from := strings.Split(path.Dir(fromFile), "/")
	if from[0] == "." {
		from = nil
	}
	to := strings.Split(toFile, "/")

	// Common directory prefix; the final segment of "to" is a file name
	// and never part of the prefix.
	i := 0
	for i < len(from) && i < len(to)-1 && from[i] == to[i] {
		i++
	}

	segs := make([]string, 0, len(from)-i+len(to)-i)
	for range from[i:] {
		segs = append(segs, "..")
	}
	segs = append(segs, to[i:]...)
	return strings.Join(segs, "/")
}
