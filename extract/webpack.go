package extract

import (
	"regexp"
	"strings"
)

// Webpack runtime idioms: the public-path assignment and the chunk id→hash
// map the runtime concatenates into lazy-loaded chunk URLs.
var (
	rePublicPath = regexp.MustCompile(`__webpack_require__\.p\s*=\s*["']([^"']*)["']`)
	reChunkMap   = regexp.MustCompile(`\{(?:\s*(?:\d+|"[^"]+")\s*:\s*"[0-9a-fA-F]{4,}"\s*,?)+\}`)
	reChunkHash  = regexp.MustCompile(`:"([0-9a-fA-F]+)"`)
	reChunkID    = regexp.MustCompile(`(?:\{|,)(\d+|"[^"]+"):`)
)

// maxChunkMaps bounds how many candidate maps are inspected per script; real
// bundles carry one, and the pattern is loose enough to misfire on data.
const maxChunkMaps = 3

// webpackChunks reconstructs candidate chunk file names from a bundled
// script. Candidates are heuristic: a misfire costs one failed fetch, which
// the orchestrator tolerates.
func webpackChunks(body string) []string {
	publicPath := ""
	if m := rePublicPath.FindStringSubmatch(body); len(m) > 1 {
		publicPath = m[1]
	}

	var chunks []string
	seen := make(map[string]bool)

	for _, match := range reChunkMap.FindAllString(body, maxChunkMaps) {
		clean := strings.NewReplacer(" ", "", "\n", "", "\t", "").Replace(match)

		hashes := reChunkHash.FindAllStringSubmatch(clean, -1)
		ids := reChunkID.FindAllStringSubmatch(clean, -1)
		if len(hashes) == 0 || len(hashes) != len(ids) {
			continue
		}

		for i, h := range hashes {
			id := strings.Trim(ids[i][1], `"`)
			name := id + "." + h[1] + ".js"

			candidate := name
			if publicPath != "" {
				candidate = strings.TrimSuffix(publicPath, "/") + "/" + name
			}
			if !seen[candidate] {
				seen[candidate] = true
				chunks = append(chunks, candidate)
			}
		}
	}

	return chunks
}
