// Package noise rejects mechanically generated or vendored files whose
// edits carry no review signal before they ever reach the differ. Callers
// that construct file pairs (such as internal/ghclient) apply it, and
// triage.Analyze and triage.AnalyzeRemote also drop noise paths from the
// pairs they diff.
package noise

import "strings"

// exactNames are filenames (not paths) that are always noise: lockfiles
// of the package managers we know about, plus editor/OS droppings.
var exactNames = map[string]struct{}{
	"pnpm-lock.yaml":       {},
	"package-lock.json":    {},
	"yarn.lock":            {},
	"npm-shrinkwrap.json":  {},
	"bun.lockb":            {},
	"Cargo.lock":           {},
	"Gemfile.lock":         {},
	"poetry.lock":          {},
	"Pipfile.lock":         {},
	"uv.lock":              {},
	"go.sum":               {},
	"composer.lock":        {},
	"packages.lock.json":   {},
	"pubspec.lock":         {},
	"Package.resolved":     {},
	"mix.lock":             {},
	".DS_Store":            {},
}

var suffixes = []string{
	".min.js",
	".min.css",
	".map",
	".chunk.js",
	".bundle.js",
}

var prefixes = []string{
	"dist/",
	".next/",
	"build/",
	"__generated__/",
	".turbo/",
}

// IsNoise reports whether path should be excluded from the differ's input
// as a noise file. Matching is done against the exact filename (last path
// segment), the full path's suffix, and the full path's prefix.
func IsNoise(path string) bool {
	filename := path
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		filename = path[idx+1:]
	}

	if _, ok := exactNames[filename]; ok {
		return true
	}

	for _, suf := range suffixes {
		if strings.HasSuffix(path, suf) {
			return true
		}
	}

	for _, pre := range prefixes {
		if strings.HasPrefix(path, pre) {
			return true
		}
	}

	return false
}

// Filter returns the subset of paths that are not noise, preserving order.
func Filter(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !IsNoise(p) {
			out = append(out, p)
		}
	}
	return out
}
