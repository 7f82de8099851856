package engine

import (
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

var defaultExcludeDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	".idea":        true,
	".vscode":      true,
}

// suffixes treated as non-text or generated artifacts when default excludes are enabled
var defaultExcludeFileSuffixes = []string{
	".min.js", ".map",
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".ico", ".bmp",
	".pdf", ".zip", ".gz", ".tar", ".tgz", ".7z", ".bz2", ".xz",
	".jar", ".class", ".exe", ".dll", ".so", ".dylib", ".o", ".a",
	".wasm", ".pyc",
	".woff", ".woff2", ".ttf", ".eot",
	".mp3", ".mp4", ".mov",
}

// exact filenames commonly safe to exclude when default excludes are enabled
var defaultExcludeFileNames = map[string]bool{
	"yarn.lock":         true,
	"package-lock.json": true,
	"pnpm-lock.yaml":    true,
	"composer.lock":     true,
	"poetry.lock":       true,
	"go.sum":            true,
	".DS_Store":         true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name]
}

func isDefaultFileExcluded(rel string) bool {
	lower := strings.ToLower(filepath.ToSlash(rel))
	if strings.HasSuffix(lower, ".lock") {
		return true
	}
	for _, s := range defaultExcludeFileSuffixes {
		if strings.HasSuffix(lower, s) {
			return true
		}
	}
	return defaultExcludeFileNames[filepath.Base(rel)]
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last. Matching uses
// forward-slash doublestar semantics against both the path and its base name.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := filepath.ToSlash(relPath)
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	base := pathToMatch
	if i := strings.LastIndexByte(pathToMatch, '/'); i >= 0 {
		base = pathToMatch[i+1:]
	}
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, base); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
