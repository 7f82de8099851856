// Package ignore decides which paths are left out of a scan. It reads
// .secretsweepignore pattern files and, optionally, the .gitignore files of
// a working tree. Ignoring a path means it is never opened; it does not
// suppress findings in files that are scanned.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// FileName is the conventional ignore file name. Scans read it only when
// told to.
const FileName = ".secretsweepignore"

// Matcher matches slash- or OS-separated paths relative to the scan root.
// The zero value matches nothing.
type Matcher struct {
	patterns []pattern
	git      gitignore.Matcher
}

type pattern struct {
	glob     string
	dirOnly  bool
	anchored bool
}

// Load reads patterns from path. A missing file yields an empty matcher and
// the open error, so callers may ignore the error.
func Load(path string) (Matcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return Matcher{}, err
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Matcher{}, err
	}
	return Parse(lines), nil
}

// Parse builds a matcher from pattern lines. Blank lines and lines starting
// with '#' are skipped. A trailing '/' restricts a pattern to directories and
// their contents; a leading '/' anchors it at the root.
func Parse(lines []string) Matcher {
	var m Matcher
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		p := pattern{}
		if strings.HasPrefix(l, "/") {
			p.anchored = true
			l = strings.TrimPrefix(l, "/")
		}
		if strings.HasSuffix(l, "/") {
			p.dirOnly = true
			l = strings.TrimSuffix(l, "/")
		}
		if l == "" || !doublestar.ValidatePattern(l) {
			continue
		}
		if strings.Contains(l, "/") {
			p.anchored = true
		}
		p.glob = l
		m.patterns = append(m.patterns, p)
	}
	return m
}

// WithGitignore returns a copy of m that also honours every .gitignore file
// below root. The .git directory itself is not read.
func (m Matcher) WithGitignore(root string) (Matcher, error) {
	ps, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		return m, err
	}
	m.git = gitignore.NewMatcher(ps)
	return m, nil
}

// Match reports whether the file at rel is ignored.
func (m Matcher) Match(rel string) bool {
	return m.match(rel, false)
}

// MatchDir reports whether the directory at rel, and so everything below
// it, is ignored.
func (m Matcher) MatchDir(rel string) bool {
	return m.match(rel, true)
}

func (m Matcher) match(rel string, isDir bool) bool {
	rel = filepath.ToSlash(rel)
	if rel == "" || rel == "." {
		return false
	}
	parts := strings.Split(rel, "/")
	if m.git != nil && m.git.Match(parts, isDir) {
		return true
	}
	for _, p := range m.patterns {
		if p.matches(rel, parts, isDir) {
			return true
		}
	}
	return false
}

func (p pattern) matches(rel string, parts []string, isDir bool) bool {
	if p.anchored {
		// the path itself or any of its parent directories
		for i := 1; i <= len(parts); i++ {
			prefix := strings.Join(parts[:i], "/")
			last := i == len(parts)
			if p.dirOnly && last && !isDir {
				continue
			}
			if ok, _ := doublestar.Match(p.glob, prefix); ok {
				return true
			}
		}
		return false
	}
	for i, name := range parts {
		last := i == len(parts)-1
		if p.dirOnly && last && !isDir {
			continue
		}
		if ok, _ := doublestar.Match(p.glob, name); ok {
			return true
		}
	}
	return false
}
