package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/secretsweep/secretsweep/internal/ignore"
)

// Target is a file selected for scanning. Path is relative to the scan root
// and is what findings report; Abs is used to open the file.
type Target struct {
	Path string
	Abs  string
	Size int64
}

// checkRoot fails with a *TraversalError unless root is an existing directory.
func checkRoot(root string) error {
	st, err := os.Stat(root)
	if err != nil {
		return &TraversalError{Root: root, Err: err}
	}
	if !st.IsDir() {
		return &TraversalError{Root: root, Err: fmt.Errorf("not a directory")}
	}
	return nil
}

// loadIgnore builds the path matcher for cfg: the configured ignore file, if
// any, plus the tree's .gitignore files when enabled. A named ignore file
// that does not exist matches nothing.
func loadIgnore(cfg Config) (ignore.Matcher, error) {
	var ign ignore.Matcher
	if cfg.IgnoreFile != "" {
		m, err := ignore.Load(cfg.IgnoreFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return ign, fmt.Errorf("load ignore file: %w", err)
		}
		ign = m
	}
	if !cfg.RespectGitignore {
		return ign, nil
	}
	m, err := ign.WithGitignore(cfg.Root)
	if err != nil {
		return ign, fmt.Errorf("load .gitignore patterns: %w", err)
	}
	return m, nil
}

// Walk traverses the tree in lexical order and invokes handle for each
// eligible file. Entries that cannot be enumerated or are not regular files
// are passed with a non-nil error instead. Directory symlinks are not
// followed; file symlinks are resolved and scanned like regular files.
// A non-nil error from handle, or cancellation of ctx, stops the walk.
func Walk(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(t Target, err error) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if err != nil {
			if p == cfg.Root {
				return &TraversalError{Root: cfg.Root, Err: err}
			}
			return handle(Target{Path: rel, Abs: p}, err)
		}
		if d.IsDir() {
			if p == cfg.Root {
				return nil
			}
			if cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			if ign.MatchDir(rel) || !allowedDirByGlobs(rel, cfg) {
				return filepath.SkipDir
			}
			return nil
		}
		if !allowedByGlobs(rel, cfg) || ign.Match(rel) {
			return nil
		}
		if cfg.DefaultExcludes && isDefaultFileExcluded(rel) {
			return nil
		}
		info, err := os.Stat(p)
		if err != nil {
			return handle(Target{Path: rel, Abs: p}, err)
		}
		if !info.Mode().IsRegular() {
			if info.IsDir() {
				// symlinked directory
				return nil
			}
			return handle(Target{Path: rel, Abs: p}, errNotRegular)
		}
		if cfg.MaxBytes > 0 && info.Size() > cfg.MaxBytes {
			return nil
		}
		return handle(Target{Path: rel, Abs: p, Size: info.Size()}, nil)
	})
}

// allowedDirByGlobs prunes directories matched by an exclude glob.
func allowedDirByGlobs(rel string, cfg Config) bool {
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	return len(excludes) == 0 || !matchAnyGlob(filepath.ToSlash(rel), excludes)
}

// CountTargets returns the number of files a scan of cfg would open. It
// mirrors the selection logic of Scan without reading file contents.
func CountTargets(cfg Config) (int, error) {
	if err := checkRoot(cfg.Root); err != nil {
		return 0, err
	}
	ign, err := loadIgnore(cfg)
	if err != nil {
		return 0, err
	}
	n := 0
	err = Walk(context.Background(), cfg, ign, func(_ Target, err error) error {
		if err == nil {
			n++
		}
		return nil
	})
	return n, err
}
