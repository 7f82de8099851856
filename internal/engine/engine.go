package engine

import (
	"context"
	"errors"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/secretsweep/secretsweep/internal/detectors"
	"github.com/secretsweep/secretsweep/internal/types"
)

// Config controls one scan. The detection fields are used exactly as given;
// defaults belong to the caller.
type Config struct {
	Root string

	EnableKeyword    bool
	EnableEntropy    bool
	EntropyThreshold float64
	MinTokenLength   int
	MaxTokenLength   int
	// Keywords overrides the built-in keyword set when non-nil.
	Keywords *detectors.KeywordSet

	// Path scoping
	IncludeGlobs     string
	ExcludeGlobs     string
	MaxBytes         int64 // 0 = no limit
	DefaultExcludes  bool
	RespectGitignore bool
	// IgnoreFile names a pattern file of paths to leave out. Empty means
	// none; nothing inside the tree is consulted unless named here.
	IgnoreFile string

	Threads int

	// Observers, called from a single goroutine at a time.
	Progress    func()
	OnFileError func(FileError)
}

// Result contains findings and basic scan statistics.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	FileErrors   []FileError
	Duration     time.Duration
}

// Scan runs a scan and returns only findings. File errors are dropped; use
// ScanWithStats to inspect them.
func Scan(ctx context.Context, cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(ctx, cfg)
	if err != nil {
		return res.Findings, err
	}
	return res.Findings, nil
}

// ScanWithStats runs a scan and returns findings along with timing, counts
// and the files that could not be read.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	var out []types.Finding
	res, err := ScanFunc(ctx, cfg, func(f types.Finding) { out = append(out, f) })
	res.Findings = out
	return res, err
}

// ScanFunc runs a scan and passes each finding to emit in traversal order,
// then line order, with a line's keyword finding ahead of its entropy
// findings. Files are scanned concurrently but emit is never called
// concurrently. On cancellation the findings of every file completed so far
// are emitted before ctx.Err() is returned.
func ScanFunc(ctx context.Context, cfg Config, emit func(types.Finding)) (Result, error) {
	var result Result
	if ctx == nil {
		ctx = context.Background()
	}
	if err := checkRoot(cfg.Root); err != nil {
		return result, err
	}
	ign, err := loadIgnore(cfg)
	if err != nil {
		return result, err
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	started := time.Now()
	ls := newLineScanner(cfg)
	col := newCollector(cfg, emit, &result)

	type job struct {
		slot int
		t    Target
	}
	jobs := make(chan job, threads*4)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		return Walk(gctx, cfg, ign, func(t Target, err error) error {
			slot := col.reserve(t.Path)
			if err != nil {
				col.complete(slot, nil, err)
				return nil
			}
			select {
			case jobs <- job{slot: slot, t: t}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			for j := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				fs, err := ls.scanFile(j.t)
				col.complete(j.slot, fs, err)
			}
			return nil
		})
	}

	werr := g.Wait()
	col.drain()
	result.Duration = time.Since(started)
	if werr != nil {
		var te *TraversalError
		if errors.As(werr, &te) {
			return result, te
		}
		if cerr := ctx.Err(); cerr != nil {
			return result, cerr
		}
		return result, werr
	}
	return result, nil
}

// lineScanner applies both detectors to the lines of one file.
type lineScanner struct {
	keywords *detectors.KeywordSet
	window   detectors.EntropyWindow
	keyword  bool
	entropy  bool
}

func newLineScanner(cfg Config) lineScanner {
	ks := cfg.Keywords
	if ks == nil {
		ks = detectors.DefaultKeywords()
	}
	return lineScanner{
		keywords: ks,
		window: detectors.EntropyWindow{
			Threshold: cfg.EntropyThreshold,
			MinLength: cfg.MinTokenLength,
			MaxLength: cfg.MaxTokenLength,
		},
		keyword: cfg.EnableKeyword,
		entropy: cfg.EnableEntropy,
	}
}

func (s lineScanner) scanFile(t Target) ([]types.Finding, error) {
	f, err := os.Open(t.Abs)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []types.Finding
	err = eachLine(f, func(n int, line string) {
		out = s.scanLine(t.Path, n, line, out)
	})
	return out, err
}

func (s lineScanner) scanLine(path string, n int, line string, out []types.Finding) []types.Finding {
	if s.keyword && s.keywords.Match(line) {
		out = append(out, types.Finding{Kind: types.KindKeyword, Path: path, Line: n, Content: strings.TrimSpace(line)})
	}
	if s.entropy {
		for _, tok := range s.window.Suspects(line) {
			out = append(out, types.Finding{Kind: types.KindEntropy, Path: path, Line: n, Content: tok})
		}
	}
	return out
}

// collector merges per-file results back into traversal order. Slots are
// reserved by the walker and completed by workers; completed slots are
// flushed to emit as soon as every earlier slot is done.
type collector struct {
	mu    sync.Mutex
	cfg   Config
	emit  func(types.Finding)
	res   *Result
	slots []fileResult
	next  int
}

type fileResult struct {
	path     string
	findings []types.Finding
	err      error
	done     bool
}

func newCollector(cfg Config, emit func(types.Finding), res *Result) *collector {
	if emit == nil {
		emit = func(types.Finding) {}
	}
	return &collector{cfg: cfg, emit: emit, res: res}
}

func (c *collector) reserve(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots = append(c.slots, fileResult{path: path})
	return len(c.slots) - 1
}

func (c *collector) complete(slot int, fs []types.Finding, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[slot].findings = fs
	c.slots[slot].err = err
	c.slots[slot].done = true
	for c.next < len(c.slots) && c.slots[c.next].done {
		c.flush(c.next)
		c.next++
	}
}

// drain flushes every completed slot that is still pending, skipping files
// that never finished because the scan was cancelled.
func (c *collector) drain() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ; c.next < len(c.slots); c.next++ {
		if c.slots[c.next].done {
			c.flush(c.next)
		}
	}
}

func (c *collector) flush(i int) {
	r := &c.slots[i]
	for _, f := range r.findings {
		c.emit(f)
	}
	if r.err != nil {
		fe := FileError{Path: r.path, Err: r.err}
		c.res.FileErrors = append(c.res.FileErrors, fe)
		if c.cfg.OnFileError != nil {
			c.cfg.OnFileError(fe)
		}
	}
	if r.err == nil {
		c.res.FilesScanned++
	}
	if c.cfg.Progress != nil {
		c.cfg.Progress()
	}
	r.findings = nil
}
