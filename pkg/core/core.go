package core

import (
	"context"

	"github.com/secretsweep/secretsweep/internal/config"
	"github.com/secretsweep/secretsweep/internal/detectors"
	"github.com/secretsweep/secretsweep/internal/engine"
	"github.com/secretsweep/secretsweep/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Config     = engine.Config
	Result     = engine.Result
	Finding    = types.Finding
	Kind       = types.Kind
	FileError  = engine.FileError
	KeywordSet = detectors.KeywordSet
)

const (
	KindKeyword = types.KindKeyword
	KindEntropy = types.KindEntropy
)

// ErrTraversal matches the error returned when the scan root is missing or
// not a directory.
var ErrTraversal = engine.ErrTraversal

// Scan is the stable entrypoint for other programs.
func Scan(ctx context.Context, cfg Config) ([]Finding, error) {
	return engine.Scan(ctx, cfg)
}

// ScanWithStats runs a scan and also returns counts, duration and the files
// that could not be read.
func ScanWithStats(ctx context.Context, cfg Config) (Result, error) {
	return engine.ScanWithStats(ctx, cfg)
}

// ScanFunc streams findings to emit in scan order.
func ScanFunc(ctx context.Context, cfg Config, emit func(Finding)) (Result, error) {
	return engine.ScanFunc(ctx, cfg, emit)
}

// DefaultConfig returns a Config for root with the command-line detection
// defaults: both detectors on, threshold 4.5, tokens of 8 to 128 characters.
func DefaultConfig(root string) Config {
	d, _ := config.LookupProfile(config.ProfileDefault)
	return configFor(root, d)
}

// ClassicConfig returns a Config for root with threshold 4.4 over tokens of
// 8 to 40 characters.
func ClassicConfig(root string) Config {
	d, _ := config.LookupProfile(config.ProfileClassic)
	return configFor(root, d)
}

func configFor(root string, d config.Detection) Config {
	return Config{
		Root:             root,
		EnableKeyword:    d.Keyword,
		EnableEntropy:    d.Entropy,
		EntropyThreshold: d.Threshold,
		MinTokenLength:   d.MinLength,
		MaxTokenLength:   d.MaxLength,
	}
}

// Entropy returns the Shannon entropy of s in bits per character.
func Entropy(s string) float64 { return detectors.Entropy(s) }

// DefaultKeywords returns the built-in API_KEY/SECRET/PASSWORD/TOKEN set.
func DefaultKeywords() *KeywordSet { return detectors.DefaultKeywords() }

// NewKeywordSet builds a case-insensitive whole-word set from literal words.
func NewKeywordSet(words ...string) *KeywordSet { return detectors.NewKeywordSet(words...) }
