package types

import (
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
)

// Kind names the detector family that produced a finding.
type Kind string

const (
	KindKeyword Kind = "Keyword"
	KindEntropy Kind = "Entropy"
)

// Finding describes one suspect line or token at a path and 1-based line.
// For keyword hits Content is the trimmed line; for entropy hits it is the
// offending token.
type Finding struct {
	Kind    Kind   `json:"kind"`
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Content string `json:"content"`
}

// String renders the finding in the one-line log format:
// "[Kind][path:line] Suspect: content".
func (f Finding) String() string {
	return fmt.Sprintf("[%s][%s:%d] Suspect: %s", f.Kind, f.Path, f.Line, f.Content)
}

// Fingerprint returns a stable 16-char hex identifier for the finding.
func (f Finding) Fingerprint() string {
	d := xxhash.New()
	_, _ = d.WriteString(string(f.Kind))
	_, _ = d.WriteString("|")
	_, _ = d.WriteString(f.Path)
	_, _ = d.WriteString("|")
	_, _ = d.WriteString(fmt.Sprint(f.Line))
	_, _ = d.WriteString("|")
	_, _ = d.WriteString(f.Content)
	return fmt.Sprintf("%016x", d.Sum64())
}
