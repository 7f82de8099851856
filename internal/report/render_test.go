package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/secretsweep/secretsweep/internal/types"
)

var sample = []types.Finding{
	{Kind: types.KindKeyword, Path: "app/.env", Line: 1, Content: "PASSWORD=hunter2"},
	{Kind: types.KindEntropy, Path: "app/.env", Line: 2, Content: "aB3$kL9!qZ7&mN2@pR5^tY8"},
}

func TestPrintText_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{NoColor: true, Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	assert.Contains(t, out, "No secrets found")
	assert.Contains(t, out, "Files scanned: 10")
	assert.Contains(t, out, "Scan duration: 1.20s")
}

func TestPrintText_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sample, PrintOptions{NoColor: true, FileErrors: 2})
	out := buf.String()
	assert.Contains(t, out, "Findings: 2\n")
	assert.Contains(t, out, "Keyword app/.env:1  PASSWORD=hunter2")
	assert.Contains(t, out, "Entropy app/.env:2  aB3$kL9!qZ7&mN2@pR5^tY8")
	assert.Contains(t, out, "Findings: 2 (keyword: 1, entropy: 1)")
	assert.Contains(t, out, "Unreadable files: 2")
	// order is preserved
	assert.Less(t, strings.Index(out, "PASSWORD"), strings.Index(out, "aB3$"))
}

func TestPrintText_HighlightWithoutColorIsPlain(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sample[:1], PrintOptions{NoColor: true, Highlight: true})
	assert.Contains(t, buf.String(), "PASSWORD=hunter2")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestHighlight_KnownLexer(t *testing.T) {
	out := highlight("main.go", `const password = "x"`, false)
	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "password")
	assert.Equal(t, "plain", highlight("notes.unknownext", "plain", false))
}

func TestPrintTable_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sample, PrintOptions{NoColor: true})
	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "KIND")
	assert.Contains(t, out, "Keyword")
	assert.Contains(t, out, "PASSWORD=hunter2")
	assert.Contains(t, out, "│")
}

func TestPrintTable_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, PrintOptions{NoColor: true, Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	assert.Contains(t, out, "No secrets found")
	assert.Contains(t, out, "Files scanned: 10")
}

func TestCounts(t *testing.T) {
	kw, en := Counts(append(sample, sample[1]))
	assert.Equal(t, 1, kw)
	assert.Equal(t, 2, en)
}
