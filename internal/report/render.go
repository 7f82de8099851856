package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/secretsweep/secretsweep/internal/types"
)

// PrintOptions tunes the human-readable renderers.
type PrintOptions struct {
	NoColor      bool
	Highlight    bool
	Duration     time.Duration
	FilesScanned int
	FileErrors   int
}

var (
	keywordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	entropyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// PrintText writes one aligned line per finding followed by a summary footer.
// Findings keep the order they were produced in.
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No secrets found ✅")
	} else {
		maxLoc := 0
		for _, f := range findings {
			if l := len(location(f)); l > maxLoc {
				maxLoc = l
			}
		}
		fmt.Fprintf(w, "Findings: %d\n", len(findings))
		for _, f := range findings {
			kind := fmt.Sprintf("%-7s", f.Kind)
			loc := fmt.Sprintf("%-*s", maxLoc, location(f))
			content := f.Content
			if opts.Highlight && f.Kind == types.KindKeyword {
				content = highlight(f.Path, content, opts.NoColor)
			}
			if !opts.NoColor {
				kind = kindStyle(f.Kind).Render(kind)
				loc = pathStyle.Render(loc)
			}
			fmt.Fprintf(w, "%s %s  %s\n", kind, loc, content)
		}
	}
	printFooter(w, findings, opts)
}

// PrintTable writes findings as a bordered table followed by a summary footer.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No secrets found ✅")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("Kind", "File", "Line", "Content")
		for _, f := range findings {
			kind := string(f.Kind)
			if !opts.NoColor {
				kind = kindStyle(f.Kind).Render(kind)
			}
			_ = table.Append([]string{kind, f.Path, strconv.Itoa(f.Line), f.Content})
		}
		_ = table.Render()
	}
	printFooter(w, findings, opts)
}

// Counts returns the number of keyword and entropy findings.
func Counts(findings []types.Finding) (keyword, entropy int) {
	for _, f := range findings {
		switch f.Kind {
		case types.KindKeyword:
			keyword++
		case types.KindEntropy:
			entropy++
		}
	}
	return keyword, entropy
}

func printFooter(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 && opts.FileErrors <= 0 {
		return
	}
	kw, en := Counts(findings)
	lines := []string{fmt.Sprintf("Findings: %d (keyword: %d, entropy: %d)", len(findings), kw, en)}
	if opts.Duration > 0 {
		lines = append(lines, fmt.Sprintf("Scan duration: %.2fs", opts.Duration.Seconds()))
	}
	if opts.FilesScanned > 0 {
		lines = append(lines, fmt.Sprintf("Files scanned: %d", opts.FilesScanned))
	}
	if opts.FileErrors > 0 {
		lines = append(lines, fmt.Sprintf("Unreadable files: %d", opts.FileErrors))
	}
	fmt.Fprintln(w)
	for _, l := range lines {
		if !opts.NoColor {
			l = dimStyle.Render(l)
		}
		fmt.Fprintln(w, l)
	}
}

func location(f types.Finding) string {
	return f.Path + ":" + strconv.Itoa(f.Line)
}

func kindStyle(k types.Kind) lipgloss.Style {
	if k == types.KindEntropy {
		return entropyStyle
	}
	return keywordStyle
}
