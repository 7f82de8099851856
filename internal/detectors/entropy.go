package detectors

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Entropy returns the Shannon entropy of s in bits per character. Characters
// are runes; the empty string scores 0.
func Entropy(s string) float64 {
	if s == "" {
		return 0
	}
	count := map[rune]int{}
	n := 0
	for _, r := range s {
		count[r]++
		n++
	}
	H := 0.0
	total := float64(n)
	for _, c := range count {
		p := float64(c) / total
		H += -p * math.Log2(p)
	}
	return H
}

// EntropyWindow selects tokens for entropy scoring. Tokens whose rune length
// lies in [MinLength, MaxLength] and whose entropy is strictly greater than
// Threshold are reported.
type EntropyWindow struct {
	Threshold float64
	MinLength int
	MaxLength int
}

// Suspects returns the whitespace-delimited tokens of line that pass the
// window, in line order. Repeated tokens are returned once per occurrence.
func (w EntropyWindow) Suspects(line string) []string {
	var out []string
	for _, tok := range strings.Fields(line) {
		n := utf8.RuneCountInString(tok)
		if n < w.MinLength || n > w.MaxLength {
			continue
		}
		if Entropy(tok) > w.Threshold {
			out = append(out, tok)
		}
	}
	return out
}
