package detectors

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// DefaultKeywordWords are the literal words of the built-in keyword set.
var DefaultKeywordWords = []string{"API_KEY", "SECRET", "PASSWORD", "TOKEN"}

// KeywordSet is an ordered set of case-insensitive patterns. A line matches
// when any pattern matches; evaluation stops at the first hit.
type KeywordSet struct {
	patterns []*regexp.Regexp
}

var defaultKeywords = NewKeywordSet(DefaultKeywordWords...)

// DefaultKeywords returns the built-in set: API_KEY, SECRET, PASSWORD and
// TOKEN as whole words.
func DefaultKeywords() *KeywordSet { return defaultKeywords }

// Word characters are Unicode letters, digits and '_'. RE2's \b only knows
// ASCII, so boundaries are spelled out with these classes.
const (
	wordClass    = `[\p{L}\p{N}_]`
	nonWordClass = `[^\p{L}\p{N}_]`
)

// NewKeywordSet builds a set that matches each word literally, case-insensitive,
// between word boundaries.
func NewKeywordSet(words ...string) *KeywordSet {
	ks := &KeywordSet{patterns: make([]*regexp.Regexp, 0, len(words))}
	for _, w := range words {
		ks.patterns = append(ks.patterns, regexp.MustCompile(`(?i)`+wordPattern(w)))
	}
	return ks
}

// wordPattern wraps the quoted word in boundary guards. An edge that is a
// word character needs a non-word neighbour (or the line edge); an edge that
// is not needs a word character next to it.
func wordPattern(w string) string {
	if w == "" {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(w)
	last, _ := utf8.DecodeLastRuneInString(w)
	left, right := wordClass, wordClass
	if isWordRune(first) {
		left = `(?:^|` + nonWordClass + `)`
	}
	if isWordRune(last) {
		right = `(?:` + nonWordClass + `|$)`
	}
	return left + regexp.QuoteMeta(w) + right
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// CompileKeywordSet builds a set from raw regular expressions. Patterns are
// compiled case-insensitive.
func CompileKeywordSet(exprs ...string) (*KeywordSet, error) {
	ks := &KeywordSet{patterns: make([]*regexp.Regexp, 0, len(exprs))}
	for _, e := range exprs {
		re, err := regexp.Compile(`(?i)` + e)
		if err != nil {
			return nil, fmt.Errorf("keyword pattern %q: %w", e, err)
		}
		ks.patterns = append(ks.patterns, re)
	}
	return ks, nil
}

// Match reports whether any pattern matches line.
func (ks *KeywordSet) Match(line string) bool {
	return ks.MatchIndex(line) >= 0
}

// MatchIndex returns the index of the first matching pattern, or -1.
func (ks *KeywordSet) MatchIndex(line string) int {
	if ks == nil {
		return -1
	}
	for i, re := range ks.patterns {
		if re.MatchString(line) {
			return i
		}
	}
	return -1
}

// Patterns returns the source of each pattern in order.
func (ks *KeywordSet) Patterns() []string {
	if ks == nil {
		return nil
	}
	out := make([]string, len(ks.patterns))
	for i, re := range ks.patterns {
		out[i] = re.String()
	}
	return out
}

// Len returns the number of patterns.
func (ks *KeywordSet) Len() int {
	if ks == nil {
		return 0
	}
	return len(ks.patterns)
}
