package report

import (
	"fmt"
	"strings"

	"github.com/secretsweep/secretsweep/internal/types"
)

// Fail-on policies accepted by ShouldFail.
const (
	FailOnAny     = "any"
	FailOnKeyword = "keyword"
	FailOnEntropy = "entropy"
	FailOnNever   = "never"
)

// ParseFailOn validates a fail-on policy; the empty string means FailOnAny.
func ParseFailOn(s string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "":
		return FailOnAny, nil
	case FailOnAny, FailOnKeyword, FailOnEntropy, FailOnNever:
		return v, nil
	default:
		return "", fmt.Errorf("invalid --fail-on %q: want any|keyword|entropy|never", s)
	}
}

// ShouldFail reports whether findings trip the fail-on policy.
func ShouldFail(findings []types.Finding, failOn string) bool {
	switch failOn {
	case FailOnNever:
		return false
	case FailOnKeyword, FailOnEntropy:
		want := types.KindKeyword
		if failOn == FailOnEntropy {
			want = types.KindEntropy
		}
		for _, f := range findings {
			if f.Kind == want {
				return true
			}
		}
		return false
	default:
		return len(findings) > 0
	}
}
