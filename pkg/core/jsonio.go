package core

import (
	"encoding/json"
	"fmt"
	"io"
)

// MarshalFindings writes findings as an indented JSON array. No findings
// encode as [] rather than null.
func MarshalFindings(w io.Writer, findings []Finding) error {
	if findings == nil {
		findings = []Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// UnmarshalFindings decodes a JSON array written by MarshalFindings. Entries
// with an unknown kind or a line before 1 are rejected.
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	var fs []Finding
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, fmt.Errorf("decode findings: %w", err)
	}
	for i, f := range fs {
		if f.Kind != KindKeyword && f.Kind != KindEntropy {
			return nil, fmt.Errorf("finding %d: unknown kind %q", i, f.Kind)
		}
		if f.Line < 1 {
			return nil, fmt.Errorf("finding %d: invalid line %d", i, f.Line)
		}
	}
	return fs, nil
}
