package report

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/secretsweep/secretsweep/internal/types"
)

// ToolVersion is reported as the SARIF driver version.
var ToolVersion = "dev"

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           int               `json:"ruleIndex"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLoc        `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int          `json:"startLine"`
	Snippet   sarifMessage `json:"snippet"`
}

var sarifRules = []sarifRule{
	{ID: "keyword", Name: "CredentialKeyword", ShortDescription: sarifMessage{Text: "Line mentions a credential keyword (API_KEY, SECRET, PASSWORD, TOKEN)"}},
	{ID: "entropy", Name: "HighEntropyToken", ShortDescription: sarifMessage{Text: "Token has high Shannon entropy"}},
}

func ruleIndex(k types.Kind) int {
	if k == types.KindEntropy {
		return 1
	}
	return 0
}

// WriteSARIF writes findings as SARIF 2.1.0 to the provided writer.
func WriteSARIF(w io.Writer, findings []types.Finding) error {
	return WriteSARIFWithStats(w, findings, nil)
}

// WriteSARIFWithStats writes SARIF and attaches stats as run properties
// under "scanStats".
func WriteSARIFWithStats(w io.Writer, findings []types.Finding, stats map[string]int) error {
	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: "secretsweep", Version: ToolVersion, Rules: sarifRules}},
		Results: []sarifResult{},
	}
	for _, f := range findings {
		idx := ruleIndex(f.Kind)
		run.Results = append(run.Results, sarifResult{
			RuleID:    sarifRules[idx].ID,
			RuleIndex: idx,
			Level:     "warning",
			Message:   sarifMessage{Text: sarifRules[idx].ShortDescription.Text},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: toURI(f.Path)},
					Region:           sarifRegion{StartLine: f.Line, Snippet: sarifMessage{Text: f.Content}},
				},
			}},
			PartialFingerprints: map[string]string{"secretsweep/v1": f.Fingerprint()},
		})
	}
	if len(stats) > 0 {
		run.Properties = map[string]any{"scanStats": stats}
	}
	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func toURI(p string) string {
	return filepath.ToSlash(p)
}
