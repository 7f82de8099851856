// Package audit keeps a local append-only JSONL history of scans. Records
// hold counts and finding locations, never finding content.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/secretsweep/secretsweep/internal/types"
)

// FileName is the log name used inside .git or the scan root.
const FileName = "secretsweep_audit.jsonl"

type ScanRecord struct {
	Timestamp     time.Time         `json:"timestamp"`
	ScanID        string            `json:"scan_id"`
	Root          string            `json:"root"`
	TotalFindings int               `json:"total_findings"`
	KindCounts    map[string]int    `json:"kind_counts"`
	FilesScanned  int               `json:"files_scanned"`
	FileErrors    int               `json:"file_errors"`
	Duration      string            `json:"duration"`
	Locations     []FindingLocation `json:"locations,omitempty"`
}

// FindingLocation identifies a finding without its content.
type FindingLocation struct {
	Kind        string `json:"kind"`
	Path        string `json:"path"`
	Line        int    `json:"line"`
	Fingerprint string `json:"fingerprint"`
}

type AuditLog struct {
	logPath string
}

// NewAuditLog places the log under root/.git when it exists, otherwise in
// root as a dotfile.
func NewAuditLog(root string) *AuditLog {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, "."+FileName)
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, FileName)
	}
	return &AuditLog{logPath: logPath}
}

// Path returns the log file location.
func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns all records, newest first. Reading stops at the
// first record that does not decode.
func (a *AuditLog) LoadHistory() ([]ScanRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record ScanRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LogScan appends record to the log.
func (a *AuditLog) LogScan(record ScanRecord) error {
	if record.ScanID == "" {
		record.ScanID = fmt.Sprintf("scan_%d", record.Timestamp.UnixNano())
	}

	// owner-only: the log lists where secrets were found
	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// CreateScanRecord summarises one scan.
func CreateScanRecord(root string, findings []types.Finding, filesScanned, fileErrors int, duration time.Duration) ScanRecord {
	counts := map[string]int{}
	locs := make([]FindingLocation, 0, len(findings))
	for _, f := range findings {
		counts[string(f.Kind)]++
		locs = append(locs, FindingLocation{
			Kind:        string(f.Kind),
			Path:        f.Path,
			Line:        f.Line,
			Fingerprint: f.Fingerprint(),
		})
	}
	return ScanRecord{
		Timestamp:     time.Now(),
		Root:          root,
		TotalFindings: len(findings),
		KindCounts:    counts,
		FilesScanned:  filesScanned,
		FileErrors:    fileErrors,
		Duration:      duration.String(),
		Locations:     locs,
	}
}
