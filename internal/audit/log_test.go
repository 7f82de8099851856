package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secretsweep/secretsweep/internal/types"
)

func TestNewAuditLog_PrefersGitDir(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, "."+FileName), NewAuditLog(dir).Path())

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	assert.Equal(t, filepath.Join(dir, ".git", FileName), NewAuditLog(dir).Path())
}

func TestLogScan_RoundTripNewestFirst(t *testing.T) {
	dir := t.TempDir()
	log := NewAuditLog(dir)

	findings := []types.Finding{
		{Kind: types.KindKeyword, Path: "a.env", Line: 1, Content: "PASSWORD=hunter2"},
		{Kind: types.KindEntropy, Path: "a.env", Line: 2, Content: "aB3$kL9!qZ7&mN2@pR5^tY8"},
	}
	first := CreateScanRecord(dir, findings, 3, 1, 2*time.Second)
	second := CreateScanRecord(dir, nil, 3, 0, time.Second)
	second.ScanID = "scan_second"
	require.NoError(t, log.LogScan(first))
	require.NoError(t, log.LogScan(second))

	records, err := log.LoadHistory()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "scan_second", records[0].ScanID)
	assert.Equal(t, 2, records[1].TotalFindings)
	assert.Equal(t, map[string]int{"Keyword": 1, "Entropy": 1}, records[1].KindCounts)
	assert.Equal(t, 1, records[1].FileErrors)
	require.Len(t, records[1].Locations, 2)
	assert.Equal(t, findings[1].Fingerprint(), records[1].Locations[1].Fingerprint)

	raw, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hunter2")
}

func TestLoadHistory_Missing(t *testing.T) {
	_, err := NewAuditLog(t.TempDir()).LoadHistory()
	assert.Error(t, err)
}
