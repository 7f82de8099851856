package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend_CreatesAndIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, FileName)

	require.NoError(t, Append(p, "/.audit.jsonl"))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "/.audit.jsonl\n", string(b))

	require.NoError(t, Append(p, "/.audit.jsonl"))
	b, err = os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "/.audit.jsonl\n", string(b))

	m, err := Load(p)
	require.NoError(t, err)
	assert.True(t, m.Match(".audit.jsonl"))
}

func TestAppend_MissingTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(p, []byte("build/"), 0644))

	require.NoError(t, Append(p, "*.log"))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "build/\n*.log\n", string(b))
}
