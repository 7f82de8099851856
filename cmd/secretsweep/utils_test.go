package secretsweep

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secretsweep/secretsweep/internal/config"
)

func TestResolveDetection(t *testing.T) {
	classic := config.ProfileClassic
	yes := true
	th := 3.0
	maxLen := 64

	tests := []struct {
		name string
		fc   config.FileConfig
		o    detectionFlags
		want config.Detection
	}{
		{
			name: "defaults",
			want: config.Detection{Keyword: true, Entropy: true, Threshold: 4.5, MinLength: 8, MaxLength: 128},
		},
		{
			name: "file profile",
			fc:   config.FileConfig{Profile: &classic},
			want: config.Detection{Keyword: true, Entropy: true, Threshold: 4.4, MinLength: 8, MaxLength: 40},
		},
		{
			name: "file value over profile",
			fc:   config.FileConfig{Profile: &classic, MaxLength: &maxLen},
			want: config.Detection{Keyword: true, Entropy: true, Threshold: 4.4, MinLength: 8, MaxLength: 64},
		},
		{
			name: "cli profile drops file values",
			fc:   config.FileConfig{Threshold: &th},
			o:    detectionFlags{Profile: &classic},
			want: config.Detection{Keyword: true, Entropy: true, Threshold: 4.4, MinLength: 8, MaxLength: 40},
		},
		{
			name: "cli flags over file",
			fc:   config.FileConfig{Threshold: &th},
			o:    detectionFlags{NoKeyword: &yes, Threshold: floatPtr(4.0)},
			want: config.Detection{Keyword: false, Entropy: true, Threshold: 4.0, MinLength: 8, MaxLength: 128},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDetection(tt.fc, tt.o)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDetection_UnknownProfile(t *testing.T) {
	bad := "paranoid"
	_, err := resolveDetection(config.FileConfig{}, detectionFlags{Profile: &bad})
	assert.Error(t, err)
}

func TestPickHelpers(t *testing.T) {
	local, global := "l", "g"
	assert.Equal(t, "cli", pickString("cli", &local, &global))
	assert.Equal(t, "l", pickString("", &local, &global))
	assert.Equal(t, "g", pickString("", nil, &global))

	n := 4
	assert.Equal(t, 4, pickInt(0, &n, nil))
	assert.Equal(t, 2, pickInt(2, &n, nil))

	f := false
	assert.False(t, pickBool(false, &f, nil))
	assert.True(t, pickBool(true, &f, nil))
}

func TestCITemplate(t *testing.T) {
	for _, p := range []string{"gitlab", "bitbucket", "azure", "pre-commit"} {
		path, content, _, err := ciTemplate(p)
		require.NoError(t, err, p)
		assert.NotEmpty(t, path)
		assert.Contains(t, content, "secretsweep scan")
	}
	_, _, mode, _ := ciTemplate("pre-commit")
	assert.Equal(t, 0755, int(mode))

	_, _, _, err := ciTemplate("jenkins")
	assert.Error(t, err)
}

func TestNewFileConfig(t *testing.T) {
	cfgFailOn = "keyword"
	t.Cleanup(func() { cfgFailOn = "any" })

	fc, err := newFileConfig("Classic")
	require.NoError(t, err)
	require.NotNil(t, fc.Profile)
	assert.Equal(t, "classic", *fc.Profile)
	assert.Equal(t, 4.4, *fc.Threshold)
	assert.Equal(t, 40, *fc.MaxLength)
	assert.Equal(t, "keyword", *fc.FailOn)

	d, err := fc.Detection()
	require.NoError(t, err)
	assert.Equal(t, 4.4, d.Threshold)

	_, err = newFileConfig("nope")
	assert.Error(t, err)
}

func TestLoadOptionalConfig(t *testing.T) {
	fc, err := loadOptionalConfig(config.FileConfig{}, fmt.Errorf("none: %w", fs.ErrNotExist))
	require.NoError(t, err)
	assert.Nil(t, fc.Profile)

	_, err = loadOptionalConfig(config.FileConfig{}, errors.New("yaml: bad"))
	assert.ErrorContains(t, err, "yaml: bad")
}

func TestResolveIgnoreFile(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "repo")
	assert.Equal(t, "", resolveIgnoreFile(root, ""))
	assert.Equal(t, filepath.Join(root, ".secretsweepignore"), resolveIgnoreFile(root, ".secretsweepignore"))
	abs := filepath.Join(string(filepath.Separator), "etc", "sweep.ignore")
	assert.Equal(t, abs, resolveIgnoreFile(root, abs))
}

func TestWithinRoot(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "repo")
	rel, ok := withinRoot(root, filepath.Join(root, ".git", "log.jsonl"))
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(".git", "log.jsonl"), rel)

	_, ok = withinRoot(root, filepath.Join(string(filepath.Separator), "elsewhere", "log.jsonl"))
	assert.False(t, ok)
}

func TestCompletionShells(t *testing.T) {
	assert.Equal(t, []string{"bash", "fish", "powershell", "zsh"}, shellNames())
	for _, name := range shellNames() {
		var buf bytes.Buffer
		require.NoError(t, completionShells[name](&buf), name)
		assert.Contains(t, buf.String(), "secretsweep", name)
	}
}
