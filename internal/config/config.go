package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape. Pointer fields
// distinguish "unset" from the zero value.
type FileConfig struct {
	Profile   *string  `yaml:"profile,omitempty"`
	Keyword   *bool    `yaml:"keyword,omitempty"`
	Entropy   *bool    `yaml:"entropy,omitempty"`
	Threshold *float64 `yaml:"threshold,omitempty"`
	MinLength *int     `yaml:"min_length,omitempty"`
	MaxLength *int     `yaml:"max_length,omitempty"`

	Include         *string `yaml:"include,omitempty"`
	Exclude         *string `yaml:"exclude,omitempty"`
	MaxBytes        *int64  `yaml:"max_bytes,omitempty"`
	Threads         *int    `yaml:"threads,omitempty"`
	DefaultExcludes *bool   `yaml:"default_excludes,omitempty"`
	Gitignore       *bool   `yaml:"gitignore,omitempty"`
	IgnoreFile      *string `yaml:"ignore_file,omitempty"`
	NoColor         *bool   `yaml:"no_color,omitempty"`
	FailOn          *string `yaml:"fail_on,omitempty"`
}

// LocalNames are the repo-local config file names, in search order.
var LocalNames = []string{".secretsweep.yml", ".secretsweep.yaml", "secretsweep.yml", "secretsweep.yaml"}

// LoadFile reads a YAML config file from the provided path. Errors name the
// file.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Profile != nil {
		if _, err := LookupProfile(*cfg.Profile); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root. When
// there is none the error matches fs.ErrNotExist.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, fmt.Errorf("no local config in %s: %w", root, fs.ErrNotExist)
}

// GlobalPath returns the global config location under XDG_CONFIG_HOME or
// ~/.config, or "" when neither is available.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "secretsweep", "config.yml")
}

// LoadGlobal loads the global config file. When there is none the error
// matches fs.ErrNotExist.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p := GlobalPath()
	if p == "" {
		return cfg, fmt.Errorf("no config dir: %w", fs.ErrNotExist)
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, fmt.Errorf("no global config at %s: %w", p, fs.ErrNotExist)
}

// Merge overlays local on global: every field set in local wins.
func Merge(local, global FileConfig) FileConfig {
	out := global
	if local.Profile != nil {
		out.Profile = local.Profile
	}
	if local.Keyword != nil {
		out.Keyword = local.Keyword
	}
	if local.Entropy != nil {
		out.Entropy = local.Entropy
	}
	if local.Threshold != nil {
		out.Threshold = local.Threshold
	}
	if local.MinLength != nil {
		out.MinLength = local.MinLength
	}
	if local.MaxLength != nil {
		out.MaxLength = local.MaxLength
	}
	if local.Include != nil {
		out.Include = local.Include
	}
	if local.Exclude != nil {
		out.Exclude = local.Exclude
	}
	if local.MaxBytes != nil {
		out.MaxBytes = local.MaxBytes
	}
	if local.Threads != nil {
		out.Threads = local.Threads
	}
	if local.DefaultExcludes != nil {
		out.DefaultExcludes = local.DefaultExcludes
	}
	if local.Gitignore != nil {
		out.Gitignore = local.Gitignore
	}
	if local.IgnoreFile != nil {
		out.IgnoreFile = local.IgnoreFile
	}
	if local.NoColor != nil {
		out.NoColor = local.NoColor
	}
	if local.FailOn != nil {
		out.FailOn = local.FailOn
	}
	return out
}

// Detection resolves the detection settings of fc: the named profile (or
// ProfileDefault) with every explicitly set field applied on top.
func (fc FileConfig) Detection() (Detection, error) {
	name := ProfileDefault
	if fc.Profile != nil && *fc.Profile != "" {
		name = *fc.Profile
	}
	d, err := LookupProfile(name)
	if err != nil {
		return d, err
	}
	if fc.Keyword != nil {
		d.Keyword = *fc.Keyword
	}
	if fc.Entropy != nil {
		d.Entropy = *fc.Entropy
	}
	if fc.Threshold != nil {
		d.Threshold = *fc.Threshold
	}
	if fc.MinLength != nil {
		d.MinLength = *fc.MinLength
	}
	if fc.MaxLength != nil {
		d.MaxLength = *fc.MaxLength
	}
	return d, nil
}
