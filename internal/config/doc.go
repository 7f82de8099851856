// Package config loads secretsweep configuration from local and global YAML
// files and defines the named detection profiles. It is internal; CLI code
// maps flags and files into engine configuration.
package config
