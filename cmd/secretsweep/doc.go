// Package secretsweep provides the command-line interface for the secretsweep
// tool. It configures subcommands (scan, entropy, config, ci, history),
// parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/secretsweep/secretsweep/cmd/secretsweep"
//	func main() { secretsweep.Execute() }
package secretsweep
