// Package core provides a small, stable facade over the internal scanning
// engine for external integrations. It re-exports a narrow API surface so
// other tools can depend on a stable import path without reaching into
// internal packages.
//
// Example:
//
//	cfg := core.DefaultConfig(".")
//	findings, err := core.Scan(context.Background(), cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, findings)
package core
