// Package detectors implements the two line-level detectors used by the
// scanner: a case-insensitive whole-word keyword matcher and a Shannon
// entropy scorer for whitespace-delimited tokens.
package detectors
