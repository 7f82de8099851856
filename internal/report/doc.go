// Package report renders scan findings as text, bordered tables, SARIF and
// structured log lines, and decides whether a result should fail a build.
package report
