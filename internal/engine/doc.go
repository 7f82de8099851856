// Package engine contains the core scanning logic. It traverses a directory
// tree, decodes each file as text, runs the keyword matcher and the entropy
// scorer line by line, and returns findings in traversal order. This package
// is internal; external consumers should use the stable facade in pkg/core.
package engine
