package engine

import (
	"errors"
	"fmt"
)

// ErrTraversal is matched by errors.Is for every *TraversalError.
var ErrTraversal = errors.New("traversal error")

// TraversalError reports that the scan root is missing or not a directory.
// It is returned before any file is read.
type TraversalError struct {
	Root string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("cannot traverse %s: %v", e.Root, e.Err)
}

func (e *TraversalError) Unwrap() error { return e.Err }

func (e *TraversalError) Is(target error) bool { return target == ErrTraversal }

// FileError records a file that could not be opened, read or enumerated.
// It never aborts a scan.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e FileError) Unwrap() error { return e.Err }

var errNotRegular = errors.New("not a regular file")
