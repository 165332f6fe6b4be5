package project

import "errors"

// Standard errors returned by the project package.
var (
	// ErrNoRoot indicates no project marker was found walking upward.
	ErrNoRoot = errors.New("no project root found")

	// ErrNotDirectory indicates the path is not a directory.
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrStagingClosed indicates the staging area has been closed.
	ErrStagingClosed = errors.New("staging area closed")
)
