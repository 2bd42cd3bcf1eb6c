package ui

import "errors"

// Pager errors.
var (
	// ErrCouldNotOpenFile indicates the file backing the pager could
	// not be read.
	ErrCouldNotOpenFile = errors.New("could not open file")

	// ErrLineDoesNotExist indicates a requested line is beyond the end
	// of the loaded file.
	ErrLineDoesNotExist = errors.New("line does not exist")

	// ErrNoFileLoaded indicates a pager operation that needs loaded
	// content was called on an empty pager.
	ErrNoFileLoaded = errors.New("no file loaded")
)
