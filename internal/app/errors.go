package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoDebuggee indicates no program to debug was given.
	ErrNoDebuggee = errors.New("no program to debug")

	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("starting %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
