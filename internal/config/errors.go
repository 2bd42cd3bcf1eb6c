package config

import "fmt"

// ParseError reports a configuration file that could not be parsed.
type ParseError struct {
	// Path is the file that failed to parse.
	Path string
	// Line and Column locate the error when the decoder reports them.
	Line   int
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying decoder error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
