package gdbmi

import (
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrBusy indicates the target is running or another command is
	// still outstanding.
	ErrBusy = errors.New("gdb is busy")

	// ErrQuit indicates the gdb session has ended.
	ErrQuit = errors.New("gdb session ended")
)

// Field access errors.
var (
	// ErrMissingField indicates a record lacks an expected field.
	ErrMissingField = errors.New("missing field")

	// ErrBadFieldType indicates a field holds an unexpected value form.
	ErrBadFieldType = errors.New("unexpected field type")
)

// FieldError reports a failed field access on record results,
// naming the field involved.
type FieldError struct {
	Name   string
	Detail string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%v: %q (%s)", e.Err, e.Name, e.Detail)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Name)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ParseError describes a line the record parser could not understand.
type ParseError struct {
	Line string
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record parse error at column %d: %s", e.Pos, e.Msg)
}
