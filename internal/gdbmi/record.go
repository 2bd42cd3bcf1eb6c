// Package gdbmi drives a gdb subprocess through its machine interface:
// it launches gdb, parses the record stream coming back, and serializes
// command execution against it.
package gdbmi

import (
	"strconv"
	"strings"
)

// StreamKind identifies the channel a stream record arrived on.
type StreamKind int

// Stream record kinds.
const (
	StreamConsole StreamKind = iota // "~" console output
	StreamTarget                    // "@" target output
	StreamLog                       // "&" gdb's own log
)

func (k StreamKind) String() string {
	switch k {
	case StreamConsole:
		return "console"
	case StreamTarget:
		return "target"
	case StreamLog:
		return "log"
	}
	return "unknown"
}

// AsyncKind identifies the class of an asynchronous record.
type AsyncKind int

// Async record kinds.
const (
	AsyncExec   AsyncKind = iota // "*" execution state changes
	AsyncStatus                  // "+" progress updates
	AsyncNotify                  // "=" notifications
)

func (k AsyncKind) String() string {
	switch k {
	case AsyncExec:
		return "exec"
	case AsyncStatus:
		return "status"
	case AsyncNotify:
		return "notify"
	}
	return "unknown"
}

// AsyncClass names what an async record announces. Beyond the two
// classes the session tracks, gdb emits many more; they pass through
// uninterpreted.
type AsyncClass string

// Async classes with tracked semantics.
const (
	ClassStopped AsyncClass = "stopped"
	ClassRunning AsyncClass = "running"
)

// ResultClass is the outcome class of a result record.
type ResultClass string

// Result classes.
const (
	ResultDone      ResultClass = "done"
	ResultRunning   ResultClass = "running"
	ResultConnected ResultClass = "connected"
	ResultError     ResultClass = "error"
	ResultExit      ResultClass = "exit"
)

// ValueKind discriminates the three value forms of the wire grammar.
type ValueKind int

// Value kinds.
const (
	ValueConst ValueKind = iota
	ValueTuple
	ValueList
)

// Value is one value from a record: a string constant, a tuple of named
// values, or a list. Lists of name=value pairs are represented as lists
// of single-entry tuples.
type Value struct {
	Kind  ValueKind
	Const string
	Tuple NamedValues
	List  []Value
}

func (v Value) String() string {
	switch v.Kind {
	case ValueConst:
		return strconv.Quote(v.Const)
	case ValueTuple:
		return v.Tuple.String()
	case ValueList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ",") + "]"
	}
	return ""
}

// NamedValue is one name=value pair.
type NamedValue struct {
	Name  string
	Value Value
}

// NamedValues holds the pairs of a record or tuple in wire order.
// Names are not necessarily unique; lookups return the first match.
type NamedValues []NamedValue

func (nv NamedValues) String() string {
	parts := make([]string, len(nv))
	for i, pair := range nv {
		parts[i] = pair.Name + "=" + pair.Value.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Lookup returns the first value recorded under name.
func (nv NamedValues) Lookup(name string) (Value, bool) {
	for _, pair := range nv {
		if pair.Name == name {
			return pair.Value, true
		}
	}
	return Value{}, false
}

// GetString returns the constant recorded under name. Missing fields
// and non-constant values are reported as errors naming the field.
func (nv NamedValues) GetString(name string) (string, error) {
	v, ok := nv.Lookup(name)
	if !ok {
		return "", &FieldError{Name: name, Err: ErrMissingField}
	}
	if v.Kind != ValueConst {
		return "", &FieldError{Name: name, Err: ErrBadFieldType, Detail: "not a constant"}
	}
	return v.Const, nil
}

// GetInt returns the constant recorded under name parsed as an integer.
func (nv NamedValues) GetInt(name string) (int, error) {
	s, err := nv.GetString(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &FieldError{Name: name, Err: ErrBadFieldType, Detail: "not an integer: " + s}
	}
	return n, nil
}

// GetTuple returns the tuple recorded under name.
func (nv NamedValues) GetTuple(name string) (NamedValues, error) {
	v, ok := nv.Lookup(name)
	if !ok {
		return nil, &FieldError{Name: name, Err: ErrMissingField}
	}
	if v.Kind != ValueTuple {
		return nil, &FieldError{Name: name, Err: ErrBadFieldType, Detail: "not a tuple"}
	}
	return v.Tuple, nil
}

// Record is one parsed line of gdb output. The concrete types are
// StreamRecord, AsyncRecord, ResultRecord, PromptRecord and
// MalformedRecord.
type Record interface {
	record()
}

// StreamRecord carries a fragment of textual output. Text is unescaped
// and keeps the newlines gdb sent.
type StreamRecord struct {
	Kind StreamKind
	Text string
}

// AsyncRecord reports a state change gdb announces on its own.
type AsyncRecord struct {
	Token   string
	Kind    AsyncKind
	Class   AsyncClass
	Results NamedValues
}

// ResultRecord answers one command.
type ResultRecord struct {
	Token   string
	Class   ResultClass
	Results NamedValues
}

func (r *ResultRecord) String() string {
	if len(r.Results) == 0 {
		return string(r.Class)
	}
	return string(r.Class) + " " + r.Results.String()
}

// PromptRecord is the "(gdb)" marker ending an output block.
type PromptRecord struct{}

// MalformedRecord wraps a line the parser could not understand, so one
// bad line never takes the stream down.
type MalformedRecord struct {
	Line string
	Err  error
}

func (*StreamRecord) record()    {}
func (*AsyncRecord) record()     {}
func (*ResultRecord) record()    {}
func (*PromptRecord) record()    {}
func (*MalformedRecord) record() {}
