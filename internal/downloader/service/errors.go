package service

import (
	"errors"
	"fmt"
)

// ErrMissingField is the cause of a ParseError for an absent or null field
var ErrMissingField = errors.New("missing required field")

// IOError is a file system failure while reading the input or writing output
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError is a malformed input file. Index is -1 when the document as a
// whole is invalid; Field is empty when the entry itself has the wrong shape.
type ParseError struct {
	Path  string
	Index int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	case e.Field == "":
		return fmt.Sprintf("parse %s: entry %d: %v", e.Path, e.Index, e.Err)
	default:
		return fmt.Sprintf("parse %s: entry %d: field %q: %v", e.Path, e.Index, e.Field, e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// NetworkError is an HTTP transport failure
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
