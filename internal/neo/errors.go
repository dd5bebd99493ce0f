package neo

import (
	"errors"
	"fmt"
)

// Sentinel causes carried inside a ParseError.
var (
	ErrMissingColumn    = errors.New("missing column")
	ErrMissingKey       = errors.New("missing key")
	ErrShortRow         = errors.New("row too short")
	ErrEmptyDesignation = errors.New("empty designation")
	ErrNullValue        = errors.New("unexpected null")
	ErrTrailingData     = errors.New("trailing data after document")
)

// ErrDuplicateDesignation is returned by NewDatabase when two catalog entries share a designation.
var ErrDuplicateDesignation = errors.New("duplicate designation")

// FileAccessError reports that a path could not be opened for reading or writing.
type FileAccessError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot open %s for %s: %v", e.Path, e.Op, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// ParseError reports a structural or type mismatch in a source file.
// Record is the 1-based data record, or 0 when the problem is in the
// header or top-level structure.
type ParseError struct {
	Path   string
	Record int
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "input"
	}
	if e.Record > 0 {
		loc = fmt.Sprintf("%s: record %d", loc, e.Record)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q: %v", loc, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LinkMismatchError reports a close approach whose designation matches no catalog entry.
type LinkMismatchError struct {
	Designation string
}

func (e *LinkMismatchError) Error() string {
	return fmt.Sprintf("close approach %q has no matching NEO", e.Designation)
}
