// =============================================================================
// Catalogue Generator - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser  (produce a Catalogue)
//   - codegen                 (renders a Catalogue)
//   - generator               (orchestrates and reports errors)
//   - catalogue / validation  (read a Catalogue)
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
)

// =============================================================================
// CATALOGUE TYPES
// =============================================================================

// Row is one catalogue entry, truncated to the configured column count.
type Row struct {
	// Fields holds the retained fields verbatim as they appeared in the input.
	// They are opaque text tokens and are never converted to numbers here.
	Fields []string

	// Line is the 1-based line (CSV) or row (XLSX) the entry was read from.
	Line int
}

// Catalogue is the ordered sequence of rows read from one input file,
// excluding header rows.
type Catalogue struct {
	// Rows preserves input order. Duplicates are kept.
	Rows []Row

	// Columns is the number of fields retained per row.
	Columns int

	// SourceFile is the path the catalogue was read from.
	SourceFile string
}

// Len returns the number of rows.
func (c *Catalogue) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Rows)
}

// =============================================================================
// ERROR TAXONOMY
// =============================================================================

// ErrorKind classifies a fatal generator failure.
type ErrorKind string

const (
	// NotFound means the input file does not exist.
	NotFound ErrorKind = "NotFound"

	// MalformedInput covers decoding, quoting and field count errors.
	MalformedInput ErrorKind = "MalformedInput"

	// IOError covers failures creating, writing, closing or renaming output.
	IOError ErrorKind = "IOError"
)

// Error is a classified failure naming the file and, when known, the line.
type Error struct {
	Kind ErrorKind
	Path string
	Line int
	Err  error
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrNotFound       = &Error{Kind: NotFound}
	ErrMalformedInput = &Error{Kind: MalformedInput}
	ErrIO             = &Error{Kind: IOError}
)

// NewError builds a classified error. line may be 0 when unknown.
func NewError(kind ErrorKind, path string, line int, err error) *Error {
	return &Error{Kind: kind, Path: path, Line: line, Err: err}
}

// Error implements the error interface.
//
// Format: "<kind>: <path>[:<line>]: <reason>"
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Path == "" && t.Err == nil
}
