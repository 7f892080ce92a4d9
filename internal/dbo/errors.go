package dbo

import (
	"errors"
	"fmt"
)

// Row-level failure kinds. A *RowError unwraps to exactly one of them.
var (
	ErrMissingField   = errors.New("missing field")
	ErrInvalidDate    = errors.New("invalid date format")
	ErrInvalidDecimal = errors.New("invalid decimal")
)

// RowError reports why one data row could not be mapped to a record.
//
// Row is the physical 1-based row number with header rows included, so the
// first data row of a standard export is row 2. Column is the 1-based logical
// column of the failing field.
type RowError struct {
	Row    int
	Column int
	Field  string
	Value  string
	Kind   error
	Msg    string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Msg)
}

func (e *RowError) Unwrap() error { return e.Kind }

// ReadError is a structural failure of the tokenizer (bad quoting, I/O).
// It is not tied to a mapped row and aborts the whole parse.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read record: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
