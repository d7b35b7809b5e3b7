package seeder

import (
	"errors"
	"fmt"
)

var ErrAlreadyFlushed = errors.New("seeder already flushed")

// SchemaLookupError is returned when the database cannot describe a table.
type SchemaLookupError struct {
	Table string
	Err   error
}

func (e *SchemaLookupError) Error() string {
	return fmt.Sprintf("schema lookup failed for table %s: %v", e.Table, e.Err)
}

func (e *SchemaLookupError) Unwrap() error { return e.Err }

// RowShapeMismatch is returned for malformed insert input. The offending call buffers nothing.
type RowShapeMismatch struct {
	Table    string
	Row      int
	Expected int
	Got      int
	Column   string // set when a column name is repeated or invalid
	Invalid  bool
}

func (e *RowShapeMismatch) Error() string {
	if e.Invalid {
		return fmt.Sprintf("table %s: invalid column name %q", e.Table, e.Column)
	}
	if e.Column != "" {
		return fmt.Sprintf("table %s: column %s supplied more than once", e.Table, e.Column)
	}
	if e.Expected == 0 {
		return fmt.Sprintf("table %s: no columns supplied", e.Table)
	}
	return fmt.Sprintf("table %s: row %d has %d values, expected %d", e.Table, e.Row, e.Got, e.Expected)
}

// DatabaseOperationError wraps a failed truncate, insert or integrity toggle during flush.
type DatabaseOperationError struct {
	Op    string
	Table string
	Err   error
}

func (e *DatabaseOperationError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed for table %s: %v", e.Op, e.Table, e.Err)
}

func (e *DatabaseOperationError) Unwrap() error { return e.Err }
