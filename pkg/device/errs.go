package device

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that no dataset row carries the requested identifier.
	ErrNotFound = errors.New("device: part not found")

	// ErrSchema indicates a missing column, a non-numeric cell or a value that
	// violates the device invariants.
	ErrSchema = errors.New("device: schema error")

	// ErrFormat indicates a dataset file whose format could not be determined.
	ErrFormat = errors.New("device: unsupported dataset format")
)

// SchemaError describes which column (and row, when known) broke the schema.
type SchemaError struct {
	Column string
	Row    string // identifier of the offending row, empty for header errors
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row == "" {
		return fmt.Sprintf("device: column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("device: row %q column %q: %s", e.Row, e.Column, e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }
