package store

import (
	"errors"
	"fmt"
)

// ErrIncompatibleSchema is returned when a stored record was written by a
// newer major version of the profile format.
var ErrIncompatibleSchema = errors.New("incompatible record schema")

// ErrUnencodable is returned when a profile cannot be serialized, e.g. it
// has no role. It is not an IOError: saving the same record again fails the
// same way.
var ErrUnencodable = errors.New("profile cannot be encoded")

// ErrReportNotFound is returned when a report id does not exist.
var ErrReportNotFound = errors.New("error report not found")

// IOError wraps a persistence failure with the operation that failed.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func ioErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Err: err}
}
