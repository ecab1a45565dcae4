package cartera

import (
	"errors"
	"fmt"
)

// Error taxonomy of the pipeline. Adapter failures degrade to a per-record
// skip during a refresh; the other kinds always surface to the caller.
var (
	// ErrDataUnavailable reports that a rollup needs more historical points
	// than exist (percent changes require at least two). Zero is a valid,
	// different value; it is never substituted.
	ErrDataUnavailable = errors.New("not enough data points")

	// ErrRecordNotFound reports an edit or delete referencing a missing id.
	ErrRecordNotFound = errors.New("record not found")
)

// AdapterError wraps a failure of the external price source for one
// instrument.
type AdapterError struct {
	Ticker string
	Err    error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("price source failed for %q: %v", e.Ticker, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

// StorageError wraps an underlying persistence failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage %s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
