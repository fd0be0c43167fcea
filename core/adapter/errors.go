package adapter

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnknownAddressFamily = errors.New("unknown address family")
	ErrNullPointer          = errors.New("null pointer")
	ErrOutOfBounds          = errors.New("reference outside buffer")
	ErrCycle                = errors.New("linked list revisits a record")
	ErrTruncated            = errors.New("truncated record")
	ErrReleased             = errors.New("buffer already released")
	ErrTooManyAttempts      = errors.New("required buffer size kept growing")
)

// AcquireError reports a failure to obtain the adapter buffer from the OS.
type AcquireError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("acquire adapter addresses: %s after %d attempt(s): %v", e.Op, e.Attempts, e.Err)
}

func (e *AcquireError) Unwrap() error {
	return e.Err
}

// DecodeError reports malformed data at Offset while decoding Field.
type DecodeError struct {
	Field  string
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s at offset %#x: %v", e.Field, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// SnapshotError is the only error type returned by List and Build. It wraps an
// *AcquireError, a *DecodeError or a release failure.
type SnapshotError struct {
	Err error
}

func (e *SnapshotError) Error() string {
	return "adapter snapshot: " + e.Err.Error()
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}

func decodeErr(field string, off int, err error) error {
	return &DecodeError{Field: field, Offset: off, Err: err}
}
