package store

import (
	"errors"
	"fmt"
)

// Common storage errors
var (
	// ErrCorrupt is returned when a backing file exists but cannot be parsed.
	// A corrupt metadata file is treated as a fatal configuration problem:
	// silently resetting it could reissue an already-used invoice number.
	ErrCorrupt = errors.New("corrupt store file")

	// ErrLocked is returned when the metadata lock is already held, which
	// usually means another invoicer process is mid-generation.
	ErrLocked = errors.New("metadata store is locked by another process")
)

// StoreError wraps errors with the operation and file path that failed.
type StoreError struct {
	// Op is the operation that failed (e.g., "Load", "Save", "LoadClients").
	Op string

	// Path is the backing file involved.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s failed for %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is chains.
func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newStoreError(op, path string, err error) *StoreError {
	return &StoreError{Op: op, Path: path, Err: err}
}
