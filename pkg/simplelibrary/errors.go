package simplelibrary

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrRecordNotFound indicates a path did not resolve to a record,
	// even after the legacy fallback lookup
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateName indicates a sibling with the same name already
	// exists under the same parent
	ErrDuplicateName = errors.New("name already exists under parent")

	// ErrInvalidName indicates an empty or unusable leaf name
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidPath indicates an empty or unusable path
	ErrInvalidPath = errors.New("invalid path")

	// ErrBlobNotFound indicates a blob key was not present in the store
	ErrBlobNotFound = errors.New("blob not found")
)

// RecordError represents an error related to metadata record operations
type RecordError struct {
	Path string
	Op   string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record operation %s failed for path %q: %v", e.Op, e.Path, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to blob store operations
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
