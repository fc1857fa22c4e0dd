package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds the core exposes.
// Match with errors.Is(); the HTTP boundary maps them to status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrInvalidOperation = errors.New("operation not allowed")
	ErrValidation       = errors.New("validation failed")
	ErrStorage          = errors.New("storage failure")
)

// StorageError wraps a driver or transaction error that escaped the
// transaction scope. The original cause is preserved for logging but
// callers only ever see the ErrStorage kind.
type StorageError struct {
	Op    string // logical operation that failed, e.g. "delete user"
	Cause error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap exposes the underlying driver error
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is() to match against ErrStorage
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
