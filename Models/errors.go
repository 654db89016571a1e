package Models

import "fmt"

// Error taxonomy shared by the storage layer, the billing engine and the
// controllers. Controllers match these with errors.As and translate them to
// HTTP statuses; nothing below this layer retries.

// ValidationError is malformed or missing required input. Surfaced to the
// caller immediately.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError means a referenced ticket, customer or driver does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// ConflictError is a uniqueness violation (duplicate driver code, duplicate
// customer name), raised before any side effect is committed.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StorageError wraps an underlying persistence failure. Any partially
// applied multi-step mutation has been rolled back by the time one of these
// surfaces.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
