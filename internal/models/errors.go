package models

import "fmt"

// ValidationError covers user-correctable input problems. Handlers map it to 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError is returned when a referenced aggregate does not exist. Handlers map it to 404.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// ParseError reports a malformed CSV row. Row is 1-indexed with the header excluded;
// Row 0 means the header itself was rejected.
type ParseError struct {
	Row    int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("header: %s", e.Reason)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// StorageError wraps persistence layer failures. Handlers map it to 500.
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
