package client

import (
	"fmt"
	"net/http"
)

// TransportError is a failed round trip or a non-2xx answer on a read. Reads
// log it and return an empty result.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CreationError is returned when a create did not produce a record.
type CreationError struct {
	Entity  string
	Status  int
	Message string
	Err     error
}

func (e *CreationError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("create %s failed (%d): %s", e.Entity, e.Status, msg)
	}
	return fmt.Sprintf("create %s failed: %s", e.Entity, msg)
}

func (e *CreationError) Unwrap() error { return e.Err }

// UpdateError is returned when a change to an existing record was refused.
type UpdateError struct {
	Entity  string
	Status  int
	Message string
	Err     error
}

func (e *UpdateError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("update %s failed (%d): %s", e.Entity, e.Status, msg)
}

func (e *UpdateError) Unwrap() error { return e.Err }

func (e *UpdateError) NotFound() bool { return e.Status == http.StatusNotFound }

type DeletionError struct {
	Entity string
	ID     int64
	Status int
	Reason string
}

func (e *DeletionError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("delete %s %d failed: %s", e.Entity, e.ID, e.Reason)
	}
	return fmt.Sprintf("delete %s failed: %s", e.Entity, e.Reason)
}

// Result is the outcome of every delete.
type Result struct {
	OK     bool
	Status int
	Reason string

	entity string
	id     int64
}

// Err is nil on success and a *DeletionError otherwise.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return &DeletionError{Entity: r.entity, ID: r.id, Status: r.Status, Reason: r.Reason}
}
