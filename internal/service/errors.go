package service

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the services. Handlers map these to HTTP
// statuses; anything else is treated as an internal failure.
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrStudentExists      = errors.New("a student with that email or nim already exists")
	ErrCourseNotFound     = errors.New("course not found")
	ErrPermissionNotFound = errors.New("permission request not found")
	ErrPermissionDecided  = errors.New("permission request already decided")
	ErrCourseIDsRequired  = errors.New("course_ids must be provided as an array")
	ErrInvalidDate        = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminRequired      = errors.New("admin privileges required")
)

// StoreReadError wraps a failed read against a named table. Aggregation and
// listing fail atomically on it; no partial result is returned.
type StoreReadError struct {
	Table string
	Err   error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("reading %s failed: %v", e.Table, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }

// StoreWriteError wraps a failed write against a named table.
type StoreWriteError struct {
	Table string
	Err   error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("writing %s failed: %v", e.Table, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }
