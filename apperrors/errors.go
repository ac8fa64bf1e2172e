package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports rejected input before any write is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// DuplicateSubmissionError is returned when a register application is
// blocked by an existing pending or verified one for the same identity.
type DuplicateSubmissionError struct {
	BlockingStatus string
}

func (e *DuplicateSubmissionError) Error() string {
	return fmt.Sprintf("a %s registration application already exists for this account", e.BlockingStatus)
}

// AlreadyApprovedError is returned when the identity already holds an
// approved register application.
type AlreadyApprovedError struct{}

func (e *AlreadyApprovedError) Error() string {
	return "registration application has already been approved for this account"
}

// NotFoundError covers missing applicants, applications and storage buckets.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// PermissionError reports an authorization failure from the storage layer.
type PermissionError struct {
	Err error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %v", e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// DuplicateError is returned when a storage path already holds content.
type DuplicateError struct {
	Path string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("file already exists at %s", e.Path)
}

// StorageWriteError wraps a failed write to the object store.
type StorageWriteError struct {
	Err error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("failed to store file: %v", e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// UnknownUploadError covers storage failures that fit no other category.
type UnknownUploadError struct {
	Err error
}

func (e *UnknownUploadError) Error() string {
	return fmt.Sprintf("upload failed: %v", e.Err)
}

func (e *UnknownUploadError) Unwrap() error { return e.Err }

// UrlResolutionError is returned when the write succeeded but no public
// reference could be produced for it.
type UrlResolutionError struct {
	Bucket string
	Path   string
}

func (e *UrlResolutionError) Error() string {
	return fmt.Sprintf("stored %s/%s but could not resolve a public URL", e.Bucket, e.Path)
}

// PersistenceError identifies which sub-record of a multi-step write failed.
type PersistenceError struct {
	Record string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save %s record: %v", e.Record, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
