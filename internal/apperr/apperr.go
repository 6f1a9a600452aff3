// Package apperr defines the error taxonomy shared by all modules.
// Handlers translate these into HTTP status codes; everything
// unrecognised becomes a generic 500.
package apperr

import (
	"fmt"
	"strings"
)

// FieldError is a single rule violation, tagged with the path of the
// offending field so a client can highlight every input at once.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError collects every violation found in one pass. It is
// never returned with an empty Fields slice.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	paths := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		paths[i] = f.Path
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(paths, ", "))
}

// Add appends a violation for the given field path.
func (e *ValidationError) Add(path, message string) {
	e.Fields = append(e.Fields, FieldError{Path: path, Message: message})
}

// OrNil returns the error itself when violations were collected, nil
// otherwise, so callers can build up and return in one statement.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NotFoundError marks a referenced entity as absent.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NotFound builds a NotFoundError for the given resource and id.
func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// UploadError covers rejected uploads: missing file part, oversized
// payload, unparsable multipart body.
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string { return e.Reason }

// StorageError wraps a failed object-storage call. The backend detail
// is surfaced to the caller; nothing is retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("object storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
