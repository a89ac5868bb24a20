package apperr

import "fmt"

// ValidationError reports caller-supplied input that failed validation.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// NotFoundError reports a lookup miss for a resource the caller named by id.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

func NewNotFound(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// SourceError reports a failed fetch from the external content source.
// It is distinct from an empty-but-successful fetch so the reconciler can
// keep the previous store state on failure.
type SourceError struct {
	Op  string
	Err error
}

func (e *SourceError) Error() string {
	return "source " + e.Op + ": " + e.Err.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func NewSource(op string, err error) *SourceError {
	return &SourceError{Op: op, Err: err}
}

// RowError reports a single structurally unusable raw row. The reconciler
// skips such rows instead of aborting the batch.
type RowError struct {
	Index   int
	Missing []string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d unusable, missing fields %v", e.Index, e.Missing)
}

func NewRow(index int, missing []string) *RowError {
	return &RowError{Index: index, Missing: missing}
}
