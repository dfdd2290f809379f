package pereval

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by lookups when no pass matches the id.
var ErrNotFound = errors.New("pass not found")

// MissingFieldsError reports every required top-level key absent from a
// submission, not just the first one.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// InvalidDataError aggregates every present field that failed validation.
type InvalidDataError struct {
	Fields []string
}

func (e *InvalidDataError) Error() string {
	return "invalid data in fields: " + strings.Join(e.Fields, ", ")
}

// EditNotAllowedError rejects an update when the record has left the
// "new" state.
type EditNotAllowedError struct {
	Status Status
}

func (e *EditNotAllowedError) Error() string {
	return "record is not editable in status " + string(e.Status)
}

// ForbiddenFieldChangeError rejects an update that tries to alter
// submitter identity fields, listing every differing field.
type ForbiddenFieldChangeError struct {
	Fields []string
}

func (e *ForbiddenFieldChangeError) Error() string {
	return "submitter fields cannot be changed: " + strings.Join(e.Fields, ", ")
}

// StorageError wraps a failure of the underlying store. The enclosing
// unit of work has already been rolled back when it is returned.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "storage failure: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
