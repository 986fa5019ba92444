package tables

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a required document does not exist
	ErrNotFound = errors.New("file not found")
	// ErrParse is returned for syntax errors and type mismatches
	ErrParse = errors.New("parse error")
	// ErrValidation is returned when a document is well formed but incomplete
	ErrValidation = errors.New("validation error")
)

// ValidationError names the document and the entry that is missing or wrong
type ValidationError struct {
	Document string
	Key      string
	Reason   string

	cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s: %s", e.Document, e.Key, e.Reason)
}

// Unwrap exposes ErrValidation and, for table coverage problems, the
// strategy package's error
func (e *ValidationError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrValidation, e.cause}
	}
	return []error{ErrValidation}
}

func invalid(doc, key, reason string, args ...any) *ValidationError {
	return &ValidationError{Document: doc, Key: key, Reason: fmt.Sprintf(reason, args...)}
}

func notFound(path string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, path)
}

func parseFailed(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrParse, path, err)
}
