/*
errors.go - Centralized error types for the derivation engine

PURPOSE:
  All error types in one place. The derivation functions themselves are
  total and never return errors; everything here belongs to the records
  store boundary and to input validation at the edges.

ERROR CATEGORIES:
  1. Not-found errors - Missing entities or documents
  2. Validation errors - Malformed periods, kinds, duplicate IDs

USAGE:
  if errors.Is(err, ledger.ErrDocumentNotFound) { ... }
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrEntityNotFound is returned when a referenced entity doesn't exist.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrDocumentNotFound is returned when a referenced document doesn't exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrDuplicateID is returned when saving a record whose ID already exists.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrInvalidKind is returned when a document carries an unknown kind.
	ErrInvalidKind = errors.New("invalid document kind")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// InvalidDocumentError reports which field of an incoming document failed
// boundary validation.
type InvalidDocumentError struct {
	ID    TransactionID
	Field string
	Cause error
}

func (e *InvalidDocumentError) Error() string {
	return fmt.Sprintf("invalid document %s: field %q: %v", e.ID, e.Field, e.Cause)
}

func (e *InvalidDocumentError) Unwrap() error { return e.Cause }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntityNotFound) || errors.Is(err, ErrDocumentNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	var invalid *InvalidDocumentError
	return errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidKind) ||
		errors.Is(err, ErrDuplicateID) ||
		errors.As(err, &invalid)
}
