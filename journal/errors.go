/*
errors.go - Error types for the journal domain

PURPOSE:
  Sentinel errors for errors.Is checks plus a structured validation error that
  carries the offending field. Validation failures are rejected before the
  journal is mutated; the journal and all derived views stay unchanged.
*/
package journal

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrInvoiceNotFound is returned when a referenced invoice id is unknown.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrValidation is the base of every validation failure.
	ErrValidation = errors.New("invoice validation failed")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError reports a single pre-submit rule violation. It wraps
// ErrValidation so callers can classify without matching on Field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
