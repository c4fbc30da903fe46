package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidPage       = errors.New("invalid page parameter")
	ErrInvalidPageSize   = errors.New("invalid page size parameter")
	ErrPlanNotFound      = errors.New("trip plan not found")
	ErrEngineFailure     = errors.New("itinerary engine failure")
	ErrEngineTimeout     = errors.New("itinerary engine timed out")
	ErrDatabaseError     = errors.New("database error")
)

// ValidationError names the request field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
	kind   error
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, kind: ErrInvalidInput}
}

func NewDateFormatError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, kind: ErrInvalidDateFormat}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	if e.kind == nil {
		return ErrInvalidInput
	}
	return e.kind
}
