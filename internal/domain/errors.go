package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrValidation     = errors.New("validation error")
	ErrUnavailable    = errors.New("unavailable")
	ErrInvalidDataset = errors.New("invalid dataset")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// DatasetError reports every structural problem found in one dataset file.
type DatasetError struct {
	File     string
	Problems []string
}

func (e *DatasetError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("dataset %s: %s", e.File, e.Problems[0])
	}
	return fmt.Sprintf("dataset %s: %d problems: %s", e.File, len(e.Problems), strings.Join(e.Problems, "; "))
}

func (e *DatasetError) Unwrap() error { return ErrInvalidDataset }
