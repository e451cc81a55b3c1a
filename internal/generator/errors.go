package generator

import (
	"errors"
	"fmt"
)

// Common generation errors
var (
	// ErrNoItems is returned when a generation request carries no line items.
	ErrNoItems = errors.New("invoice has no line items")
)

// ValidationError reports one rejected input field. Validation happens before
// any model is constructed or any state is mutated.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// GenerationError wraps errors from the generation pipeline with the stage
// that failed, so callers can tell a storage failure from a render failure.
type GenerationError struct {
	// Op is the pipeline stage that failed (e.g., "LoadMetadata", "Render").
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is chains.
func (e *GenerationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newGenerationError(op string, err error) *GenerationError {
	return &GenerationError{Op: op, Err: err}
}
