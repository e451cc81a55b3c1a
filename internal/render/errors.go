package render

import (
	"errors"
	"fmt"
)

// Common rendering errors
var (
	// ErrUnsupportedLanguage is returned when the requested language has no
	// label set.
	ErrUnsupportedLanguage = errors.New("unsupported invoice language")

	// ErrEmptyInvoiceNumber is returned when the invoice carries no number;
	// the artifact file is named by the number, so rendering cannot proceed.
	ErrEmptyInvoiceNumber = errors.New("invoice number is empty")
)

// RenderError wraps errors with context about the failed document.
type RenderError struct {
	// Op is the operation that failed (e.g., "Render", "RenderFile").
	Op string

	// InvoiceNumber identifies the document being produced, if known.
	InvoiceNumber string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.InvoiceNumber != "" {
		return fmt.Sprintf("render: %s failed for invoice %s: %v", e.Op, e.InvoiceNumber, e.Err)
	}
	return fmt.Sprintf("render: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is chains.
func (e *RenderError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newRenderError(op, number string, err error) *RenderError {
	return &RenderError{Op: op, InvoiceNumber: number, Err: err}
}
