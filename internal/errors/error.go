package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Category represents the part of boom that raised an error.
type Category string

const (
	CategoryConfig Category = "config"
	CategoryBridge Category = "bridge"
	CategoryCLI    Category = "cli"
)

// BoomError is a structured error with a stable code and a hint on how
// to fix it.
type BoomError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the area the error belongs to.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this occurrence.
	Detail string

	// Field names the config field or request parameter at fault.
	Field string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Status is the HTTP status the bridge answers with.
	Status int

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *BoomError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *BoomError) Unwrap() error {
	return e.Wrapped
}

// Is matches another BoomError with the same code.
func (e *BoomError) Is(target error) bool {
	t, ok := target.(*BoomError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithDetail adds a detailed explanation to the error.
func (e *BoomError) WithDetail(d string) *BoomError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with a format string.
func (e *BoomError) WithDetailf(format string, args ...any) *BoomError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithField names the field at fault.
func (e *BoomError) WithField(f string) *BoomError {
	e.Field = f
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *BoomError) WithSuggestion(s string) *BoomError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *BoomError) Wrap(err error) *BoomError {
	e.Wrapped = err
	return e
}

// HTTPStatus returns the status to answer with, defaulting to 500.
func (e *BoomError) HTTPStatus() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// New creates a BoomError from a registered error code.
func New(code string) *BoomError {
	template, ok := registry[code]
	if !ok {
		return &BoomError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &BoomError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
		Status:     template.Status,
	}
}

// Newf creates a new BoomError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *BoomError {
	return &BoomError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a BoomError. Errors that already
// are, or wrap, a BoomError are returned as that BoomError.
func FromError(err error, code string) *BoomError {
	if err == nil {
		return nil
	}
	var be *BoomError
	if stderrors.As(err, &be) {
		return be
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first BoomError in err's chain, or "".
func Code(err error) string {
	var be *BoomError
	if stderrors.As(err, &be) {
		return be.Code
	}
	return ""
}
