// Package errors defines the error taxonomy shared by the loader, the feature
// pipeline and the transport layer.
//
// Callers distinguish failures with the standard library:
//
//	if errors.Is(err, apperrors.ErrLoad) { ... }
//
// or by extracting the *AppError with errors.As / IsType.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeLoad        ErrorType = "load"
	ErrorTypeDecode      ErrorType = "decode"
	ErrorTypeComputation ErrorType = "computation"
	ErrorTypeValidation  ErrorType = "validation"
)

// Sentinels usable with errors.Is. They match any *AppError of the same type.
var (
	ErrLoad        = &AppError{Type: ErrorTypeLoad, Message: "source unreadable"}
	ErrDecode      = &AppError{Type: ErrorTypeDecode, Message: "unsupported or corrupt encoding"}
	ErrComputation = &AppError{Type: ErrorTypeComputation, Message: "degenerate input"}
	ErrValidation  = &AppError{Type: ErrorTypeValidation, Message: "invalid argument"}
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType `json:"type"`
	Op      string    `json:"op,omitempty"`
	Path    string    `json:"path,omitempty"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := string(e.Type) + ": "
	if e.Op != "" {
		msg += e.Op + ": "
	}
	if e.Path != "" {
		msg += e.Path + ": "
	}
	msg += e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *AppError of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// NewLoadError reports a source that could not be opened or read.
func NewLoadError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeLoad,
		Op:      "load",
		Path:    path,
		Message: "failed to read image",
		Cause:   cause,
	}
}

// NewDecodeError reports bytes that do not parse as a supported raster format.
func NewDecodeError(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDecode,
		Op:      "decode",
		Path:    path,
		Message: "failed to decode image",
		Cause:   cause,
	}
}

// NewComputationError reports input the pipeline cannot analyze, such as a
// zero-area image.
func NewComputationError(op, message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeComputation,
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Cause:   cause,
	}
}

// WithPath returns a copy of err annotated with path when err is an *AppError
// without one. Other errors are returned unchanged.
func WithPath(err error, path string) error {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Path != "" {
		return err
	}
	cp := *appErr
	cp.Path = path
	return &cp
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// TypeOf returns the ErrorType of err, or "" when err is not an *AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}
