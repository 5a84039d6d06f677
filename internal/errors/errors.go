package errors

import (
	"fmt"
)

// ErrorType represents the type of error.
type ErrorType string

const (
	ErrorTypeConfiguration     ErrorType = "CONFIGURATION_ERROR"
	ErrorTypeUnsupportedFormat ErrorType = "UNSUPPORTED_FORMAT"
	ErrorTypeCancelled         ErrorType = "CANCELLED"
	ErrorTypeInternal          ErrorType = "INTERNAL_ERROR"
)

// FilterError represents a filter error with additional context.
type FilterError struct {
	Type    ErrorType              `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

// Error implements the error interface.
func (e *FilterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error.
func (e *FilterError) Unwrap() error {
	return e.Err
}

// WithDetails adds details to the error.
func (e *FilterError) WithDetails(details map[string]interface{}) *FilterError {
	e.Details = details
	return e
}

// New creates a new FilterError.
func New(errType ErrorType, message string) *FilterError {
	return &FilterError{
		Type:    errType,
		Message: message,
	}
}

// Wrap wraps an existing error.
func Wrap(err error, errType ErrorType, message string) *FilterError {
	return &FilterError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Common error constructors.

// NewConfigurationError creates a configuration error.
func NewConfigurationError(message string) *FilterError {
	return New(ErrorTypeConfiguration, message)
}

// NewUnsupportedFormatError creates an unsupported pixel format error.
func NewUnsupportedFormatError(format string) *FilterError {
	return New(ErrorTypeUnsupportedFormat, fmt.Sprintf("pixel format %s is not supported", format))
}

// NewCancelledError creates a cancellation error.
func NewCancelledError(message string) *FilterError {
	return New(ErrorTypeCancelled, message)
}

// NewInternalError creates an internal error.
func NewInternalError(message string) *FilterError {
	return New(ErrorTypeInternal, message)
}

// WrapInternalError wraps an error as an internal error.
func WrapInternalError(err error, message string) *FilterError {
	return Wrap(err, ErrorTypeInternal, message)
}

// IsFilterError checks if an error is a FilterError.
func IsFilterError(err error) bool {
	_, ok := err.(*FilterError)
	return ok
}

// GetFilterError extracts FilterError from an error.
func GetFilterError(err error) (*FilterError, bool) {
	filterErr, ok := err.(*FilterError)
	return filterErr, ok
}

// IsUnsupportedFormat reports whether err is an unsupported pixel format error.
func IsUnsupportedFormat(err error) bool {
	if fe, ok := GetFilterError(err); ok {
		return fe.Type == ErrorTypeUnsupportedFormat
	}
	return false
}
