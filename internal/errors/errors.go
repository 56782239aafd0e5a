// Package errors provides the dashboard's error taxonomy.
//
// Data-availability problems (MissingData, EmptyDistribution) are caught at the
// composer boundary and shown as informational notices. UnknownDimension is a
// programming error: the category selector is closed, so reaching it means a
// caller passed a name that never came from the selector.
//
// Usage:
//
//	if errors.Is(err, errors.ErrEmptyDistribution) {
//	    notices = append(notices, "분석할 데이터가 없습니다.")
//	}
//
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case errors.CodeMissingData:
//	        ...
//	    }
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
	New    = errors.New
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the dashboard.
const (
	CodeMissingData       Code = "MISSING_DATA"
	CodeEmptyDistribution Code = "EMPTY_DISTRIBUTION"
	CodeUnknownDimension  Code = "UNKNOWN_DIMENSION"
	CodeUnknownChart      Code = "UNKNOWN_CHART"
	CodeValidation        Code = "VALIDATION"
	CodeNotFound          Code = "NOT_FOUND"
	CodeInternal          Code = "INTERNAL"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound, CodeMissingData:
		return http.StatusNotFound
	case CodeUnknownDimension, CodeUnknownChart, CodeValidation:
		return http.StatusBadRequest
	case CodeEmptyDistribution:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrMissingData       = &Error{Code: CodeMissingData, Message: "data not available"}
	ErrEmptyDistribution = &Error{Code: CodeEmptyDistribution, Message: "no data to analyze"}
	ErrUnknownDimension  = &Error{Code: CodeUnknownDimension, Message: "unknown dimension"}
	ErrUnknownChart      = &Error{Code: CodeUnknownChart, Message: "unknown chart kind"}
	ErrValidation        = &Error{Code: CodeValidation, Message: "validation error"}
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
	ErrInternal          = &Error{Code: CodeInternal, Message: "internal error"}
)

// MissingData reports an absent dataset file or column.
func MissingData(what string) *Error {
	return &Error{Code: CodeMissingData, Message: fmt.Sprintf("%s not available", what)}
}

// MissingDataf creates a missing data error with formatted message.
func MissingDataf(format string, args ...any) *Error {
	return &Error{Code: CodeMissingData, Message: fmt.Sprintf(format, args...)}
}

// EmptyDistribution reports a distribution with zero observations.
func EmptyDistribution(title string) *Error {
	return &Error{Code: CodeEmptyDistribution, Message: fmt.Sprintf("%s: no data to analyze", title)}
}

// UnknownDimension reports a category dimension outside the six known ones.
func UnknownDimension(name string) *Error {
	return &Error{Code: CodeUnknownDimension, Message: fmt.Sprintf("unknown dimension %q", name)}
}

// UnknownChart reports a chart kind outside donut, treemap and bubble.
func UnknownChart(name string) *Error {
	return &Error{Code: CodeUnknownChart, Message: fmt.Sprintf("unknown chart kind %q", name)}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error wrapping cause.
func Internal(msg string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: msg, cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsDataAvailability reports whether err should become a placeholder notice
// instead of failing the page.
func IsDataAvailability(err error) bool {
	return errors.Is(err, ErrMissingData) || errors.Is(err, ErrEmptyDistribution)
}
