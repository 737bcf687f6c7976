package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is a typed string for categorizing application errors.
type ErrorCode string

// Error code constants. Components MUST use these constants instead of
// hardcoded strings so that callers can branch on error categories.
const (
	// Validation (invalid input, fatal to the call)
	ErrCodeValidationInvalidLat      ErrorCode = "validation_invalid_latitude"
	ErrCodeValidationInvalidLon      ErrorCode = "validation_invalid_longitude"
	ErrCodeValidationMissingLocation ErrorCode = "validation_missing_location"
	ErrCodeValidationWindow          ErrorCode = "validation_invalid_window"
	ErrCodeValidationDateHorizon     ErrorCode = "validation_date_outside_horizon"

	// Not Found (no forecast sample for an otherwise valid date)
	ErrCodeNotFoundForecast ErrorCode = "not_found_forecast"

	// Upstream (weather provider failures)
	ErrCodeUpstreamUnavailable ErrorCode = "upstream_provider_unavailable"
	ErrCodeUpstreamRateLimited ErrorCode = "upstream_provider_rate_limited"
	ErrCodeUpstreamTimeout     ErrorCode = "upstream_provider_timeout"
	ErrCodeUpstreamAuth        ErrorCode = "upstream_provider_unauthorized"

	// Internal
	ErrCodeInternalUnexpected ErrorCode = "internal_unexpected_error"
)

// AppError is the standard application error type. All domain errors are
// expressed as AppError to enable consistent formatting, category checks,
// and error chain support.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given code, message, and
// optional underlying error.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewAppErrorWithDetails creates a new AppError carrying structured details.
func NewAppErrorWithDetails(code ErrorCode, message string, err error, details map[string]any) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: details,
	}
}

// CodeOf extracts the ErrorCode from an error chain, or
// ErrCodeInternalUnexpected when the chain carries no AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalUnexpected
}

// IsInvalidInput reports whether the error is a validation failure.
func IsInvalidInput(err error) bool {
	return strings.HasPrefix(string(CodeOf(err)), "validation_")
}

// IsProviderUnavailable reports whether the error represents a weather
// provider failure for the requested date: either an upstream fault or the
// absence of any forecast sample. Callers treat these as "no weather data
// available" rather than fatal errors.
func IsProviderUnavailable(err error) bool {
	code := CodeOf(err)
	return strings.HasPrefix(string(code), "upstream_") || code == ErrCodeNotFoundForecast
}
