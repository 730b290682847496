package errors

import (
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Option parsing errors
	ErrCodeBadValue      ErrorCode = "BAD_VALUE"
	ErrCodeUnknownOption ErrorCode = "UNKNOWN_OPTION"
	ErrCodeUsageConflict ErrorCode = "USAGE_CONFLICT"

	// Saved configuration errors
	ErrCodeInvalidConfigFile      ErrorCode = "INVALID_CONFIG_FILE"
	ErrCodeIncompatibleConfigFile ErrorCode = "INCOMPATIBLE_CONFIG_FILE"

	// Profile resolution errors
	ErrCodeProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"

	// General errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// LaunchError represents a structured error with context
type LaunchError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *LaunchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *LaunchError) WithDetail(key string, value interface{}) *LaunchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new LaunchError
func New(code ErrorCode, message string) *LaunchError {
	return &LaunchError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a LaunchError
func Wrap(err error, code ErrorCode, message string) *LaunchError {
	return &LaunchError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error carries a specific error code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	launchErr, ok := err.(*LaunchError)
	if !ok {
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return launchErr.Code
}
