package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Parsing errors
	ErrNoMatch ErrorCode = "NO_MATCH"

	// Rule errors
	ErrInvalidRule       ErrorCode = "RULE_INVALID"
	ErrAmbiguousDefaults ErrorCode = "RULE_AMBIGUOUS_DEFAULTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// VCSError represents a structured error with code and details
type VCSError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *VCSError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *VCSError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *VCSError) Is(target error) bool {
	var targetErr *VCSError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new VCSError with the given code and message
func New(code ErrorCode, message string) *VCSError {
	return &VCSError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new VCSError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *VCSError {
	return &VCSError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a VCSError
func Wrap(err error, code ErrorCode, message string) *VCSError {
	if err == nil {
		return nil
	}
	return &VCSError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *VCSError {
	if err == nil {
		return nil
	}
	return &VCSError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *VCSError) WithDetail(key string, value interface{}) *VCSError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var vcsErr *VCSError
	if errors.As(err, &vcsErr) {
		return vcsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a VCSError
func GetErrorCode(err error) ErrorCode {
	var vcsErr *VCSError
	if errors.As(err, &vcsErr) {
		return vcsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a VCSError
func GetErrorDetails(err error) map[string]interface{} {
	var vcsErr *VCSError
	if errors.As(err, &vcsErr) {
		return vcsErr.Details
	}
	return nil
}
