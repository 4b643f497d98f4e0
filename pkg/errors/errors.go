package errors

import (
	"errors"
	"fmt"
)

// Error represents a fusiongen error with context
type Error struct {
	// Code is the error code (e.g., "PARSE_ERROR")
	Code string
	// Message is the human-readable error message
	Message string
	// Cause describes why the error occurred
	Cause string
	// Action suggests what the user should do
	Action string
	// Underlying is the wrapped error
	Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *Error) Unwrap() error {
	return e.Underlying
}

// New creates a new Error
func New(code, message, cause, action string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
		Action:  action,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, code, message, cause, action string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Cause:      cause,
		Action:     action,
		Underlying: err,
	}
}

// Common error codes
const (
	// Border node parsing errors
	ErrCodeParse = "PARSE_ERROR"

	// Field and parameter validation errors
	ErrCodeValidation = "VALIDATION_ERROR"

	// Cross-router consistency errors (iBGP AS mismatch)
	ErrCodeConsistency = "CONSISTENCY_ERROR"

	// Service configuration errors
	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
	ErrCodeConfigParseError = "CONFIG_PARSE_ERROR"
	ErrCodeConfigValidation = "CONFIG_VALIDATION_ERROR"

	// Persistence errors
	ErrCodeStore = "STORE_ERROR"

	// HTTP boundary errors
	ErrCodeRequestInvalid = "REQUEST_INVALID"
)

// Common error constructors

// ParseError creates a border node parse error
func ParseError(source string) *Error {
	return New(
		ErrCodeParse,
		fmt.Sprintf("Could not parse hostname from %s", source),
		"The configuration text does not contain a 'hostname' line",
		"Upload a complete Cisco IOS running configuration including the hostname stanza",
	)
}

// ValidationError creates a field validation error
func ValidationError(field, message string) *Error {
	return New(
		ErrCodeValidation,
		fmt.Sprintf("Invalid %s: %s", field, message),
		"A user-supplied parameter does not match the required format",
		"Correct the value and retry the generation",
	)
}

// ConfigNotFound creates a service config not found error
func ConfigNotFound(path string) *Error {
	return New(
		ErrCodeConfigNotFound,
		fmt.Sprintf("Configuration file not found: %s", path),
		"The specified configuration file does not exist",
		"Check the file path and ensure the configuration file has been created",
	)
}

// ConfigParseError creates a service config parse error
func ConfigParseError(path string, err error) *Error {
	return Wrap(
		err,
		ErrCodeConfigParseError,
		fmt.Sprintf("Failed to parse configuration file: %s", path),
		"The configuration file contains invalid syntax or format",
		"Review the configuration file syntax and fix any errors",
	)
}

// StoreError creates a persistence error
func StoreError(op string, err error) *Error {
	return Wrap(
		err,
		ErrCodeStore,
		fmt.Sprintf("Store operation failed: %s", op),
		"The generation history database or artifact directory is not accessible",
		"Check the workdir and database paths in the service configuration",
	)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
