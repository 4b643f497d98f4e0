package ioscfg

import "fmt"

// Error codes for configuration rendering
const (
	// ErrCodeGenerateFailed indicates configuration generation failed
	ErrCodeGenerateFailed = "IOSCFG_GENERATE_FAILED"

	// ErrCodeInvalidModel indicates the synthesis model is incomplete
	ErrCodeInvalidModel = "IOSCFG_INVALID_MODEL"
)

// Error represents a rendering-specific error.
type Error struct {
	// Code is the error code
	Code string

	// Message is the human-readable error message
	Message string

	// Err is the underlying error
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new rendering error.
func NewError(code, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewInvalidModelError creates an error for an incomplete synthesis model.
func NewInvalidModelError(message string) *Error {
	return NewError(ErrCodeInvalidModel, message, nil)
}
