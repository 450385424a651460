package errors

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether any AppError in err's chain carries code.
func HasCode(err error, code string) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// Predefined error codes
const (
	CodeMissingParameter     = "MISSING_PARAMETER"
	CodeDegenerateComparison = "DEGENERATE_COMPARISON"
	CodeResolutionFailure    = "RESOLUTION_FAILURE"
	CodeValidationFailure    = "VALIDATION_FAILURE"
	CodeUnknownFramework     = "UNKNOWN_FRAMEWORK"
	CodePrecedentUnavailable = "PRECEDENT_UNAVAILABLE"
	CodeConfigInvalid        = "CONFIG_INVALID"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeInternalError        = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func ValidationFailure(message string) *AppError {
	return New(CodeValidationFailure, message)
}

func UnknownFramework(name string) *AppError {
	return New(CodeUnknownFramework, fmt.Sprintf("unknown framework %q", name))
}

func ResolutionFailure(strategy string, cause error) *AppError {
	return &AppError{
		Code:    CodeResolutionFailure,
		Message: fmt.Sprintf("%s resolver failed", strategy),
		Cause:   cause,
	}
}

func PrecedentUnavailable(cause error) *AppError {
	return &AppError{
		Code:    CodePrecedentUnavailable,
		Message: "precedent lookup unavailable",
		Cause:   cause,
	}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

