// Package errors provides typed errors for status-embed
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrConfig indicates a configuration error
	ErrConfig ErrorType = iota
	// ErrMissingField indicates a required input was absent or empty
	ErrMissingField
	// ErrInvalidEnum indicates an input outside its closed set of values
	ErrInvalidEnum
	// ErrInvalidFormat indicates a malformed input
	ErrInvalidFormat
	// ErrInconsistentGroup indicates a partially supplied input group
	ErrInconsistentGroup
	// ErrPayloadParse indicates a pull request payload that could not be parsed
	ErrPayloadParse
	// ErrDelivery indicates the webhook rejected or never received the message
	ErrDelivery
	// ErrInternal indicates a defect in status-embed itself
	ErrInternal
)

// Process exit codes.
const (
	ExitSuccess  = 0
	ExitInput    = 1  // Validation or configuration error
	ExitDelivery = 2  // Webhook delivery failed
	ExitInternal = 70 // Internal defect (EX_SOFTWARE)
)

// Error is the base error type for all status-embed errors
type Error struct {
	Type    ErrorType
	Message string
	Cause   error

	// Field is the input the error refers to, if any.
	Field string
	// Value is the offending input value, if any.
	Value string
	// Allowed lists the accepted values for ErrInvalidEnum.
	Allowed []string
	// Fields lists the missing members for ErrInconsistentGroup.
	Fields []string
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", errorTypeString(e.Type), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", errorTypeString(e.Type), e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error
func New(errType ErrorType, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if err == nil {
		return false
	}
	if errors.As(err, &e) {
		return e.Type == errType
	}
	return false
}

// IsUserError returns true if the error was caused by the caller's input
// or configuration rather than by the network or a defect.
func IsUserError(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	switch e.Type {
	case ErrConfig, ErrMissingField, ErrInvalidEnum, ErrInvalidFormat, ErrInconsistentGroup:
		return true
	default:
		return false
	}
}

// ExitCode maps an error to the process exit code.
// Errors that are not an *Error are reported as input errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var e *Error
	if !errors.As(err, &e) {
		return ExitInput
	}

	switch e.Type {
	case ErrDelivery:
		return ExitDelivery
	case ErrInternal:
		return ExitInternal
	default:
		return ExitInput
	}
}

func errorTypeString(et ErrorType) string {
	switch et {
	case ErrConfig:
		return "CONFIG"
	case ErrMissingField:
		return "MISSING_FIELD"
	case ErrInvalidEnum:
		return "INVALID_ENUM"
	case ErrInvalidFormat:
		return "INVALID_FORMAT"
	case ErrInconsistentGroup:
		return "INCONSISTENT_GROUP"
	case ErrPayloadParse:
		return "PAYLOAD_PARSE"
	case ErrDelivery:
		return "DELIVERY"
	case ErrInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *Error {
	return New(ErrConfig, message, cause)
}

// MissingField creates an error for a required input that was not provided
func MissingField(name string) *Error {
	e := New(ErrMissingField, fmt.Sprintf("missing non-null value for argument `%s`", name), nil)
	e.Field = name
	return e
}

// InvalidEnum creates an error for a value outside the allowed set
func InvalidEnum(field, value string, allowed []string) *Error {
	e := New(ErrInvalidEnum, fmt.Sprintf("invalid value for `%s`: %q (must be one of: %s)",
		field, value, strings.Join(allowed, ", ")), nil)
	e.Field = field
	e.Value = value
	e.Allowed = allowed
	return e
}

// InvalidFormat creates an error for a malformed input
func InvalidFormat(field, value, reason string) *Error {
	e := New(ErrInvalidFormat, fmt.Sprintf("invalid value for `%s`: %q (%s)", field, value, reason), nil)
	e.Field = field
	e.Value = value
	return e
}

// InconsistentGroup creates an error for a group of inputs that must be
// supplied together but were only partially provided.
func InconsistentGroup(group string, missing []string) *Error {
	e := New(ErrInconsistentGroup, fmt.Sprintf("%s arguments must be provided together; missing: %s",
		group, strings.Join(missing, ", ")), nil)
	e.Field = group
	e.Fields = missing
	return e
}

// PayloadParseError creates a pull request payload parse error
func PayloadParseError(cause error) *Error {
	return New(ErrPayloadParse, "failed to parse pull request payload", cause)
}

// DeliveryError creates a webhook delivery error
func DeliveryError(message string, cause error) *Error {
	return New(ErrDelivery, message, cause)
}

// InternalError creates an error for a defect in status-embed
func InternalError(message string) *Error {
	return New(ErrInternal, message, nil)
}
