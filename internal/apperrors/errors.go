package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the target resource is not in a state that allows the operation.
var ErrConflict = errors.New("state conflict")

// ErrUnauthorized indicates that the caller has no usable session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected failure in a lower layer.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code and a human readable message along with the cause.
type AppError struct {
	Code    int
	Message string
	Field   string // set when the failure belongs to one request field
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	if e.Err == nil {
		return sentinelForCode(e.Code)
	}
	return e.Err
}

// Is lets errors.Is match an AppError against the sentinel implied by its code,
// even when the wrapped cause is a driver error.
func (e *AppError) Is(target error) bool {
	return target == sentinelForCode(e.Code)
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError builds a 400 error whose message is shown to the caller as is.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message}
}

// NewFieldError builds a 400 error attributed to a single request field.
func NewFieldError(field, message string) *AppError {
	return &AppError{Code: 400, Message: message, Field: field}
}

// NewConflictError builds an error for operations refused because of the current state.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message}
}

func sentinelForCode(code int) error {
	switch code {
	case 400:
		return ErrValidation
	case 401:
		return ErrUnauthorized
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	default:
		return ErrInternal
	}
}
