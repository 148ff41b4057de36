package apperr

import "fmt"

// Error codes
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeConflict     = "CONFLICT"
)

// Error is an application error carrying an HTTP status and error code.
type Error struct {
	Code    string // machine-readable code (e.g. "NOT_FOUND")
	Message string // human-readable message
	Status  int    // HTTP status code
	Err     error  // wrapped underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a NOT_FOUND error.
func NewNotFoundError(resource string, id interface{}) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a VALIDATION_ERROR.
func NewValidationError(field string, reason string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates an INTERNAL_ERROR wrapping the cause.
func NewInternalError(err error) *Error {
	return &Error{
		Code:    CodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a BAD_REQUEST error.
func NewBadRequestError(message string) *Error {
	return &Error{
		Code:    CodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewUnauthorizedError creates an UNAUTHORIZED error.
func NewUnauthorizedError(message string) *Error {
	return &Error{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  401,
	}
}

// NewConflictError creates a CONFLICT error.
func NewConflictError(message string) *Error {
	return &Error{
		Code:    CodeConflict,
		Message: message,
		Status:  409,
	}
}
