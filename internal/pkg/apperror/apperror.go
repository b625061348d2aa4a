package apperror

import (
	"errors"
	"net/http"
)

// AppError is an error carrying the HTTP status it should be reported with.
// Domain packages declare their sentinel errors with New so that handlers can
// map failures to responses without per-error switch statements.
type AppError struct {
	Code    int    // HTTP status code (e.g. 400, 404, 409)
	Message string // user-facing message
	Err     error  // underlying cause, not exposed to the user
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a cause-carrying copy against its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates an AppError around an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithCause returns a copy of the sentinel carrying err as its cause.
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// StatusOf extracts the HTTP status for an error, defaulting to 500.
func StatusOf(err error) int {
	var e *AppError
	if errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}
