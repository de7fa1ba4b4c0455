package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrBadRequest is returned for malformed input or requests that make no sense
// for the current state (e.g. syncing a debt that is already in sync).
var ErrBadRequest = ErrValidation

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that an outstanding operation blocks the request.
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates a missing or invalid session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrPreconditionFailed indicates the resource is not in the state the request requires.
var ErrPreconditionFailed = errors.New("precondition failed")

// ErrInternal is a generic internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code together with a message and the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the symbolic code for err, used in API error bodies.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrPreconditionFailed):
		return "PRECONDITION_FAILED"
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return "CONFLICT"
	case errors.Is(err, ErrValidation):
		return "BAD_REQUEST"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

// HTTPStatus maps err to the HTTP status the API responds with.
func HTTPStatus(err error) int {
	switch Code(err) {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "FORBIDDEN":
		return http.StatusForbidden
	case "UNAUTHORIZED":
		return http.StatusUnauthorized
	case "PRECONDITION_FAILED":
		return http.StatusPreconditionFailed
	case "CONFLICT":
		return http.StatusConflict
	case "BAD_REQUEST":
		return http.StatusBadRequest
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
