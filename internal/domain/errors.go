package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes used across the service. Handlers map these to HTTP statuses
// via the response package.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeNoRoute      = "NO_ROUTE"
	CodeValidation   = "VALIDATION"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeUpstream     = "UPSTREAM"
	CodeInternal     = "INTERNAL"
)

// AppError is the service-wide error type. The Message of a user-facing
// error (NOT_FOUND, NO_ROUTE, VALIDATION, UNAUTHORIZED, FORBIDDEN, CONFLICT)
// is safe to return to clients; everything else collapses to a generic
// message at the HTTP boundary.
type AppError struct {
	Code    string
	Message string
	Status  int
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.cause
}

// UserFacing reports whether the error's message may be shown to end users.
func (e *AppError) UserFacing() bool {
	switch e.Code {
	case CodeNotFound, CodeNoRoute, CodeValidation, CodeUnauthorized, CodeForbidden, CodeConflict:
		return true
	}
	return false
}

// NewPlaceNotFoundError is returned when a free-text place cannot be
// geocoded. The message embeds the original query so the frontend can show
// the user exactly what failed to resolve.
func NewPlaceNotFoundError(query string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("Could not find %q. Try a more specific name.", query),
		Status:  http.StatusNotFound,
	}
}

// NewNotFoundError is returned when a stored entity does not exist.
func NewNotFoundError(entity, id string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found.", entity, id),
		Status:  http.StatusNotFound,
	}
}

// NewNoRouteError is returned when the routing engine cannot produce any
// drivable path between two resolved points.
func NewNoRouteError() *AppError {
	return &AppError{
		Code:    CodeNoRoute,
		Message: "No drivable route found between these locations.",
		Status:  http.StatusUnprocessableEntity,
	}
}

// NewValidationError is returned for malformed or rejected input.
func NewValidationError(msg string) *AppError {
	return &AppError{Code: CodeValidation, Message: msg, Status: http.StatusBadRequest}
}

// NewUnauthorizedError is returned for missing or invalid credentials.
func NewUnauthorizedError(msg string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: msg, Status: http.StatusUnauthorized}
}

// NewForbiddenError is returned when the caller may not act on the resource.
func NewForbiddenError(msg string) *AppError {
	return &AppError{Code: CodeForbidden, Message: msg, Status: http.StatusForbidden}
}

// NewConflictError is returned when a uniqueness constraint is violated.
func NewConflictError(msg string) *AppError {
	return &AppError{Code: CodeConflict, Message: msg, Status: http.StatusConflict}
}

// NewUpstreamError wraps a failure from an external geodata service. Never
// user-facing; callers on the non-critical path swallow it entirely.
func NewUpstreamError(service string, cause error) *AppError {
	return &AppError{
		Code:    CodeUpstream,
		Message: fmt.Sprintf("upstream %s request failed", service),
		Status:  http.StatusBadGateway,
		cause:   cause,
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(cause error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Status:  http.StatusInternalServerError,
		cause:   cause,
	}
}

// AsAppError extracts an *AppError from err's chain, if present.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
