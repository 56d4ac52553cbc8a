package errorx

import (
	"fmt"
	"net/http"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryValidation     ErrorCategory = "validation"
	CategoryAuthentication ErrorCategory = "authentication"
	CategoryAuthorization  ErrorCategory = "authorization"
	CategoryNotFound       ErrorCategory = "not_found"
	CategoryConflict       ErrorCategory = "conflict"
	CategoryInternal       ErrorCategory = "internal"
)

// APIError represents a structured API error carried to the response
type APIError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Category   ErrorCategory  `json:"category"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	TraceID    string         `json:"trace_id,omitempty"`
	Timestamp  string         `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Category, e.Message)
}

// WithDetail adds a detail to the error
func (e *APIError) WithDetail(key string, value any) *APIError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// NewValidation returns a validation error rejected before touching the store
func NewValidation(msg string) *APIError {
	return &APIError{
		Code:       "E4000",
		Message:    msg,
		Category:   CategoryValidation,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnauthorized returns an authentication error
func NewUnauthorized(msg string) *APIError {
	return &APIError{
		Code:       "E4010",
		Message:    msg,
		Category:   CategoryAuthentication,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden returns an authorization error
func NewForbidden(msg string) *APIError {
	return &APIError{
		Code:       "E4030",
		Message:    msg,
		Category:   CategoryAuthorization,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewNotFound returns a not-found error for an absent entity
func NewNotFound(msg string) *APIError {
	return &APIError{
		Code:       "E4040",
		Message:    msg,
		Category:   CategoryNotFound,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflict returns a conflict error for a violated state invariant
func NewConflict(msg string) *APIError {
	return &APIError{
		Code:       "E4090",
		Message:    msg,
		Category:   CategoryConflict,
		HTTPStatus: http.StatusConflict,
	}
}

// NewInternal returns a generic internal error. The underlying cause is logged
// server-side by the error handler, never returned to the caller.
func NewInternal() *APIError {
	return &APIError{
		Code:       "E5000",
		Message:    "internal server error",
		Category:   CategoryInternal,
		HTTPStatus: http.StatusInternalServerError,
	}
}
