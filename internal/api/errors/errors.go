package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/P0llen/speaker-detector/internal/app/apperrors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindConflict           ErrorKind = "conflict"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindBadRequest         ErrorKind = "bad_request"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *APIError {
	return &APIError{
		Kind:    KindConflict,
		Message: message,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewServiceUnavailableError creates a service unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Kind:    KindServiceUnavailable,
		Message: message,
	}
}

// FromDomain maps core sentinel errors onto the HTTP error taxonomy. Errors
// with no mapping become internal errors with a generic message.
func FromDomain(err error) *APIError {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return &APIError{Kind: KindNotFound, Message: err.Error()}
	case errors.Is(err, apperrors.ErrConflict):
		return &APIError{Kind: KindConflict, Message: err.Error()}
	case errors.Is(err, apperrors.ErrInvalidAudio):
		return &APIError{Kind: KindBadRequest, Message: err.Error()}
	case errors.Is(err, apperrors.ErrEmptyProfile):
		return &APIError{Kind: KindBadRequest, Message: err.Error()}
	case errors.Is(err, apperrors.ErrNoAudio):
		return &APIError{Kind: KindBadRequest, Message: err.Error()}
	case errors.Is(err, apperrors.ErrMergeFailed):
		return &APIError{Kind: KindInternal, Message: err.Error()}
	case errors.Is(err, apperrors.ErrTranscriptionFailed):
		return &APIError{Kind: KindServiceUnavailable, Message: err.Error()}
	case errors.Is(err, apperrors.ErrProviderFailure):
		return &APIError{Kind: KindServiceUnavailable, Message: err.Error()}
	default:
		return &APIError{Kind: KindInternal, Message: "internal server error"}
	}
}
