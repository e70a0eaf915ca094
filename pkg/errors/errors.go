package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// User-facing texts for upstream failures.
const (
	MessageBackendUnreachable = "Cannot reach backend API. Ensure backend is running and proxy is configured."
	MessageSessionExpired     = "Session expired. Please login again."
	MessageForbidden          = "You do not have permission to perform this action."
	MessageNotFound           = "Resource not found."
	MessageServerError        = "Server error. Please try again later."
	MessageGeneric            = "An error occurred"
	MessageEmptyResponse      = "Empty response from server."
	MessageNoSubjects         = "No class subjects found. Configure class subjects first."
)

// Predefined errors for common scenarios.
var (
	ErrValidation           = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrMapping              = New("MAPPING_ERROR", http.StatusBadGateway, "malformed backend payload")
	ErrBackendFailure       = New("BACKEND_FAILURE", http.StatusBadGateway, MessageGeneric)
	ErrBackendUnreachable   = New("BACKEND_UNREACHABLE", http.StatusServiceUnavailable, MessageBackendUnreachable)
	ErrSessionExpired       = New("SESSION_EXPIRED", http.StatusUnauthorized, MessageSessionExpired)
	ErrForbidden            = New("FORBIDDEN", http.StatusForbidden, MessageForbidden)
	ErrNotFound             = New("NOT_FOUND", http.StatusNotFound, MessageNotFound)
	ErrUpstreamServer       = New("UPSTREAM_SERVER_ERROR", http.StatusBadGateway, MessageServerError)
	ErrNoSubjectsConfigured = New("NO_SUBJECTS_CONFIGURED", http.StatusPreconditionFailed, MessageNoSubjects)
	ErrGuardFailed          = New("GUARD_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrSaveInProgress       = New("SAVE_IN_PROGRESS", http.StatusConflict, "a save for this record is already in progress")
	ErrUnauthorized         = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrInternal             = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss            = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// FromBackendStatus maps an upstream HTTP status to a user-facing failure.
// Status 0 means the backend could not be reached at all.
func FromBackendStatus(status int, message string) *Error {
	switch status {
	case 0:
		return Clone(ErrBackendUnreachable, "")
	case http.StatusUnauthorized:
		return Clone(ErrSessionExpired, "")
	case http.StatusForbidden:
		return Clone(ErrForbidden, "")
	case http.StatusNotFound:
		return Clone(ErrNotFound, "")
	case http.StatusInternalServerError:
		return Clone(ErrUpstreamServer, "")
	}

	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = MessageGeneric
	}
	out := Clone(ErrBackendFailure, msg)
	if status >= 400 && status < 500 {
		out.Status = status
	}
	return out
}

// IsGuard reports whether err is a business-rule precondition failure that
// should be shown inline rather than as a toast.
func IsGuard(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == ErrNoSubjectsConfigured.Code || e.Code == ErrGuardFailed.Code
}

// Is reports whether err carries the same code as target.
func Is(err error, target *Error) bool {
	var e *Error
	if !errors.As(err, &e) || target == nil {
		return false
	}
	return e.Code == target.Code
}
