// Package httpx carries the shared HTTP plumbing for the GitHub adapters:
// a typed error taxonomy, exponential backoff retry, and request logging.
package httpx

import "fmt"

// ErrorType represents the category of error that occurred.
type ErrorType int

const (
	ErrTypeAuthentication ErrorType = iota
	ErrTypeRateLimit
	ErrTypeNotFound
	ErrTypeValidation
	ErrTypeServiceUnavailable
	ErrTypeTimeout
	ErrTypeUnknown
)

// String returns a human-readable description of the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeAuthentication:
		return "authentication error"
	case ErrTypeRateLimit:
		return "rate limit exceeded"
	case ErrTypeNotFound:
		return "not found"
	case ErrTypeValidation:
		return "validation failed"
	case ErrTypeServiceUnavailable:
		return "service unavailable"
	case ErrTypeTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error represents an HTTP client error with additional context.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Retryable  bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("github: %s: %s (status: %d)", e.Type.String(), e.Message, e.StatusCode)
}

// Is implements error equality checking for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// IsRetryable returns true if the error is retryable.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// NewAuthenticationError creates a new authentication error.
func NewAuthenticationError(message string) *Error {
	return &Error{Type: ErrTypeAuthentication, Message: message, StatusCode: 401, Retryable: false}
}

// NewRateLimitError creates a new rate limit error.
func NewRateLimitError(message string) *Error {
	return &Error{Type: ErrTypeRateLimit, Message: message, StatusCode: 429, Retryable: true}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(message string) *Error {
	return &Error{Type: ErrTypeNotFound, Message: message, StatusCode: 404, Retryable: false}
}

// NewValidationError creates a new validation error.
func NewValidationError(message string) *Error {
	return &Error{Type: ErrTypeValidation, Message: message, StatusCode: 422, Retryable: false}
}

// NewServiceUnavailableError creates a new service unavailable error.
func NewServiceUnavailableError(message string) *Error {
	return &Error{Type: ErrTypeServiceUnavailable, Message: message, StatusCode: 503, Retryable: true}
}

// NewTimeoutError creates a new timeout error.
func NewTimeoutError(message string) *Error {
	return &Error{Type: ErrTypeTimeout, Message: message, StatusCode: 0, Retryable: true}
}

// MapStatus converts an HTTP status code and response body into a typed
// error. Unmapped 4xx codes are non-retryable; 5xx codes are retryable.
func MapStatus(statusCode int, body string) *Error {
	switch {
	case statusCode == 401:
		return NewAuthenticationError(body)
	case statusCode == 403 || statusCode == 429:
		err := NewRateLimitError(body)
		err.StatusCode = statusCode
		return err
	case statusCode == 404:
		return NewNotFoundError(body)
	case statusCode == 422:
		return NewValidationError(body)
	case statusCode >= 500:
		err := NewServiceUnavailableError(body)
		err.StatusCode = statusCode
		return err
	default:
		return &Error{Type: ErrTypeUnknown, Message: body, StatusCode: statusCode, Retryable: false}
	}
}
