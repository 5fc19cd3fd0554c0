package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, etc).
	ErrCodeConnection
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit
	// ErrCodeValidation indicates any other 4xx response.
	ErrCodeValidation
	// ErrCodeServer indicates a server-side error (5xx) or an unexpected status.
	ErrCodeServer
	// ErrCodeInvalidRequest indicates the request could not be built
	// (malformed URL, unencodable body). Nothing was sent.
	ErrCodeInvalidRequest
)

var errorCodeNames = map[ErrorCode]string{
	ErrCodeTimeout:        "timeout",
	ErrCodeConnection:     "connection",
	ErrCodeAuth:           "auth",
	ErrCodeNotFound:       "not_found",
	ErrCodeRateLimit:      "rate_limit",
	ErrCodeValidation:     "validation",
	ErrCodeServer:         "server",
	ErrCodeInvalidRequest: "invalid_request",
}

// String returns the error code name.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Error is a structured HTTP client error with classification.
type Error struct {
	// StatusCode is the HTTP status code (0 when no response was received).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Body is the original response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func wrapError(code ErrorCode, err error) *Error {
	return &Error{Code: code, Message: err.Error(), Err: err}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error { return wrapError(ErrCodeTimeout, err) }

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error { return wrapError(ErrCodeConnection, err) }

// NewInvalidRequestError creates an error for a request that could not be built.
func NewInvalidRequestError(err error) *Error { return wrapError(ErrCodeInvalidRequest, err) }

// NewStatusError creates an error for a received non-2xx response.
func NewStatusError(code ErrorCode, statusCode int, body []byte) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       code,
		Message:    fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Body:       body,
	}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return NewStatusError(ErrCodeAuth, statusCode, body)
	case statusCode == http.StatusNotFound:
		return NewStatusError(ErrCodeNotFound, statusCode, body)
	case statusCode == http.StatusTooManyRequests:
		return NewStatusError(ErrCodeRateLimit, statusCode, body)
	case statusCode >= 400 && statusCode < 500:
		return NewStatusError(ErrCodeValidation, statusCode, body)
	default:
		return NewStatusError(ErrCodeServer, statusCode, body)
	}
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool { return hasCode(err, ErrCodeConnection) }

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool { return hasCode(err, ErrCodeAuth) }

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool { return hasCode(err, ErrCodeRateLimit) }

// IsServerError checks if an error is a server error.
func IsServerError(err error) bool { return hasCode(err, ErrCodeServer) }

// IsInvalidRequest checks if the request could not be built.
func IsInvalidRequest(err error) bool { return hasCode(err, ErrCodeInvalidRequest) }

// StatusCodeOf returns the HTTP status carried by err, if any.
func StatusCodeOf(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.StatusCode > 0 {
		return e.StatusCode, true
	}
	return 0, false
}
