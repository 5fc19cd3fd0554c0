package dataprovider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies data-access failures.
type ErrorKind int

const (
	// KindURL indicates a malformed base URL or composed request URL.
	KindURL ErrorKind = iota
	// KindTransport indicates the backend could not be reached or the
	// response could not be read.
	KindTransport
	// KindStatus indicates a non-2xx HTTP status.
	KindStatus
	// KindDecode indicates a response body that is not the expected JSON.
	KindDecode
	// KindUnknown indicates a violated precondition or invariant, such as a
	// delete with no record to return.
	KindUnknown
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is a classified data-access error.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind
	// Op is the contract operation that failed (e.g. "get_one").
	Op string
	// Resource is the resource name, when known.
	Resource string
	// StatusCode is the HTTP status for KindStatus, 0 otherwise.
	StatusCode int
	// Message describes the failure.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	prefix := "dataprovider: " + e.Kind.String()
	if e.Op != "" {
		prefix += " " + e.Op
	}
	if e.Resource != "" {
		prefix += " " + e.Resource
	}
	if e.Err != nil && e.Message == "" {
		return fmt.Sprintf("%s: %v", prefix, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// NewURLError creates a URL-composition error.
func NewURLError(op, resource string, err error) *Error {
	return &Error{Kind: KindURL, Op: op, Resource: resource, Message: "invalid url", Err: err}
}

// NewTransportError creates a transport error.
func NewTransportError(op, resource string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Resource: resource, Message: "request failed", Err: err}
}

// NewStatusError creates a status error for a non-2xx response.
func NewStatusError(op, resource string, statusCode int) *Error {
	return &Error{
		Kind:       KindStatus,
		Op:         op,
		Resource:   resource,
		StatusCode: statusCode,
		Message:    fmt.Sprintf("received non-success response: %d %s", statusCode, http.StatusText(statusCode)),
	}
}

// NewDecodeError creates a JSON-decode error.
func NewDecodeError(op, resource string, err error) *Error {
	return &Error{Kind: KindDecode, Op: op, Resource: resource, Message: "decode response", Err: err}
}

// NewUnknownError creates a precondition/invariant error.
func NewUnknownError(op, resource, message string) *Error {
	return &Error{Kind: KindUnknown, Op: op, Resource: resource, Message: message}
}

// KindOf returns the kind of a classified error. Unclassified errors report
// KindUnknown and false.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindUnknown, false
}

// StatusCode returns the HTTP status carried by a status error.
func StatusCode(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindStatus {
		return e.StatusCode, true
	}
	return 0, false
}

// IsURLError checks if err is a URL-composition error.
func IsURLError(err error) bool { return isKind(err, KindURL) }

// IsTransportError checks if err is a transport error.
func IsTransportError(err error) bool { return isKind(err, KindTransport) }

// IsStatusError checks if err is a non-success status error.
func IsStatusError(err error) bool { return isKind(err, KindStatus) }

// IsDecodeError checks if err is a JSON-decode error.
func IsDecodeError(err error) bool { return isKind(err, KindDecode) }

// IsUnknownError checks if err is a precondition/invariant error.
func IsUnknownError(err error) bool { return isKind(err, KindUnknown) }

func isKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
