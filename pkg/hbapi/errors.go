package hbapi

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the library can surface. The set is
// closed: callers can switch on it exhaustively.
type ErrorKind string

const (
	// ErrorKindNotAuthenticated means an operation requiring a session was
	// called before Login (or after Logout).
	ErrorKindNotAuthenticated ErrorKind = "not_authenticated"

	// ErrorKindUnauthorized means the server rejected the API key (HTTP 401).
	ErrorKindUnauthorized ErrorKind = "unauthorized"

	// ErrorKindInvalidArgument means an id, site name, or hostname failed
	// client-side validation before any network call.
	ErrorKindInvalidArgument ErrorKind = "invalid_argument"

	// ErrorKindMalformedResponse means the response body did not match the
	// expected envelope or result shape.
	ErrorKindMalformedResponse ErrorKind = "malformed_response"

	// ErrorKindRequestFailed means the server reported success=false.
	ErrorKindRequestFailed ErrorKind = "request_failed"

	// ErrorKindUnimplemented marks operations the remote API exposes but the
	// client does not support yet (stack materialization).
	ErrorKindUnimplemented ErrorKind = "unimplemented"

	// ErrorKindSiteDeleted means a Site object was used after its remote
	// resource was deleted through it.
	ErrorKindSiteDeleted ErrorKind = "site_deleted"

	// ErrorKindDomainNotFound means a hostname is not attached to the site.
	ErrorKindDomainNotFound ErrorKind = "domain_not_found"
)

// APIError is the structured error returned by all client operations.
type APIError struct {
	Kind    ErrorKind `json:"kind"                  yaml:"kind"`
	Message string    `json:"message"               yaml:"message"`
	// HTTPStatus is the underlying HTTP status code, or 0 when the error
	// did not originate from an HTTP response.
	HTTPStatus int `json:"http_status,omitempty" yaml:"http_status,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("%s: %s (status: %d)", e.Kind, e.Message, e.HTTPStatus)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError creates an APIError of the given kind.
func NewError(kind ErrorKind, format string, args ...interface{}) *APIError {
	return &APIError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewHTTPError creates an APIError carrying the originating HTTP status.
func NewHTTPError(kind ErrorKind, status int, format string, args ...interface{}) *APIError {
	return &APIError{
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: status,
	}
}

func isKind(err error, kind ErrorKind) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}

	return false
}

// IsNotAuthenticated checks if the error is a missing-session error.
func IsNotAuthenticated(err error) bool {
	return isKind(err, ErrorKindNotAuthenticated)
}

// IsUnauthorized checks if the error is an HTTP 401 rejection.
func IsUnauthorized(err error) bool {
	return isKind(err, ErrorKindUnauthorized)
}

// IsInvalidArgument checks if the error is a client-side validation failure.
func IsInvalidArgument(err error) bool {
	return isKind(err, ErrorKindInvalidArgument)
}

// IsMalformedResponse checks if the error is an unexpected-shape failure.
func IsMalformedResponse(err error) bool {
	return isKind(err, ErrorKindMalformedResponse)
}

// IsRequestFailed checks if the error is a server-reported failure.
func IsRequestFailed(err error) bool {
	return isKind(err, ErrorKindRequestFailed)
}

// IsUnimplemented checks if the error marks an unsupported operation.
func IsUnimplemented(err error) bool {
	return isKind(err, ErrorKindUnimplemented)
}

// IsSiteDeleted checks if the error is a use-after-delete failure.
func IsSiteDeleted(err error) bool {
	return isKind(err, ErrorKindSiteDeleted)
}

// IsDomainNotFound checks if the error is an unknown-hostname failure.
func IsDomainNotFound(err error) bool {
	return isKind(err, ErrorKindDomainNotFound)
}

// Static errors for configuration-level failures.
var (
	ErrConfigRequired   = errors.New("config is required")
	ErrEndpointRequired = errors.New("API endpoint is required")
	ErrNilOperations    = errors.New("site operations must not be nil")
)
