package client

import (
	"errors"
	"fmt"
)

// Kind classifies a failed request.
type Kind int

const (
	// KindUnexpected is anything that is not an *APIError.
	KindUnexpected Kind = iota
	// KindUnauthenticated means no local credential was available.
	KindUnauthenticated
	// KindNetworkUnreachable means no response was obtained.
	KindNetworkUnreachable
	// KindHTTP means the server answered with a non-2xx status.
	KindHTTP
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNetworkUnreachable:
		return "network_unreachable"
	case KindHTTP:
		return "http_error"
	default:
		return "unexpected"
	}
}

// User-facing messages for the locally synthesized failures.
const (
	MsgNoSession   = "No hay una sesión activa."
	MsgUnreachable = "No se pudo conectar con el backend."
)

// APIError is the single error type a request fails with.
// Status 0 means no response was obtained.
type APIError struct {
	Kind      Kind
	Status    int
	Message   string
	AuthIssue bool
	cause     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// NewHTTPError builds a KindHTTP error the way a backend response would
// produce it, so non-network backends can fail with the same shape.
func NewHTTPError(status int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("Error HTTP %d", status)
	}
	return &APIError{
		Kind:      KindHTTP,
		Status:    status,
		Message:   message,
		AuthIssue: mentionsToken(message),
	}
}

// NewUnauthenticatedError is the failure for a protected call made without a
// stored credential.
func NewUnauthenticatedError() *APIError {
	return errUnauthenticated()
}

func errUnauthenticated() *APIError {
	return &APIError{Kind: KindUnauthenticated, Status: 401, Message: MsgNoSession, AuthIssue: true}
}

func errUnreachable(cause error) *APIError {
	return &APIError{Kind: KindNetworkUnreachable, Status: 0, Message: MsgUnreachable, cause: cause}
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf classifies err.
func KindOf(err error) Kind {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Kind
	}
	return KindUnexpected
}

// IsStatus returns true if err (or any wrapped error) is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Status == code
	}
	return false
}

// IsAuthFailure reports whether err means the stored credential is unusable.
func IsAuthFailure(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && (apiErr.AuthIssue || apiErr.Status == 401)
}
