// Package llm implements the provider adapter, model resolver and
// resilient request executor for the remote completion API.
package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request failure. The kind decides both the retry
// policy and the HTTP-equivalent status reported to callers.
type Kind string

const (
	KindConfiguration     Kind = "configuration"
	KindAuthentication    Kind = "authentication"
	KindEndpointNotFound  Kind = "endpoint_not_found"
	KindTransient         Kind = "transient"
	KindMalformedResponse Kind = "malformed_response"
)

// Error wraps a classified failure with an HTTP-equivalent status and a
// caller-safe message.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// ConfigError reports a missing or invalid credential, URL or model. Never
// retried.
func ConfigError(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// AuthError reports a 401 from the provider. Terminal, no retry.
func AuthError(format string, args ...any) *Error {
	return &Error{Kind: KindAuthentication, Status: http.StatusUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a 404 from the provider. Terminal, no retry.
func NotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindEndpointNotFound, Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// TransientError reports a 5xx or transport failure, retried up to the
// configured budget before becoming terminal.
func TransientError(status int, format string, args ...any) *Error {
	if status == 0 {
		status = http.StatusBadGateway
	}
	return &Error{Kind: KindTransient, Status: status, Message: fmt.Sprintf(format, args...)}
}

// MalformedError reports an empty, unparseable or field-missing 200
// response. Terminal, since the defect is structural.
func MalformedError(format string, args ...any) *Error {
	return &Error{Kind: KindMalformedResponse, Status: http.StatusBadGateway, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts an *Error from err, wrapping unknown errors as a 502
// transient failure.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindTransient, Status: http.StatusBadGateway, Message: err.Error(), Err: err}
}
