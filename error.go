package anyhttp

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Code is an error code that mirrors the http status codes. Domain errors carry one so that the
// error translator can pick the response status.
type Code int

const (
	CodeUnknown               Code = 0
	CodeBadRequest            Code = http.StatusBadRequest            // RFC 9110, 15.5.1
	CodeUnauthorized          Code = http.StatusUnauthorized          // RFC 9110, 15.5.2
	CodeForbidden             Code = http.StatusForbidden             // RFC 9110, 15.5.4
	CodeNotFound              Code = http.StatusNotFound              // RFC 9110, 15.5.5
	CodeMethodNotAllowed      Code = http.StatusMethodNotAllowed      // RFC 9110, 15.5.6
	CodeConflict              Code = http.StatusConflict              // RFC 9110, 15.5.10
	CodeRequestEntityTooLarge Code = http.StatusRequestEntityTooLarge // RFC 9110, 15.5.14
	CodeUnsupportedMediaType  Code = http.StatusUnsupportedMediaType  // RFC 9110, 15.5.16
	CodeUnprocessableEntity   Code = http.StatusUnprocessableEntity   // RFC 9110, 15.5.21
	CodeTooManyRequests       Code = http.StatusTooManyRequests       // RFC 6585, 4

	CodeInternalServerError Code = http.StatusInternalServerError // RFC 9110, 15.6.1
	CodeNotImplemented      Code = http.StatusNotImplemented      // RFC 9110, 15.6.2
	CodeBadGateway          Code = http.StatusBadGateway          // RFC 9110, 15.6.3
	CodeServiceUnavailable  Code = http.StatusServiceUnavailable  // RFC 9110, 15.6.4
	CodeGatewayTimeout      Code = http.StatusGatewayTimeout      // RFC 9110, 15.6.5
)

// Error is a domain error. It carries the response status, a machine-readable code, a message for
// clients and optional structured details.
type Error struct {
	code    Code
	kind    string
	message string
	details any
	err     error
}

// ErrorOption configures an [Error].
type ErrorOption func(*Error)

// WithDetails attaches structured details that are sent to the client.
func WithDetails(details any) ErrorOption {
	return func(e *Error) { e.details = details }
}

// WithCause records the underlying error. It is logged but never sent to the client.
func WithCause(err error) ErrorOption {
	return func(e *Error) { e.err = err }
}

// NewError inits a new domain error.
func NewError(c Code, kind, message string, opts ...ErrorOption) *Error {
	e := &Error{code: c, kind: kind, message: message}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Errorf inits a domain error without details, formatting the message.
func Errorf(c Code, kind, format string, args ...any) *Error {
	return NewError(c, kind, fmt.Sprintf(format, args...))
}

func (e *Error) Code() Code      { return e.code }
func (e *Error) Kind() string    { return e.kind }
func (e *Error) Message() string { return e.message }
func (e *Error) Details() any    { return e.details }
func (e *Error) Unwrap() error   { return e.err }

func (e *Error) Error() string {
	status := http.StatusText(int(e.Code()))
	if status == "" {
		status = "Unknown"
	}

	if e.err != nil {
		return fmt.Sprintf("%s: %s: %s", status, e.message, e.err.Error())
	}

	return fmt.Sprintf("%s: %s", status, e.message)
}

// CodeOf returns the error's status code if it is or wraps an [*Error] and
// [CodeUnknown] otherwise.
func CodeOf(err error) Code {
	if derr, ok := asError(err); ok {
		return derr.Code()
	}

	return CodeUnknown
}

// asError uses errors.As to unwrap any error and look for a domain *Error.
func asError(err error) (*Error, bool) {
	var derr *Error
	ok := errors.As(err, &derr)

	return derr, ok
}

// KindFor returns the machine-readable code used for a bare status, e.g. for framework-generated
// "not found" answers.
func KindFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case http.StatusUnsupportedMediaType:
		return "unsupported_media_type"
	case http.StatusUnprocessableEntity:
		return "validation_failed"
	case http.StatusTooManyRequests:
		return "too_many_requests"
	}

	if status >= 500 {
		return InternalErrorCode
	}

	return "http_error"
}
