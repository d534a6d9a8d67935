package anyhttp

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// InternalErrorCode is the machine-readable code of every error that is not a domain error.
const InternalErrorCode = "internal_error"

// GenericErrorMessage is sent when no better message can be derived.
const GenericErrorMessage = "An unexpected error occurred."

// ErrorBody is the wire format of every error response.
type ErrorBody struct {
	Error ErrorPayload `json:"error"`
}

// ErrorPayload is the inner object of an [ErrorBody].
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Translated is a status and body ready to be written as JSON.
type Translated struct {
	Status int
	Body   ErrorBody
}

// Translator maps failures to error responses.
type Translator struct {
	// RedactInternal replaces the message of non-domain errors with [GenericErrorMessage].
	RedactInternal bool
}

// Translate maps any failure value with the zero [Translator].
func Translate(v any) Translated { return Translator{}.Translate(v) }

// Translate maps a failure value, typically an error or a recovered panic value.
func (t Translator) Translate(v any) Translated {
	if err, ok := v.(error); ok {
		if derr, ok := asError(err); ok {
			return Translated{
				Status: SanitizeStatus(int(derr.Code())),
				Body: ErrorBody{Error: ErrorPayload{
					Code:    derr.Kind(),
					Message: derr.Message(),
					Details: derr.Details(),
				}},
			}
		}

		var perr *PanicError
		if errors.As(err, &perr) {
			v = perr.Value
		}
	}

	msg := GenericErrorMessage
	if !t.RedactInternal {
		msg = messageOf(v)
	}

	return Translated{
		Status: http.StatusInternalServerError,
		Body:   ErrorBody{Error: ErrorPayload{Code: InternalErrorCode, Message: msg}},
	}
}

func messageOf(v any) string {
	switch tv := v.(type) {
	case error:
		if msg := tv.Error(); msg != "" {
			return msg
		}
	case string:
		return tv
	}

	return GenericErrorMessage
}

// SanitizeStatus replaces statuses that cannot carry a JSON body with 500.
func SanitizeStatus(status int) int {
	if status < 100 || status > 599 {
		return http.StatusInternalServerError
	}

	switch status {
	case http.StatusSwitchingProtocols, http.StatusNoContent, http.StatusResetContent, http.StatusNotModified:
		return http.StatusInternalServerError
	default:
		return status
	}
}

// PanicError carries a value recovered from a panicking handler.
type PanicError struct {
	Value any
}

// Recovered wraps a recovered panic value. It returns nil for a nil value.
func Recovered(v any) error {
	if v == nil {
		return nil
	}

	return errors.WithStack(&PanicError{Value: v})
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// Unwrap exposes panics with an error value, so domain errors raised through panic keep their
// status.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
