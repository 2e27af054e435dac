package carrier

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies every failure a proxied call can end in.
type Kind int

const (
	// KindInternal is anything not classified below.
	KindInternal Kind = iota
	// KindCallerInput is a missing or invalid caller parameter.
	KindCallerInput
	// KindConfiguration is missing credentials or endpoint settings.
	KindConfiguration
	// KindAuthentication is a failed token exchange.
	KindAuthentication
	// KindProtocol is an unparseable, unreachable or timed-out upstream.
	KindProtocol
	// KindApplication is a structured upstream error with a non-success status.
	KindApplication
)

// String returns the outcome label used in logs, metrics and audit rows.
func (k Kind) String() string {
	switch k {
	case KindCallerInput:
		return "caller_input_error"
	case KindConfiguration:
		return "configuration_error"
	case KindAuthentication:
		return "authentication_error"
	case KindProtocol:
		return "protocol_error"
	case KindApplication:
		return "application_error"
	default:
		return "internal_error"
	}
}

// Error is the normalized failure of a proxied call.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Fields names the missing caller parameters.
	Fields []string
	// Details is the upstream's structured error body.
	Details json.RawMessage
	// Raw is the upstream body when it was not JSON.
	Raw string
	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Status != 0 {
		fmt.Fprintf(&sb, " (%d)", e.Status)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus is the status answered to the caller.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindCallerInput:
		return http.StatusBadRequest
	case KindConfiguration, KindInternal:
		return http.StatusInternalServerError
	case KindAuthentication:
		return http.StatusBadGateway
	case KindProtocol, KindApplication:
		if e.Status >= 400 {
			return e.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// MissingParams reports missing caller parameters.
func MissingParams(fields ...string) *Error {
	return &Error{
		Kind:    KindCallerInput,
		Status:  http.StatusBadRequest,
		Message: "Missing required parameters: " + strings.Join(fields, ", "),
		Fields:  fields,
	}
}

// InvalidParam reports a parameter that is present but not acceptable.
func InvalidParam(field, message string) *Error {
	return &Error{
		Kind:    KindCallerInput,
		Status:  http.StatusBadRequest,
		Message: message,
		Fields:  []string{field},
	}
}

// Misconfigured reports missing server settings without naming their values.
func Misconfigured(action string) *Error {
	return &Error{
		Kind:    KindConfiguration,
		Status:  http.StatusInternalServerError,
		Message: "Server configuration error: carrier settings for " + action + " are incomplete",
	}
}

// Internal wraps an unclassified failure.
func Internal(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Message: "An unexpected error occurred",
		Err:     err,
	}
}

// KindOf returns the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Kind
	}
	return KindInternal
}

// AsError normalizes any error into *Error.
func AsError(err error) *Error {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr
	}
	return Internal(err)
}

// isClientRejection keeps 4xx carrier rejections and failed token exchanges
// from tripping the breaker. Both must reach the caller as classified.
func isClientRejection(err error) bool {
	var cerr *Error
	if !errors.As(err, &cerr) {
		return false
	}
	switch cerr.Kind {
	case KindAuthentication:
		return true
	case KindApplication:
		return cerr.Status >= 400 && cerr.Status < 500
	}
	return false
}
