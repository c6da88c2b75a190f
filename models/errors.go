package models

import (
	"errors"
	"fmt"
	"net/http"
)

// GenericError carries an explicit status code and a message that is safe to
// return to the caller verbatim.
type GenericError struct {
	Message string
	Status  int
}

func (e *GenericError) Error() string { return e.Message }

// StatusCode returns the HTTP status the error should be served with.
func (e *GenericError) StatusCode() int { return e.Status }

// NewGenericError creates a GenericError with the given status code.
func NewGenericError(message string, status int) *GenericError {
	return &GenericError{Message: message, Status: status}
}

// ValidationError marks missing, malformed, or out-of-range input. Always
// client fault.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for a named field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// MissingParameter reports a required parameter that was absent.
func MissingParameter(name string) *ValidationError {
	return &ValidationError{Field: name, Message: "missing required parameter"}
}

// PrecisionError marks a failed decimal-to-chain-units conversion.
type PrecisionError struct {
	Message string
}

func (e *PrecisionError) Error() string { return e.Message }

// AccountResolutionError marks an unsupported currency/cluster pair during
// token account resolution.
type AccountResolutionError struct {
	Message string
}

func (e *AccountResolutionError) Error() string { return e.Message }

// UpstreamError wraps a failed ledger RPC or registry call. The protocol has
// no server-fault code path, so it still surfaces as a 400-class response,
// but it is logged at error severity for operational visibility.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstreamError wraps err with the upstream operation that failed.
func NewUpstreamError(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}

// ErrorStatus maps an error to the HTTP status it should be served with.
// Everything in this protocol is 400-class.
func ErrorStatus(err error) int {
	var ge *GenericError
	if errors.As(err, &ge) {
		return ge.Status
	}
	return http.StatusBadRequest
}

// ErrorMessage maps an error to the client-visible message. Typed errors
// keep their message; anything unrecognized is masked so internals never
// leak through the protocol boundary.
func ErrorMessage(err error) string {
	var ge *GenericError
	if errors.As(err, &ge) {
		return ge.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	var pe *PrecisionError
	if errors.As(err, &pe) {
		return pe.Message
	}
	var ae *AccountResolutionError
	if errors.As(err, &ae) {
		return ae.Message
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Error()
	}
	return "An unknown error occurred"
}

// IsUpstream reports whether err originated in an upstream call.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
