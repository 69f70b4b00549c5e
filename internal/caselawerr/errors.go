// Package caselawerr defines the stable error taxonomy for the research
// core. Every failure that crosses a tool boundary is one of these codes;
// the dispatcher converts them into error envelopes, never faults.
package caselawerr

import (
	"errors"
	"fmt"
)

// Code represents stable error codes for all failure modes
type Code string

const (
	// InvalidInput indicates bad arguments caught before any network call
	InvalidInput Code = "INVALID_INPUT"
	// NotFound indicates an upstream 404 or an empty result set for an
	// identifier lookup
	NotFound Code = "NOT_FOUND"
	// UpstreamFailure indicates a network error or 5xx from the case-law API
	UpstreamFailure Code = "UPSTREAM_FAILURE"
	// RateLimited indicates a 429 from the case-law API. Not retried here;
	// retry policy belongs to the caller.
	RateLimited Code = "RATE_LIMITED"
	// PartialResult indicates some sub-fetches failed but enough data exists
	// to return a degraded-but-useful answer
	PartialResult Code = "PARTIAL_RESULT"
	// Internal indicates an unexpected error
	Internal Code = "INTERNAL_ERROR"
)

// Error is a coded research error with an actionable suggestion and the
// failing parameters attached as context.
type Error struct {
	Code       Code                   `json:"code"`
	Message    string                 `json:"message"`
	Suggestion string                 `json:"suggestion,omitempty"`
	Context    map[string]interface{} `json:"context,omitempty"`
	cause      error
}

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message, Suggestion: defaultSuggestions[code]}
}

// Wrap creates a coded error around an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Suggestion: defaultSuggestions[code], cause: cause}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithSuggestion replaces the default suggestion.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithContext attaches one failing parameter to the error.
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// defaultSuggestions maps codes to generic corrective guidance. Tool
// handlers override these with parameter-specific text where they can.
var defaultSuggestions = map[Code]string{
	InvalidInput:    "Check the tool's input schema and adjust the arguments.",
	NotFound:        "Verify the identifier, or search again with broader criteria.",
	UpstreamFailure: "The case-law service did not respond normally. Try again shortly.",
	RateLimited:     "The case-law service rate limit was hit. Wait before retrying, or configure an API token for a higher ceiling.",
	PartialResult:   "Part of the requested data was unavailable; the returned subset is usable.",
	Internal:        "Unexpected failure. Re-run with debug logging to capture details.",
}

// CodeOf extracts the code from any error. Non-coded errors map to
// Internal; nil maps to the empty code.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Internal
}

// Invalid builds an InvalidInput error naming the offending field.
func Invalid(field, reason string) *Error {
	return New(InvalidInput, fmt.Sprintf("invalid %q: %s", field, reason)).
		WithContext("field", field)
}

// Missing builds an InvalidInput error for an absent required field.
func Missing(field string) *Error {
	return New(InvalidInput, fmt.Sprintf("%q is required", field)).
		WithSuggestion(fmt.Sprintf("Supply the %q argument.", field)).
		WithContext("field", field)
}
