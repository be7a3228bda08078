// Package apperr defines the expected, client-facing failure categories of the
// API. Anything that is not an *Error (or a storage sentinel) is treated as an
// internal failure by the HTTP error dispatcher.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the category discriminator rendered as the "type" field of error bodies.
type Kind string

const (
	KindBusiness   Kind = "business_error"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindValidation Kind = "validation_error"
)

// FieldError describes one invalid input field.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// Error is a classified failure with the status code it should be answered with.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports equality by category, status and message so that wrapped copies of
// a sentinel still match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Status == t.Status && e.Message == t.Message
}

// WithCause returns a copy of e that wraps cause. The cause never reaches clients.
func (e *Error) WithCause(cause error) *Error {
	cp := *e
	cp.cause = cause
	return &cp
}

// Business reports a business-rule violation answered with status.
func Business(status int, message string) *Error {
	return &Error{Kind: KindBusiness, Status: status, Message: message}
}

// NotFound reports a missing resource.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

// Conflict reports a uniqueness violation.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: message}
}

// Validation reports a malformed request shape.
func Validation(fields ...FieldError) *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  http.StatusUnprocessableEntity,
		Message: "validation failed",
		Fields:  fields,
	}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
