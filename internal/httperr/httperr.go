package httperr

import (
	"errors"
	"net/http"
)

// Kind classifies a business error and drives the HTTP status mapping.
type Kind int

const (
	KindValidation Kind = iota // malformed or missing input
	KindNotFound               // entity absent or outside tenant scope
	KindConflict               // interval overlap, duplicate enrollment, capacity
	KindState                  // illegal status transition
	KindStorage                // backing-store failure
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Code + ": " + e.cause.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.cause }

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func State(code, message string) *Error {
	return &Error{Kind: KindState, Code: code, Message: message}
}

func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Code: "storage_error", Message: "Internal server error", cause: err}
}

// From extracts a typed error, wrapping anything unrecognized as storage.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Storage(err)
}

func IsCode(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindState:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
