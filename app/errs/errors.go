package errs

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Validation Kind = iota + 1
	RateLimit
	Authentication
	Authorization
	Conflict
	Capacity
	Store
)

// Error carries the outcome kind alongside the message rendered to clients.
// RetryAfter is set in minutes on RateLimit errors only. The wrapped cause
// never reaches a response body.
type Error struct {
	Kind       Kind
	Message    string
	RetryAfter int
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func RateLimited(message string, retryAfter int) *Error {
	return &Error{Kind: RateLimit, Message: message, RetryAfter: retryAfter}
}

// HTTPStatus maps an error to its response code. Anything outside the
// taxonomy is a 500.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case RateLimit:
		return http.StatusTooManyRequests
	case Authentication:
		return http.StatusUnauthorized
	case Authorization, Capacity:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for an error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error."
}

// RetryAfterMinutes returns the retry hint, or zero when the error carries none.
func RetryAfterMinutes(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.RetryAfter
	}
	return 0
}
