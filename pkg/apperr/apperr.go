// Package apperr carries the error taxonomy shared by the service and HTTP
// layers. Every classified error maps to a single HTTP status; anything
// unclassified is treated as a server error and never leaks detail.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func Validation(msg string) error     { return newErr(KindValidation, msg) }
func Authentication(msg string) error { return newErr(KindAuthentication, msg) }
func Authorization(msg string) error  { return newErr(KindAuthorization, msg) }
func NotFound(msg string) error       { return newErr(KindNotFound, msg) }
func Conflict(msg string) error       { return newErr(KindConflict, msg) }

func Validationf(format string, args ...interface{}) error {
	return newErr(KindValidation, fmt.Sprintf(format, args...))
}

// Wrap annotates an internal failure without classifying it. The result maps
// to a 500 and the annotation stays out of the response body.
func Wrap(err error, msg string) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// HTTPStatus maps a classified error to its status; unclassified errors are 500.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage is what goes into the response body. Unclassified errors get a
// generic message; the real cause is for the server log only.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Server error"
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
