// Package apperr carries the error taxonomy shared by services and
// controllers: every business failure is one of six kinds, and the kind alone
// decides the HTTP status while the message carries the specific reason.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindAuthentication
	KindPermission
	KindValidation
	KindNotFound
	KindConflict
	KindDependency
)

type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the cause for logs while the message stays safe to surface.
func Wrap(kind Kind, message string, cause error) error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func Authentication(message string) error { return New(KindAuthentication, message) }
func Permission(message string) error     { return New(KindPermission, message) }
func Validation(message string) error     { return New(KindValidation, message) }
func NotFound(message string) error       { return New(KindNotFound, message) }
func Conflict(message string) error       { return New(KindConflict, message) }

// Dependency wraps a persistence/gateway failure. The message names the
// operation only; the cause (which may contain a DSN) is for logs.
func Dependency(message string, cause error) error {
	return Wrap(KindDependency, message, cause)
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MessageOf returns the user-facing reason without the wrapped cause.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindPermission:
		return http.StatusForbidden
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
