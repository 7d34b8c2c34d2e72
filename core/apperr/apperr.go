package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind classifies an application error.
type Kind int

const (
	// KindUnknown is the zero value; errors without a kind map to 500.
	KindUnknown Kind = iota
	// KindNotFound means a referenced entity does not resolve to an active row.
	KindNotFound
	// KindValidation means the request shape is malformed.
	KindValidation
	// KindScopeConflict means an update targets a row owned by a different scope.
	KindScopeConflict
	// KindUnauthorized means the caller is not authenticated.
	KindUnauthorized
	// KindPersistence means a write did not take effect when one was expected.
	KindPersistence
)

// Error is the application error type. It carries a kind for HTTP mapping
// and optionally wraps a cause.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Kind returns the error classification.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the user-facing message without the wrapped cause.
func (e *Error) Message() string { return e.msg }

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

// Validation builds a KindValidation error.
func Validation(format string, args ...any) *Error {
	return &Error{kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

// ScopeConflict builds a KindScopeConflict error.
func ScopeConflict(format string, args ...any) *Error {
	return &Error{kind: KindScopeConflict, msg: fmt.Sprintf(format, args...)}
}

// Unauthorized builds a KindUnauthorized error.
func Unauthorized(format string, args ...any) *Error {
	return &Error{kind: KindUnauthorized, msg: fmt.Sprintf(format, args...)}
}

// Persistence builds a KindPersistence error wrapping cause (cause may be nil).
func Persistence(cause error, format string, args ...any) *Error {
	return &Error{kind: KindPersistence, msg: fmt.Sprintf(format, args...), err: cause}
}

// KindOf extracts the kind from err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

// HTTPStatus maps an error to the HTTP status code the API returns for it.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return fiber.StatusNotFound
	case KindValidation:
		return fiber.StatusUnprocessableEntity
	case KindScopeConflict:
		return fiber.StatusConflict
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// IsClient reports whether the error is safe to surface to the caller verbatim.
// Persistence and unknown failures are internal; their details must not leak.
func IsClient(err error) bool {
	switch KindOf(err) {
	case KindNotFound, KindValidation, KindScopeConflict, KindUnauthorized:
		return true
	default:
		return false
	}
}
