// marketmint/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into the category that decides its HTTP status.
type Kind int

const (
	KindValidation Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindUpstream
	KindUpstreamFormat
	KindStorage
)

type Error struct {
	Kind Kind
	Msg  string
	// Status is the upstream HTTP status, set only for KindUpstream.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Upstream records a non-2xx reply from a third-party API. The body is kept
// for diagnostics only and must already be truncated by the caller.
func Upstream(status int, body string) *Error {
	return &Error{
		Kind:   KindUpstream,
		Msg:    fmt.Sprintf("upstream returned status %d: %s", status, body),
		Status: status,
	}
}

func UpstreamFormatf(format string, args ...any) *Error {
	return &Error{Kind: KindUpstreamFormat, Msg: fmt.Sprintf(format, args...)}
}

func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Msg: "storage failure", Err: err}
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == k
	}
	return false
}

// HTTPStatus maps an error to the status code routes should answer with.
// Unclassified errors are treated as internal.
func HTTPStatus(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstream:
		return http.StatusBadGateway
	case KindUpstreamFormat, KindStorage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
