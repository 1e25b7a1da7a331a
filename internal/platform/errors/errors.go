// Package errors is the structured error every layer returns:
// a stable code, a caller facing message and the wrapped cause.
// Import it as perr.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine facing class of an error, values are part of the wire format
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	ErrorCodeConflict
	ErrorCodeUnauthorized
	ErrorCodeForbidden
	ErrorCodeInvalidArgument
	ErrorCodeValidation
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB
	ErrorCodeMethodNotAllowed
	ErrorCodeTooLarge
)

var statusOf = map[ErrorCode]int{
	ErrorCodeUnavailable:      http.StatusServiceUnavailable,
	ErrorCodeTooManyRequests:  http.StatusTooManyRequests,
	ErrorCodeConflict:         http.StatusConflict,
	ErrorCodeUnauthorized:     http.StatusUnauthorized,
	ErrorCodeForbidden:        http.StatusForbidden,
	ErrorCodeInvalidArgument:  http.StatusBadRequest,
	ErrorCodeValidation:       http.StatusUnprocessableEntity,
	ErrorCodeJSON:             http.StatusBadRequest,
	ErrorCodeNotFound:         http.StatusNotFound,
	ErrorCodeDuplicateKey:     http.StatusConflict,
	ErrorCodeMethodNotAllowed: http.StatusMethodNotAllowed,
	ErrorCodeTooLarge:         http.StatusRequestEntityTooLarge,
}

// HTTPStatusCode is the response status for c, anything unmapped is a 500
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusOf[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// FieldError is one rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Wire is what an error looks like on the wire
type Wire struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Field   string       `json:"field,omitempty"`
	Details []FieldError `json:"errors,omitempty"`
}

// Error is immutable, the With helpers return modified copies
type Error struct {
	code    ErrorCode
	msg     string
	field   string
	details []FieldError
	orig    error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig != nil:
		return e.msg + ": " + e.orig.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error         { return e.orig }
func (e *Error) Code() ErrorCode       { return e.code }
func (e *Error) Field() string         { return e.field }
func (e *Error) Details() []FieldError { return e.details }

func (e *Error) clone() *Error {
	c := *e
	return &c
}

// As finds the first *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// Root is the innermost cause in err's chain
func Root(err error) error {
	for {
		next := stderrs.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// CodeOf is ErrorCodeUnknown for errors that are not ours
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is the response status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// WireFrom renders err for a client. Server side failures and foreign
// errors all read "internal server error" so causes never leak.
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	e, ok := As(err)
	if !ok || HTTPStatusCode(e.code) >= http.StatusInternalServerError {
		return Wire{Code: CodeOf(err), Message: "internal server error"}
	}
	return Wire{Code: e.code, Message: e.msg, Field: e.field, Details: e.details}
}

// WithField names the offending input, foreign errors pass through untouched
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := e.clone()
	c.field = field
	return c
}

// WithDetails appends per field rejections, the first one also becomes
// the field when none is set
func WithDetails(err error, details ...FieldError) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := e.clone()
	c.details = append(append([]FieldError(nil), e.details...), details...)
	if c.field == "" && len(c.details) > 0 {
		c.field = c.details[0].Field
	}
	return c
}

func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

// Wrap keeps orig reachable through errors.Is and errors.As
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return Wrap(orig, code, fmt.Sprintf(format, a...))
}

func NotFoundf(format string, a ...any) error     { return Newf(ErrorCodeNotFound, format, a...) }
func InvalidArgf(format string, a ...any) error   { return Newf(ErrorCodeInvalidArgument, format, a...) }
func DuplicateKeyf(format string, a ...any) error { return Newf(ErrorCodeDuplicateKey, format, a...) }
func JSONErrf(format string, a ...any) error      { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error     { return Newf(ErrorCodePanic, format, a...) }
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }
func Forbiddenf(format string, a ...any) error    { return Newf(ErrorCodeForbidden, format, a...) }
func Conflictf(format string, a ...any) error     { return Newf(ErrorCodeConflict, format, a...) }
func Unavailablef(format string, a ...any) error  { return Newf(ErrorCodeUnavailable, format, a...) }
func Validationf(format string, a ...any) error   { return Newf(ErrorCodeValidation, format, a...) }

func TooManyRequestsf(format string, a ...any) error {
	return Newf(ErrorCodeTooManyRequests, format, a...)
}
