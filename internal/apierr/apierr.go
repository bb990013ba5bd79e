package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes carried to the HTTP envelope.
const (
	CodeValidation      = "validation_error"
	CodeInvalidState    = "invalid_state"
	CodeInvalidArgument = "invalid_argument"
	CodeNotFound        = "not_found"
	CodeQuotaExceeded   = "quota_exceeded"
	CodeInternal        = "internal_error"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

func InvalidState(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeInvalidState, fmt.Errorf(format, args...))
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeInvalidArgument, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func QuotaExceeded(format string, args ...interface{}) *Error {
	return New(http.StatusForbidden, CodeQuotaExceeded, fmt.Errorf(format, args...))
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// From maps any error onto an *Error, defaulting to a 500 internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}
