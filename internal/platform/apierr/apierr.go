// Package apierr carries an HTTP status and a stable machine code alongside an
// error as it crosses from the services to the handlers. Handlers never build
// status codes themselves; they unwrap one of these.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
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

func BadRequest(code string, err error) *Error {
	return New(http.StatusBadRequest, code, err)
}

func Unauthorized(code string, err error) *Error {
	return New(http.StatusUnauthorized, code, err)
}

func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, err)
}

// Resolve extracts the transport mapping from any error. Errors that never
// went through this package map to a generic 500.
func Resolve(err error) (status int, code string) {
	var ae *Error
	if errors.As(err, &ae) {
		status, code = ae.Status, ae.Code
		if status == 0 {
			status = http.StatusInternalServerError
		}
		if code == "" {
			code = "internal"
		}
		return status, code
	}
	return http.StatusInternalServerError, "internal"
}
