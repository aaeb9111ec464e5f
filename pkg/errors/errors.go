package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	// CodeValidation marks input rejected locally before any network call.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeUnauthorized marks calls made without a usable session.
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	// CodeAPI marks an envelope with success=false; Message carries the
	// server's message verbatim.
	CodeAPI Code = "API_ERROR"
	// CodeTransport marks network failures and unparseable responses.
	CodeTransport Code = "TRANSPORT_ERROR"
	CodeInternal  Code = "INTERNAL_ERROR"
)

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

// Message returns the human-readable text exactly as it should be shown to
// the user. For CodeAPI this is the backend envelope's message string.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// MessageOf extracts the displayable message from any error, falling back to
// Error() for non-coded errors.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	if typed := As(err); typed != nil {
		return typed.Message()
	}
	return err.Error()
}
