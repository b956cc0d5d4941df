package webpdf

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"

	// Fetch failures. EFETCH covers network errors and timeouts, ESTATUS a
	// response outside the 2xx range, ENOTHTML a response whose content type
	// was rejected.
	EFETCH   = "fetch"
	ESTATUS  = "status"
	ENOTHTML = "not_html"

	ERENDER  = "render"
	EMERGE   = "merge"
	ECLEANUP = "cleanup"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("webpdf error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// IsFetchError reports whether err is one of the page-local fetch failures.
func IsFetchError(err error) bool {
	switch ErrorCode(err) {
	case EFETCH, ESTATUS, ENOTHTML:
		return true
	}
	return false
}
