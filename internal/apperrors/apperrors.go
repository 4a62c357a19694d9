package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	CodeMissingFields      ErrorCode = "MISSING_FIELDS"
	CodeMissingCredentials ErrorCode = "MISSING_CREDENTIALS"
	CodeDuplicateIdentity  ErrorCode = "DUPLICATE_IDENTITY"
	CodePasswordMismatch   ErrorCode = "PASSWORD_MISMATCH"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeAccountDeactivated ErrorCode = "ACCOUNT_DEACTIVATED"
	CodeInvalidUserType    ErrorCode = "INVALID_USER_TYPE"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// Error is a client-visible failure with a stable code and the HTTP
// status it maps to. The wire shape is {status:false, message}.
type Error struct {
	Code     ErrorCode
	Message  string
	HTTPCode int
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two app errors by code, so the predeclared values below
// work as targets for errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func New(code ErrorCode, message string, httpCode int) *Error {
	return &Error{Code: code, Message: message, HTTPCode: httpCode}
}

// Internal wraps an unexpected failure as a generic server error so
// storage details never leak into a response.
func Internal(err error) *Error {
	return &Error{
		Code:     CodeInternal,
		Message:  "Something went wrong, please try again",
		HTTPCode: http.StatusInternalServerError,
		Err:      err,
	}
}

var (
	ErrMissingFields      = New(CodeMissingFields, "All fields are required", http.StatusBadRequest)
	ErrMissingCredentials = New(CodeMissingCredentials, "matric number or staff id and password are required", http.StatusBadRequest)
	ErrAmbiguousIdentity  = New(CodeMissingCredentials, "provide either a matric number or a staff id, not both", http.StatusBadRequest)
	ErrDuplicateIdentity  = New(CodeDuplicateIdentity, "A user with this matric number exists", http.StatusBadRequest)
	ErrDuplicateStaffID   = New(CodeDuplicateIdentity, "A user with this staff id exists", http.StatusBadRequest)
	ErrPasswordMismatch   = New(CodePasswordMismatch, "Passwords do not match", http.StatusBadRequest)
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid login credentials.", http.StatusUnauthorized)
	ErrAccountDeactivated = New(CodeAccountDeactivated, "Account is deactivated", http.StatusForbidden)
	ErrInvalidUserType    = New(CodeInvalidUserType, "staff_type is not a valid user type", http.StatusBadRequest)
	ErrForbidden          = New(CodeForbidden, "You do not have permission to perform this action", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
)
