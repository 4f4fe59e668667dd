package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies failures of the report and not-found flows.
type ErrorCode string

const (
	// CodeFetchFailure means the pull request list could not be fetched.
	CodeFetchFailure ErrorCode = "FETCH_FAILURE"
	// CodeUnavailable means the upstream API could not be reached at all.
	CodeUnavailable ErrorCode = "UNAVAILABLE"
	// CodeMalformedItem means a single fetched item could not be processed.
	CodeMalformedItem ErrorCode = "MALFORMED_ITEM"
	// CodeRenderFailure means converting an item to HTML failed.
	CodeRenderFailure ErrorCode = "RENDER_FAILURE"
)

var (
	// ErrFetchFailure matches any AppError with CodeFetchFailure.
	ErrFetchFailure = &AppError{Code: CodeFetchFailure}
	// ErrUnavailable matches any AppError with CodeUnavailable.
	ErrUnavailable = &AppError{Code: CodeUnavailable}
	// ErrMalformedItem matches any AppError with CodeMalformedItem.
	ErrMalformedItem = &AppError{Code: CodeMalformedItem}
	// ErrRenderFailure matches any AppError with CodeRenderFailure.
	ErrRenderFailure = &AppError{Code: CodeRenderFailure}
)

// AppError is a classified failure with a user-facing message.
type AppError struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches on Code so callers can use errors.Is(err, ErrMalformedItem).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError returns an AppError without an underlying cause.
func NewError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError classifies err under code.
func WrapError(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsRecoverable reports whether the error affects a single item only.
func IsRecoverable(err error) bool {
	switch CodeOf(err) {
	case CodeMalformedItem, CodeRenderFailure:
		return true
	}
	return false
}
