package app_errors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindForbidden       Kind = "FORBIDDEN"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindConflict        Kind = "CONFLICT"
	KindValidation      Kind = "VALIDATION"
	KindInternal        Kind = "INTERNAL"
)

// AppError is an error that is reported to the caller as is: a stable kind
// plus a human readable message. Anything else is treated as internal.
type AppError struct {
	Kind    Kind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func New(kind Kind, format string, args ...any) *AppError {
	return &AppError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func NotFound(format string, args ...any) *AppError {
	return New(KindNotFound, format, args...)
}

func Forbidden(format string, args ...any) *AppError {
	return New(KindForbidden, format, args...)
}

func Unauthenticated(format string, args ...any) *AppError {
	return New(KindUnauthenticated, format, args...)
}

func Conflict(format string, args ...any) *AppError {
	return New(KindConflict, format, args...)
}

func Validation(format string, args ...any) *AppError {
	return New(KindValidation, format, args...)
}

// KindOf returns the kind of the first AppError in the chain of err,
// or KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
