package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable machine-readable failure classification the
// API surfaces. Every kind except STORE_UNAVAILABLE is terminal:
// retrying a business-rule violation is never correct.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindInvalidArgument  ErrorKind = "INVALID_ARGUMENT"
	KindConflict         ErrorKind = "CONFLICT"
	KindAlreadyBooked    ErrorKind = "ALREADY_BOOKED"
	KindMatchFull        ErrorKind = "MATCH_FULL"
	KindUnauthorized     ErrorKind = "UNAUTHORIZED"
	KindStoreUnavailable ErrorKind = "STORE_UNAVAILABLE"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// StoreUnavailable wraps a transient I/O failure from the row store.
func StoreUnavailable(err error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: "row store unavailable", Err: err}
}

// KindOf extracts the failure kind, or "" for untyped errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
