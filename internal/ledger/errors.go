package ledger

import (
	"errors"
	"fmt"
)

// ErrorKind partitions expected business-rule failures. Anything outside the
// taxonomy (driver faults, context cancellation) is passed through wrapped.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindState      ErrorKind = "state"
	KindInvariant  ErrorKind = "invariant"
	KindConfig     ErrorKind = "config"
)

// Error is a business-rule failure. Operations return it as a plain error;
// callers branch on the kind via KindOf or errors.As.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Msg) }

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return newError(KindValidation, format, args...)
}

func NotFoundf(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func Statef(format string, args ...any) *Error {
	return newError(KindState, format, args...)
}

func Invariantf(format string, args ...any) *Error {
	return newError(KindInvariant, format, args...)
}

func Configf(format string, args ...any) *Error {
	return newError(KindConfig, format, args...)
}

// KindOf returns the taxonomy kind of err, or "" if err is not a ledger error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a ledger error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
