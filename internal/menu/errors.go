package menu

import (
	"errors"
	"fmt"
)

// Kind tags the failure classes the CLI maps to exit codes.
type Kind string

const (
	KindPermissionDenied Kind = "permission_denied"
	KindAppNotFound      Kind = "app_not_found"
	KindNotFound         Kind = "not_found"
	KindAmbiguous        Kind = "ambiguous"
	KindUnsupported      Kind = "unsupported"
	KindAxFailure        Kind = "ax_failure"
)

// Error is the single typed error of the menu domain. Candidates is
// populated only for ambiguous resolutions.
type Error struct {
	Kind       Kind
	Message    string
	Candidates []string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode maps the error kind to the process exit code.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindPermissionDenied:
		return 10
	case KindAppNotFound, KindNotFound:
		return 2
	case KindAmbiguous:
		return 3
	default:
		return 1
	}
}

// Errf builds an Error with a formatted message.
func Errf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapAX wraps an underlying AX failure.
func WrapAX(context string, err error) *Error {
	return &Error{Kind: KindAxFailure, Message: context, Err: err}
}

// AsError extracts a *Error from any error chain, synthesizing an
// ax_failure wrapper for untyped errors.
func AsError(err error) *Error {
	var me *Error
	if errors.As(err, &me) {
		return me
	}
	return &Error{Kind: KindAxFailure, Message: err.Error(), Err: err}
}
