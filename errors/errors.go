// Package errors provides a string based error type so that packages can declare
// their failure modes as constants, plus thin wrappers over the standard errors package.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSeparator separates an error's message from its cause.
const ErrSeparator = " -- "

// Error is a string based error type allowing the definition of const errors in packages.
type Error string

func (s Error) Error() string {
	return string(s)
}

// Is reports whether target is this Error or an Error wrapped by Wrap/Wrapf.
func (s Error) Is(target error) bool {
	if target == nil {
		return false
	}
	msg := target.Error()
	return msg == string(s) || strings.HasPrefix(msg, string(s)+ErrSeparator)
}

// Wrap attaches err as the cause of this Error.
func (s Error) Wrap(err error) error {
	return wrappedError{msg: string(s), cause: err}
}

// Wrapf attaches a formatted cause to this Error.
func (s Error) Wrapf(format string, args ...any) error {
	return wrappedError{msg: string(s), cause: fmt.Errorf(format, args...)}
}

type wrappedError struct {
	msg   string
	cause error
}

func (w wrappedError) Error() string {
	if w.cause == nil {
		return w.msg
	}
	return w.msg + ErrSeparator + w.cause.Error()
}

func (w wrappedError) Is(target error) bool {
	return Error(w.msg).Is(target)
}

func (w wrappedError) Unwrap() error {
	return w.cause
}

// Is checks if err is equivalent to target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns a new error with the specified message.
func New(message string) error {
	return errors.New(message)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
