package errors

import (
	cockroacherrors "github.com/cockroachdb/errors"
)

// Thin delegations to cockroachdb/errors so callers import a single errors
// package for both construction and CLI exit handling.

// New creates a new error with the given message.
func New(msg string) error {
	return cockroacherrors.New(msg)
}

// Newf creates a new error with a formatted message.
func Newf(format string, args ...any) error {
	return cockroacherrors.Newf(format, args...)
}

// Wrap annotates err with a message. Returns nil if err is nil.
func Wrap(err error, msg string) error {
	return cockroacherrors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message. Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return cockroacherrors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return cockroacherrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return cockroacherrors.As(err, target)
}
