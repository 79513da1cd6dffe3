// Package apperr classifies the failures that end a thwack run.
package apperr

import (
	"errors"
	"fmt"
)

// Kind tells the entry point what went wrong without parsing messages.
type Kind string

const (
	// KindArgs covers bad command-line arguments, config values and
	// unusable starting points.
	KindArgs Kind = "args"
	// KindInvalidUnicode is reported for paths that are not valid UTF-8.
	KindInvalidUnicode Kind = "invalid_unicode"
	// KindIO covers file system failures outside the per-entry walk.
	KindIO Kind = "io"
	// KindTerminal covers terminal setup and teardown failures.
	KindTerminal Kind = "terminal"
	// KindClipboard is reported when copying the selection fails.
	KindClipboard Kind = "clipboard"
	// KindExec is reported when the configured command cannot be started.
	KindExec Kind = "exec"
)

// Error wraps an underlying error with its Kind and the process exit code
// the failure should produce.
type Error struct {
	Kind Kind
	Err  error
	Code int
}

func (e *Error) Error() string { return e.Err.Error() }

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Err }

// ExitCode returns the code the process should exit with.
func (e *Error) ExitCode() int {
	if e.Code == 0 {
		return 1
	}
	return e.Code
}

// WithCode returns e with its exit code replaced.
func (e *Error) WithCode(code int) *Error {
	e.Code = code
	return e
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func Args(format string, args ...any) *Error {
	return newError(KindArgs, format, args...)
}

func InvalidUnicode(path string) *Error {
	return newError(KindInvalidUnicode, "The path %q does not seem to be valid unicode.", path)
}

func IO(format string, args ...any) *Error {
	return newError(KindIO, format, args...)
}

func Terminal(format string, args ...any) *Error {
	return newError(KindTerminal, format, args...)
}

func Clipboard(format string, args ...any) *Error {
	return newError(KindClipboard, format, args...)
}

func Exec(format string, args ...any) *Error {
	return newError(KindExec, format, args...)
}

// KindOf returns the Kind of the first *Error in err's chain, or "" when
// there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// ExitCode maps any error to a process exit code: 0 for nil, the carried
// code for *Error values and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.ExitCode()
	}
	return 1
}
