// Package errors defines the processor's error taxonomy and its mapping to
// process exit codes. A missing term or term pair is not an error; it is the
// documented no-match outcome and never surfaces here.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrIO              = errors.New("i/o failure")
	ErrInternal        = errors.New("internal error")
)

// Exit codes reported to the invoking harness.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitFormat   = 2
	ExitIO       = 3
)

type RunError struct {
	Err      error
	Message  string
	ExitCode int
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func New(sentinel error, exitCode int, message string) *RunError {
	return &RunError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

func Newf(sentinel error, exitCode int, format string, args ...any) *RunError {
	return &RunError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// ExitCode maps an error to the exit code the harness observes.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr.ExitCode
	}
	switch {
	case errors.Is(err, ErrMalformedRecord):
		return ExitFormat
	case errors.Is(err, ErrIO):
		return ExitIO
	default:
		return ExitInternal
	}
}

// Is and As re-export the stdlib helpers so callers only import one errors
// package.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }
