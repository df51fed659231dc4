package command

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/mrz1836/gitrun/internal/errors"
)

// ResultError is implemented by every error that carries the result of the
// command that produced it.
type ResultError interface {
	error
	CommandResult() *Result
}

// ResultOf extracts the command result carried anywhere in err's chain.
func ResultOf(err error) (*Result, bool) {
	var re ResultError
	if !stderrors.As(err, &re) || re.CommandResult() == nil {
		return nil, false
	}
	return re.CommandResult(), true
}

// describe renders the common "<command>, status: <status>, stderr: <stderr>"
// message shared by outcome errors.
func describe(r *Result) string {
	if r == nil {
		return "command did not start"
	}
	return fmt.Sprintf("%s, status: %s, stderr: %q", r.CommandLine(), r.Status(), r.StderrString())
}

// FailedError is returned when a command exits with a non-zero status.
type FailedError struct {
	Result *Result
}

func (e *FailedError) Error() string { return describe(e.Result) }

// Unwrap matches errors.ErrCommandFailed.
func (e *FailedError) Unwrap() error { return errors.ErrCommandFailed }

// CommandResult returns the failed command's result.
func (e *FailedError) CommandResult() *Result { return e.Result }

// SignaledError is returned when a signal terminates the command.
type SignaledError struct {
	Result *Result
}

func (e *SignaledError) Error() string { return describe(e.Result) }

// Unwrap matches errors.ErrCommandSignaled.
func (e *SignaledError) Unwrap() error { return errors.ErrCommandSignaled }

// CommandResult returns the signaled command's result.
func (e *SignaledError) CommandResult() *Result { return e.Result }

// TimeoutError is the SignaledError produced when the runner kills a
// command at its deadline. It matches both errors.ErrCommandTimeout and
// errors.ErrCommandSignaled, and errors.As finds the embedded SignaledError.
type TimeoutError struct {
	*SignaledError
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s, timed out after %s", describe(e.Result), e.Timeout)
}

// Unwrap exposes the timeout sentinel and the embedded SignaledError.
func (e *TimeoutError) Unwrap() []error {
	return []error{errors.ErrCommandTimeout, e.SignaledError}
}

// ProcessIOError is returned when the runner cannot start the process or
// drain its pipes. It is returned regardless of RaiseOnError. Result is nil
// when the process never started.
type ProcessIOError struct {
	Result *Result
	Err    error
}

func (e *ProcessIOError) Error() string {
	return fmt.Sprintf("%s: %s: %v", errors.ErrProcessIO, describe(e.Result), e.Err)
}

// Unwrap exposes the sentinel and the underlying IO error.
func (e *ProcessIOError) Unwrap() []error {
	return []error{errors.ErrProcessIO, e.Err}
}

// CommandResult returns the partial result, nil if the process never started.
func (e *ProcessIOError) CommandResult() *Result { return e.Result }

// CanceledError is returned when the caller's context ends while the
// command runs. The process group is killed first. It is returned
// regardless of RaiseOnError.
type CanceledError struct {
	Result *Result
	Err    error
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("%s: %s: %v", errors.ErrCommandCanceled, describe(e.Result), e.Err)
}

// Unwrap exposes the sentinel and the context error.
func (e *CanceledError) Unwrap() []error {
	return []error{errors.ErrCommandCanceled, e.Err}
}

// CommandResult returns the killed command's result.
func (e *CanceledError) CommandResult() *Result { return e.Result }
