// Package errors provides the sentinel errors shared across gitrun.
//
// Every failure that leaves a package is either one of these sentinels or a
// typed error that unwraps to one, so callers branch with errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
package errors

import "errors"

// Command execution errors.
var (
	// ErrInvalidArgument indicates malformed caller input, such as a nested
	// argument list or an invalid option value. It is never suppressed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrProcessIO indicates a failure reading or writing the pipes of a
	// subprocess. It reports a harness failure, not a command failure.
	ErrProcessIO = errors.New("process io failed")

	// ErrCommandFailed indicates the command exited with a non-zero status.
	ErrCommandFailed = errors.New("command failed")

	// ErrCommandSignaled indicates the command was terminated by a signal.
	ErrCommandSignaled = errors.New("command terminated by signal")

	// ErrCommandTimeout indicates the command was killed after exceeding its
	// deadline. Timeout errors also match ErrCommandSignaled.
	ErrCommandTimeout = errors.New("command timeout exceeded")

	// ErrCommandCanceled indicates the caller's context was canceled while
	// the command was running.
	ErrCommandCanceled = errors.New("command canceled")

	// ErrExecutableNotFound indicates no executable matched on the search path.
	ErrExecutableNotFound = errors.New("executable not found")
)

// Status report errors.
var (
	// ErrUnknownStatusRecord indicates a status record whose leading
	// character is not a known record type.
	ErrUnknownStatusRecord = errors.New("unknown status record")

	// ErrMalformedStatusRecord indicates a status record with missing or
	// unparsable fields.
	ErrMalformedStatusRecord = errors.New("malformed status record")
)

// Repository errors.
var (
	// ErrNotGitRepo indicates the path is not inside a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrDetachedHead indicates HEAD does not point at a branch.
	ErrDetachedHead = errors.New("HEAD is detached")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")
)

// Configuration and CLI errors.
var (
	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidGit indicates an invalid git configuration value.
	ErrConfigInvalidGit = errors.New("invalid git configuration")

	// ErrConfigInvalidCommand indicates an invalid command configuration value.
	ErrConfigInvalidCommand = errors.New("invalid command configuration")

	// ErrInvalidEnvVarName indicates that an environment variable name is invalid.
	ErrInvalidEnvVarName = errors.New("invalid environment variable name")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrOutputWritten indicates the command already reported its outcome,
	// so the CLI exits without printing an error message.
	ErrOutputWritten = errors.New("outcome already written")
)

// ExitCodeError carries the exit code the CLI should terminate with.
type ExitCodeError struct {
	Code int
	Err  error
}

// NewExitCodeError wraps err so the CLI exits with code.
func NewExitCodeError(code int, err error) *ExitCodeError {
	return &ExitCodeError{Code: code, Err: err}
}

// Error implements the error interface.
func (e *ExitCodeError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code carried by err, or fallback when err does
// not carry one.
func ExitCode(err error, fallback int) int {
	var e *ExitCodeError
	if errors.As(err, &e) {
		return e.Code
	}
	return fallback
}
