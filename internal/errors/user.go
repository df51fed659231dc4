package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinels to user-facing text. Order matters: the
// first entry matched by errors.Is wins, so subtypes come before parents.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	{
		err: ErrCommandTimeout,
		info: ErrorInfo{
			Message: "The git command took too long and was killed.",
			Action:  "Raise command.timeout in the config or pass a larger --timeout.",
		},
	},
	{
		err: ErrCommandSignaled,
		info: ErrorInfo{
			Message: "The git command was terminated by a signal.",
		},
	},
	{
		err: ErrCommandCanceled,
		info: ErrorInfo{
			Message: "The git command was interrupted.",
		},
	},
	{
		err: ErrCommandFailed,
		info: ErrorInfo{
			Message: "The git command exited with an error.",
			Action:  "Check the captured stderr above for details.",
		},
	},
	{
		err: ErrProcessIO,
		info: ErrorInfo{
			Message: "Could not read the output of the git command.",
		},
	},
	{
		err: ErrExecutableNotFound,
		info: ErrorInfo{
			Message: "The git executable could not be found.",
			Action:  "Install git or set git.binary in ~/.gitrun/config.yaml.",
		},
	},
	{
		err: ErrNotGitRepo,
		info: ErrorInfo{
			Message: "This directory is not inside a git repository.",
			Action:  "Run from inside a repository or pass -C <dir>.",
		},
	},
	{
		err: ErrUnknownStatusRecord,
		info: ErrorInfo{
			Message: "The status report contained a record type gitrun does not understand.",
			Action:  "Check that the input was produced by 'git status --porcelain=v2 -z'.",
		},
	},
	{
		err: ErrMalformedStatusRecord,
		info: ErrorInfo{
			Message: "The status report is malformed.",
			Action:  "Check that the input was produced by 'git status --porcelain=v2 -z'.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Unknown output format.",
			Action:  "Use one of: text, json, yaml.",
		},
	},
	{
		err: ErrConfigInvalidGit,
		info: ErrorInfo{
			Message: "The git section of the configuration is invalid.",
			Action:  "Run 'gitrun config show' to inspect the effective configuration.",
		},
	},
	{
		err: ErrConfigInvalidCommand,
		info: ErrorInfo{
			Message: "The command section of the configuration is invalid.",
			Action:  "Run 'gitrun config show' to inspect the effective configuration.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for err, falling back to its message.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for err.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly message along with a suggested action.
// The action is empty when there is nothing useful to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
