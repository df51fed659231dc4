package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gitrunerrors "github.com/mrz1836/gitrun/internal/errors"
)

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrInvalidArgument", gitrunerrors.ErrInvalidArgument, "invalid argument"},
		{"ErrProcessIO", gitrunerrors.ErrProcessIO, "process io failed"},
		{"ErrCommandFailed", gitrunerrors.ErrCommandFailed, "command failed"},
		{"ErrCommandSignaled", gitrunerrors.ErrCommandSignaled, "command terminated by signal"},
		{"ErrCommandTimeout", gitrunerrors.ErrCommandTimeout, "command timeout exceeded"},
		{"ErrUnknownStatusRecord", gitrunerrors.ErrUnknownStatusRecord, "unknown status record"},
		{"ErrMalformedStatusRecord", gitrunerrors.ErrMalformedStatusRecord, "malformed status record"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, gitrunerrors.Wrap(nil, "context"))
		require.NoError(t, gitrunerrors.Wrapf(nil, "context %d", 1))
	})

	t.Run("preserves chain", func(t *testing.T) {
		err := gitrunerrors.Wrap(gitrunerrors.ErrNotGitRepo, "open repository")
		require.ErrorIs(t, err, gitrunerrors.ErrNotGitRepo)
		assert.Equal(t, "open repository: not a git repository", err.Error())
	})

	t.Run("formats message", func(t *testing.T) {
		err := gitrunerrors.Wrapf(gitrunerrors.ErrEmptyValue, "field %s", "binary")
		assert.Equal(t, "field binary: value cannot be empty", err.Error())
	})
}

func TestExitCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", gitrunerrors.NewExitCodeError(3, gitrunerrors.ErrCommandFailed))

	assert.Equal(t, 3, gitrunerrors.ExitCode(err, 1))
	assert.Equal(t, 1, gitrunerrors.ExitCode(stderrors.New("plain"), 1))
	require.ErrorIs(t, err, gitrunerrors.ErrCommandFailed)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"timeout beats signaled", fmt.Errorf("x: %w", gitrunerrors.ErrCommandTimeout), "The git command took too long and was killed."},
		{"wrapped failed", gitrunerrors.Wrap(gitrunerrors.ErrCommandFailed, "git status"), "The git command exited with an error."},
		{"unknown error", stderrors.New("boom"), "boom"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, gitrunerrors.UserMessage(tc.err))
		})
	}
}

func TestActionable(t *testing.T) {
	msg, action := gitrunerrors.Actionable(gitrunerrors.ErrExecutableNotFound)
	assert.Equal(t, "The git executable could not be found.", msg)
	assert.Contains(t, action, "git.binary")

	msg, action = gitrunerrors.Actionable(gitrunerrors.ErrCommandSignaled)
	assert.NotEmpty(t, msg)
	assert.Empty(t, action)

	msg, action = gitrunerrors.Actionable(nil)
	assert.Empty(t, msg)
	assert.Empty(t, action)
}
