package git

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/gitrun/internal/testutil"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errType  ErrorType
		expected string
	}{
		{ErrorTypeUnknown, "unknown"},
		{ErrorTypeAuth, "authentication"},
		{ErrorTypeNetwork, "network"},
		{ErrorTypeNotARepo, "not_a_repo"},
		{ErrorTypeLock, "lock"},
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypeNonFastForward, "non_fast_forward"},
		{ErrorType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errType.String())
		})
	}
}

func TestClassifyText(t *testing.T) {
	tests := []struct {
		name     string
		stderr   string
		expected ErrorType
	}{
		{"not a repo", "fatal: not a git repository (or any of the parent directories): .git", ErrorTypeNotARepo},
		{"index lock", "fatal: Unable to create '/repo/.git/index.lock': File exists.", ErrorTypeLock},
		{"another process", "Another git process seems to be running in this repository", ErrorTypeLock},
		{"auth failed", "remote: Invalid username or password.\nfatal: Authentication failed for 'https://example.com/'", ErrorTypeAuth},
		{"terminal prompts", "fatal: could not read Username for 'https://example.com': terminal prompts disabled", ErrorTypeAuth},
		{"publickey", "git@example.com: Permission denied (publickey).", ErrorTypeAuth},
		{"resolve host", "fatal: unable to access 'https://nope.invalid/': Could not resolve host: nope.invalid", ErrorTypeNetwork},
		{"hung up", "fatal: the remote end hung up unexpectedly", ErrorTypeNetwork},
		{"rejected push", "! [rejected] main -> main (fetch first)\nerror: failed to push some refs", ErrorTypeNonFastForward},
		{"pathspec", "fatal: pathspec 'missing.txt' did not match any files", ErrorTypeNotFound},
		{"unknown revision", "fatal: ambiguous argument 'nope': unknown revision or path not in the working tree.", ErrorTypeNotFound},
		{"empty", "", ErrorTypeUnknown},
		{"other", "fatal: something unusual", ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyText(tt.stderr))
		})
	}
}

func TestClassifyError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, ErrorTypeUnknown, ClassifyError(nil))
	})

	t.Run("plain error text", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", fmt.Errorf("fatal: not a git repository")) //nolint:err113 // test error
		assert.Equal(t, ErrorTypeNotARepo, ClassifyError(err))
	})

	t.Run("uses captured stderr", func(t *testing.T) {
		fake := testutil.WriteScript(t, "git", `echo "fatal: Unable to create '/r/.git/index.lock': File exists." >&2; exit 128`)
		runner, err := NewRunner(Config{Binary: fake})
		if err != nil {
			t.Fatal(err)
		}

		_, runErr := runner.Run(t.Context(), nil, "add", "-A")

		assert.Equal(t, ErrorTypeLock, ClassifyError(fmt.Errorf("failed to add files: %w", runErr)))
	})
}

func TestPatternMatcher(t *testing.T) {
	m := NewPatternMatcher("index.lock", "file exists")

	assert.True(t, m.Matches("Unable to create INDEX.LOCK"))
	assert.True(t, m.MatchesLower("file exists"))
	assert.False(t, m.MatchesLower("FILE EXISTS"))
	assert.False(t, m.Matches("clean"))
}
