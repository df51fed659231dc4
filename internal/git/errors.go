package git

import (
	"github.com/mrz1836/gitrun/internal/errors"
)

// Sentinels re-exported for callers that only import this package.
var (
	// ErrNotGitRepo is returned by Open when the directory is not inside a
	// repository.
	ErrNotGitRepo = errors.ErrNotGitRepo

	// ErrDetachedHead is returned by CurrentBranch when HEAD is detached.
	ErrDetachedHead = errors.ErrDetachedHead
)
