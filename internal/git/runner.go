package git

import (
	"context"

	"github.com/mrz1836/gitrun/internal/command"
	"github.com/mrz1836/gitrun/internal/status"
)

// Repository is the set of operations the CLI needs from a repository.
// *Repo implements it.
type Repository interface {
	// Dir returns the absolute repository directory.
	Dir() string

	// Status returns the parsed porcelain v2 status report.
	Status(ctx context.Context, opts StatusOptions) (*status.Report, error)

	// Add stages files for commit. If paths is empty, stages all changes.
	Add(ctx context.Context, paths ...string) error

	// Commit creates a commit with the given message.
	Commit(ctx context.Context, message string, opts CommitOptions) error

	// CurrentBranch returns the checked out branch name.
	// Returns ErrDetachedHead if HEAD is detached.
	CurrentBranch(ctx context.Context) (string, error)

	// Run executes an arbitrary git command in the repository.
	Run(ctx context.Context, opts *command.Options, args ...any) (*command.Result, error)
}

var _ Repository = (*Repo)(nil)
