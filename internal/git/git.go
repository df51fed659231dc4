// Package git is a thin facade over the git CLI. Every operation is a
// single command.Runner call; status output is decoded by package status.
package git

import (
	"context"
	stderrors "errors"
	"fmt"
	"maps"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/gitrun/internal/command"
	"github.com/mrz1836/gitrun/internal/constants"
	"github.com/mrz1836/gitrun/internal/errors"
	"github.com/mrz1836/gitrun/internal/fileutil"
	"github.com/mrz1836/gitrun/internal/status"
)

// Config configures the runner behind a Repo.
type Config struct {
	// Binary is the git executable. Empty means the first "git" on PATH.
	Binary string

	// GlobalArgs are appended to the built-in global arguments
	// (-c color.ui=false -c core.quotepath=false).
	GlobalArgs []string

	// Env is layered over LC_ALL=C and GIT_TERMINAL_PROMPT=0.
	Env map[string]string

	// UnsetEnv is added to the variables always removed (GIT_DIR,
	// GIT_WORK_TREE, GIT_INDEX_FILE, ...).
	UnsetEnv []string

	// Timeout applies to every call. Zero means no timeout.
	Timeout time.Duration

	// NormalizeEncoding transcodes captured text output to UTF-8. Status
	// output is never normalized.
	NormalizeEncoding bool

	// Logger overrides the logger attached to the call context.
	Logger *zerolog.Logger

	// LockRetry overrides DefaultLockRetryConfig for Add and Commit.
	LockRetry *LockRetryConfig

	// Environ overrides os.Environ as the ambient environment.
	Environ func() []string
}

// NewRunner builds a command.Runner for git from cfg. extraArgs are placed
// after the global arguments, ahead of every call's arguments.
func NewRunner(cfg Config, extraArgs ...string) (*command.Runner, error) {
	binary := cfg.Binary
	if binary == "" {
		found, err := fileutil.WhichPath(constants.GitBinaryName)
		if err != nil {
			return nil, fmt.Errorf("resolving git binary: %w", err)
		}
		binary = found
	}

	globalArgs := constants.GitGlobalArgs()
	globalArgs = append(globalArgs, cfg.GlobalArgs...)
	globalArgs = append(globalArgs, extraArgs...)

	env := constants.GitEnv()
	maps.Copy(env, cfg.Env)

	unset := append([]string(nil), constants.GitUnsetEnv...)
	unset = append(unset, cfg.UnsetEnv...)

	return command.NewRunner(command.Config{
		Binary:     binary,
		GlobalArgs: globalArgs,
		Env:        env,
		UnsetEnv:   unset,
		Logger:     cfg.Logger,
		Environ:    cfg.Environ,
	})
}

// Repo runs git against one working tree.
type Repo struct {
	dir    string
	cfg    Config
	runner *command.Runner
}

// Open returns a Repo for dir after checking that dir is inside a git
// repository. It fails with ErrNotGitRepo otherwise.
func Open(ctx context.Context, dir string, cfg Config) (*Repo, error) {
	if dir == "" {
		return nil, fmt.Errorf("repository directory: %w", errors.ErrEmptyValue)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	runner, err := NewRunner(cfg, "-C", abs)
	if err != nil {
		return nil, err
	}
	r := &Repo{dir: abs, cfg: cfg, runner: runner}

	if _, err := r.run(ctx, nil, "rev-parse", "--git-dir"); err != nil {
		if stderrors.Is(err, errors.ErrCommandFailed) {
			return nil, fmt.Errorf("%s: %w: %w", abs, errors.ErrNotGitRepo, err)
		}
		return nil, err
	}
	return r, nil
}

// InitOptions configures Init.
type InitOptions struct {
	Bare          bool
	InitialBranch string
}

// Init creates a repository in dir and opens it.
func Init(ctx context.Context, dir string, cfg Config, opts InitOptions) (*Repo, error) {
	if dir == "" {
		return nil, fmt.Errorf("repository directory: %w", errors.ErrEmptyValue)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	args := []string{"init", "--quiet"}
	if opts.Bare {
		args = append(args, "--bare")
	}
	if opts.InitialBranch != "" {
		args = append(args, "--initial-branch="+opts.InitialBranch)
	}
	args = append(args, "--", abs)

	if err := runDetached(ctx, cfg, args); err != nil {
		return nil, fmt.Errorf("failed to init %s: %w", abs, err)
	}
	return Open(ctx, abs, cfg)
}

// CloneOptions configures Clone.
type CloneOptions struct {
	Branch string
	Depth  int
	Bare   bool
}

// Clone clones url into dir and opens the result.
func Clone(ctx context.Context, url, dir string, cfg Config, opts CloneOptions) (*Repo, error) {
	if url == "" {
		return nil, fmt.Errorf("clone url: %w", errors.ErrEmptyValue)
	}
	if dir == "" {
		return nil, fmt.Errorf("clone directory: %w", errors.ErrEmptyValue)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	args := []string{"clone", "--quiet"}
	if opts.Bare {
		args = append(args, "--bare")
	}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	if opts.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(opts.Depth))
	}
	args = append(args, "--", url, abs)

	if err := runDetached(ctx, cfg, args); err != nil {
		return nil, fmt.Errorf("failed to clone into %s: %w", abs, err)
	}
	return Open(ctx, abs, cfg)
}

// Version returns the installed git version, e.g. "2.43.0".
func Version(ctx context.Context, cfg Config) (string, error) {
	runner, err := NewRunner(cfg)
	if err != nil {
		return "", err
	}
	opts, err := callOptions(cfg, command.WithChomp(true))
	if err != nil {
		return "", err
	}
	res, err := runner.Run(ctx, opts, "version")
	if err != nil {
		return "", fmt.Errorf("failed to get git version: %w", err)
	}
	return strings.TrimPrefix(res.StdoutString(), "git version "), nil
}

// runDetached runs args without a -C directory.
func runDetached(ctx context.Context, cfg Config, args []string) error {
	runner, err := NewRunner(cfg)
	if err != nil {
		return err
	}
	opts, err := callOptions(cfg)
	if err != nil {
		return err
	}
	_, err = runner.Run(ctx, opts, stringArgs(args)...)
	return err
}

// Dir returns the absolute directory the repo was opened with.
func (r *Repo) Dir() string { return r.dir }

// Runner returns the runner bound to the repo directory.
func (r *Repo) Runner() *command.Runner { return r.runner }

// Run executes an arbitrary git command in the repo. A nil opts uses the
// repo defaults.
func (r *Repo) Run(ctx context.Context, opts *command.Options, args ...any) (*command.Result, error) {
	if opts == nil {
		var err error
		if opts, err = callOptions(r.cfg); err != nil {
			return nil, err
		}
	}
	return r.runner.Run(ctx, opts, args...)
}

// StatusOptions configures Status.
type StatusOptions struct {
	// Ignored includes ignored paths in the report.
	Ignored bool
	// Pathspec limits the report to matching paths.
	Pathspec []string
}

// Status runs git status in porcelain v2 format and parses the result.
func (r *Repo) Status(ctx context.Context, opts StatusOptions) (*status.Report, error) {
	args := []string{
		"status", "--porcelain=v2", "--branch", "--show-stash", "-z",
		"--untracked-files=" + constants.StatusUntrackedMode,
	}
	if opts.Ignored {
		args = append(args, "--ignored")
	}
	if len(opts.Pathspec) > 0 {
		args = append(args, "--")
		args = append(args, opts.Pathspec...)
	}

	res, err := r.run(ctx, []command.Option{command.WithNormalizeEncoding(false)}, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	report, err := status.Parse(res.StdoutString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse status: %w", err)
	}
	return report, nil
}

// Add stages paths, or every change when paths is empty.
func (r *Repo) Add(ctx context.Context, paths ...string) error {
	args := []string{"add"}
	if len(paths) == 0 {
		args = append(args, "-A")
	} else {
		args = append(args, "--")
		args = append(args, paths...)
	}

	err := RunWithLockRetryVoid(ctx, r.lockRetry(), r.logger(ctx), func(ctx context.Context) error {
		_, err := r.run(ctx, nil, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to add files: %w", err)
	}
	return nil
}

// CommitOptions configures Commit.
type CommitOptions struct {
	AllowEmpty bool
	// Author overrides the author, in "Name <email>" form.
	Author string
}

// Commit records the staged changes with message.
func (r *Repo) Commit(ctx context.Context, message string, opts CommitOptions) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("commit message cannot be empty: %w", errors.ErrEmptyValue)
	}

	args := []string{"commit", "--quiet", "--cleanup=strip", "-m", message}
	if opts.AllowEmpty {
		args = append(args, "--allow-empty")
	}
	if opts.Author != "" {
		args = append(args, "--author="+opts.Author)
	}

	err := RunWithLockRetryVoid(ctx, r.lockRetry(), r.logger(ctx), func(ctx context.Context) error {
		_, err := r.run(ctx, nil, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// CurrentBranch returns the checked out branch. It works on an unborn
// branch and fails with ErrDetachedHead when HEAD is detached.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	res, err := r.run(ctx, []command.Option{command.WithRaiseOnError(false)},
		"symbolic-ref", "--quiet", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	switch {
	case res.Success():
		return res.StdoutString(), nil
	case res.ExitCode() == 1:
		return "", fmt.Errorf("%s: %w", r.dir, errors.ErrDetachedHead)
	default:
		return "", fmt.Errorf("failed to get current branch: %w", &command.FailedError{Result: res})
	}
}

// run executes args with the repo defaults plus chomp, then extra.
func (r *Repo) run(ctx context.Context, extra []command.Option, args ...string) (*command.Result, error) {
	opts, err := callOptions(r.cfg, append([]command.Option{command.WithChomp(true)}, extra...)...)
	if err != nil {
		return nil, err
	}
	return r.runner.Run(ctx, opts, stringArgs(args)...)
}

func (r *Repo) lockRetry() LockRetryConfig {
	if r.cfg.LockRetry != nil {
		return *r.cfg.LockRetry
	}
	return DefaultLockRetryConfig()
}

func (r *Repo) logger(ctx context.Context) zerolog.Logger {
	if r.cfg.Logger != nil {
		return *r.cfg.Logger
	}
	return *zerolog.Ctx(ctx)
}

// callOptions builds per-call options from cfg followed by extra.
func callOptions(cfg Config, extra ...command.Option) (*command.Options, error) {
	opts := []command.Option{
		command.WithTimeout(cfg.Timeout),
		command.WithNormalizeEncoding(cfg.NormalizeEncoding),
	}
	return command.NewOptions(append(opts, extra...)...)
}

func stringArgs(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
