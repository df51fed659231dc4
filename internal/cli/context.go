package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mrz1836/gitrun/internal/command"
	"github.com/mrz1836/gitrun/internal/config"
	"github.com/mrz1836/gitrun/internal/git"
)

// ExecutionContext holds the resolved directory, configuration and output
// settings shared by every subcommand.
type ExecutionContext struct {
	// WorkDir is the absolute directory git runs in.
	WorkDir string

	// Output is the validated output format.
	Output string

	// Quiet suppresses informational text output.
	Quiet bool

	// Config is the merged configuration.
	Config *config.Config
}

// errNoExecutionContext is returned when a command runs without the root
// command's PersistentPreRunE.
var errNoExecutionContext = stderrors.New("execution context not initialized")

// executionContextKey is the context key for ExecutionContext.
type executionContextKey struct{}

// ResolveExecutionContext resolves the working directory from flags and
// loads the configuration layered for it.
func ResolveExecutionContext(ctx context.Context, flags *GlobalFlags) (*ExecutionContext, error) {
	dir := flags.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	cfg, err := config.Load(ctx, abs)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &ExecutionContext{
		WorkDir: abs,
		Output:  flags.Output,
		Quiet:   flags.Quiet,
		Config:  cfg,
	}, nil
}

// WithExecutionContext returns a new context with the ExecutionContext attached.
func WithExecutionContext(ctx context.Context, ec *ExecutionContext) context.Context {
	return context.WithValue(ctx, executionContextKey{}, ec)
}

// GetExecutionContext retrieves the ExecutionContext from the context.
// Returns nil if no execution context was set.
func GetExecutionContext(ctx context.Context) *ExecutionContext {
	ec, _ := ctx.Value(executionContextKey{}).(*ExecutionContext)
	return ec
}

// GitConfig converts the loaded configuration into a git.Config.
func (ec *ExecutionContext) GitConfig() git.Config {
	return git.Config{
		Binary:            ec.Config.Git.Binary,
		GlobalArgs:        ec.Config.Git.GlobalArgs,
		Env:               ec.Config.Git.EnvMap(),
		UnsetEnv:          ec.Config.Git.UnsetEnv,
		Timeout:           ec.Config.Command.Timeout,
		NormalizeEncoding: ec.Config.Command.NormalizeEncoding,
	}
}

// CommandOverrides are per-invocation values that replace the configured
// command defaults when set.
type CommandOverrides struct {
	Timeout   *time.Duration
	Raise     *bool
	Chomp     *bool
	Normalize *bool
}

// CommandOptions builds runner options from the configured defaults with
// overrides applied, followed by extra.
func (ec *ExecutionContext) CommandOptions(o CommandOverrides, extra ...command.Option) (*command.Options, error) {
	c := ec.Config.Command
	if o.Timeout != nil {
		c.Timeout = *o.Timeout
	}
	if o.Raise != nil {
		c.RaiseOnError = *o.Raise
	}
	if o.Chomp != nil {
		c.Chomp = *o.Chomp
	}
	if o.Normalize != nil {
		c.NormalizeEncoding = *o.Normalize
	}

	opts := []command.Option{
		command.WithTimeout(c.Timeout),
		command.WithRaiseOnError(c.RaiseOnError),
		command.WithChomp(c.Chomp),
		command.WithNormalizeEncoding(c.NormalizeEncoding),
	}
	return command.NewOptions(append(opts, extra...)...)
}

// openRepo opens the repository in the execution context's directory.
func openRepo(ctx context.Context) (*git.Repo, *ExecutionContext, error) {
	ec := GetExecutionContext(ctx)
	if ec == nil {
		return nil, nil, errNoExecutionContext
	}
	repo, err := git.Open(ctx, ec.WorkDir, ec.GitConfig())
	if err != nil {
		return nil, nil, err
	}
	return repo, ec, nil
}
