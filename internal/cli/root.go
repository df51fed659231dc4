// Package cli provides the command-line interface for gitrun.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/gitrun/internal/errors"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// newRootCmd creates the root command for the gitrun CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "gitrun",
		Short: "Run git and decode its machine-readable output",
		Long: `gitrun runs the git binary as a subprocess with a stable environment,
captures its output, and decodes "git status --porcelain=v2 -z" into a
typed report.

Configuration is read from ~/.gitrun/config.yaml, then .gitrun.yaml in the
working directory, then GITRUN_* environment variables.`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			ec, err := ResolveExecutionContext(cmd.Context(), flags)
			if err != nil {
				return err
			}

			logger := InitLogger(flags.Verbose, flags.Quiet, ec.Config.Log.FileEnabled)
			ctx := logger.WithContext(cmd.Context())
			cmd.SetContext(WithExecutionContext(ctx, ec))
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			CloseLogFile()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddStatusCommand(cmd)
	AddParseCommand(cmd)
	AddExecCommand(cmd)
	AddVersionCommand(cmd, info)
	AddConfigCommand(cmd)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	return cmd.ExecuteContext(ctx)
}
