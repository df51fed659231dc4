package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitrun/internal/git"
	"github.com/mrz1836/gitrun/internal/status"
)

// StatusFlags holds flags specific to the status command.
type StatusFlags struct {
	// Ignored includes ignored paths.
	Ignored bool
}

// AddStatusCommand adds the status command to the root command.
func AddStatusCommand(root *cobra.Command) {
	flags := &StatusFlags{}
	cmd := &cobra.Command{
		Use:   "status [pathspec...]",
		Short: "Show the working tree status",
		Long: `Run "git status --porcelain=v2 -z" and print the decoded report.

Text output lists one entry per line with its XY code. JSON and YAML output
contain the branch, stash, counts per category and every entry.

Examples:
  gitrun status
  gitrun status --ignored
  gitrun status -o json -- docs/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), cmd.OutOrStdout(), flags, args)
		},
	}

	cmd.Flags().BoolVar(&flags.Ignored, "ignored", false, "include ignored files")
	root.AddCommand(cmd)
}

func runStatus(ctx context.Context, w io.Writer, flags *StatusFlags, pathspec []string) error {
	repo, ec, err := openRepo(ctx)
	if err != nil {
		return err
	}

	report, err := repo.Status(ctx, git.StatusOptions{
		Ignored:  flags.Ignored,
		Pathspec: pathspec,
	})
	if err != nil {
		return err
	}
	return writeReport(w, ec, report)
}

// writeReport renders report in the execution context's output format.
func writeReport(w io.Writer, ec *ExecutionContext, report *status.Report) error {
	if ec.Output == OutputText {
		CheckNoColor()
		return renderReport(w, report, newStyles(), ec.Quiet)
	}
	return writeStructured(w, ec.Output, report.Summary())
}
