package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitrun/internal/status"
)

// AddParseCommand adds the parse command to the root command.
func AddParseCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Decode saved porcelain v2 status output",
		Long: `Decode the output of "git status --porcelain=v2 -z" read from a file, or
from standard input when the file is "-" or omitted. git is not run.

Examples:
  git status --porcelain=v2 --branch -z | gitrun parse -o json
  gitrun parse status.bin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			return runParse(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), source)
		},
	}
	root.AddCommand(cmd)
}

func runParse(ctx context.Context, stdin io.Reader, w io.Writer, source string) error {
	ec := GetExecutionContext(ctx)
	if ec == nil {
		return errNoExecutionContext
	}

	data, err := readSource(stdin, source)
	if err != nil {
		return err
	}

	report, err := status.Parse(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", sourceName(source), err)
	}
	return writeReport(w, ec, report)
}

func readSource(stdin io.Reader, source string) ([]byte, error) {
	if source == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(source) //#nosec G304 -- path supplied by the user on the command line
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return data, nil
}

func sourceName(source string) string {
	if source == "-" {
		return "standard input"
	}
	return source
}
