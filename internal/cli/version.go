package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitrun/internal/git"
)

// VersionInfo is the structured output of the version command.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	Git     string `json:"git" yaml:"git"`
}

// AddVersionCommand adds the version command to the root command.
func AddVersionCommand(root *cobra.Command, info BuildInfo) {
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the gitrun and git versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVersion(cmd.Context(), cmd.OutOrStdout(), info)
		},
	})
}

func runVersion(ctx context.Context, w io.Writer, info BuildInfo) error {
	ec := GetExecutionContext(ctx)
	if ec == nil {
		return errNoExecutionContext
	}

	gitVersion, err := git.Version(ctx, ec.GitConfig())
	if err != nil {
		return err
	}

	v := VersionInfo{Version: info.Version, Commit: info.Commit, Date: info.Date, Git: gitVersion}
	if v.Version == "" {
		v.Version = "dev"
	}

	if ec.Output != OutputText {
		return writeStructured(w, ec.Output, v)
	}
	_, err = fmt.Fprintf(w, "gitrun %s\ngit %s\n", formatVersion(info), gitVersion)
	return err
}
