package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitrun/internal/command"
	"github.com/mrz1836/gitrun/internal/errors"
)

// ExecFlags holds flags specific to the exec command.
type ExecFlags struct {
	NoRaise   bool
	Timeout   time.Duration
	Chomp     bool
	Normalize bool
	Stream    bool
}

// ExecResult is the structured form of a finished exec run.
type ExecResult struct {
	Command    string `json:"command" yaml:"command"`
	ExitCode   int    `json:"exit_code" yaml:"exit_code"`
	Signaled   bool   `json:"signaled" yaml:"signaled"`
	TermSig    int    `json:"term_sig,omitempty" yaml:"term_sig,omitempty"`
	TimedOut   bool   `json:"timed_out" yaml:"timed_out"`
	DurationMS int64  `json:"duration_ms" yaml:"duration_ms"`
	Stdout     string `json:"stdout" yaml:"stdout"`
	Stderr     string `json:"stderr" yaml:"stderr"`
}

// AddExecCommand adds the exec command to the root command.
func AddExecCommand(root *cobra.Command) {
	flags := &ExecFlags{}
	cmd := &cobra.Command{
		Use:   "exec [flags] -- <git arguments...>",
		Short: "Run an arbitrary git command",
		Long: `Run git with the configured binary, global arguments and environment in
the working directory, then print what it wrote.

With --no-raise a failing git command is not an error: its output is printed
and gitrun exits with the same status.

Examples:
  gitrun exec -- log --oneline -5
  gitrun exec --no-raise -- diff --quiet
  gitrun exec -o json --chomp -- rev-parse HEAD`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd.Context(), cmd, flags, args)
		},
	}

	cmd.Flags().BoolVar(&flags.NoRaise, "no-raise", false, "do not treat a non-zero exit as an error")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "kill git after this long (0 disables)")
	cmd.Flags().BoolVar(&flags.Chomp, "chomp", false, "strip one trailing newline from the output")
	cmd.Flags().BoolVar(&flags.Normalize, "normalize", false, "transcode the output to UTF-8")
	cmd.Flags().BoolVar(&flags.Stream, "stream", false, "write output as it arrives instead of capturing it")
	root.AddCommand(cmd)
}

func runExec(ctx context.Context, cmd *cobra.Command, flags *ExecFlags, args []string) error {
	repo, ec, err := openRepo(ctx)
	if err != nil {
		return err
	}

	overrides := CommandOverrides{}
	f := cmd.Flags()
	if f.Changed("no-raise") {
		raise := !flags.NoRaise
		overrides.Raise = &raise
	}
	if f.Changed("timeout") {
		overrides.Timeout = &flags.Timeout
	}
	if f.Changed("chomp") {
		overrides.Chomp = &flags.Chomp
	}
	if f.Changed("normalize") {
		overrides.Normalize = &flags.Normalize
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var extra []command.Option
	if flags.Stream {
		extra = append(extra, command.WithStdout(stdout), command.WithStderr(stderr))
	}

	opts, err := ec.CommandOptions(overrides, extra...)
	if err != nil {
		return err
	}

	gitArgs := make([]any, len(args))
	for i, a := range args {
		gitArgs[i] = a
	}

	res, err := repo.Run(ctx, opts, gitArgs...)
	if res == nil {
		// Raised outcomes carry their result; print the captured stderr
		// before reporting.
		if r, ok := command.ResultOf(err); ok {
			res = r
		}
	}
	if res != nil {
		if werr := writeExecResult(stdout, stderr, ec.Output, res); werr != nil {
			return werr
		}
	}
	if err != nil {
		return err
	}

	if !res.Success() {
		code := res.ExitCode()
		if res.Signaled() {
			code = 128 + res.TermSig()
		}
		if code <= 0 {
			code = ExitError
		}
		return errors.NewExitCodeError(code, fmt.Errorf("%s: %w", res.CommandLine(), errors.ErrOutputWritten))
	}
	return nil
}

// writeExecResult prints captured output. Streams that went to a caller
// sink are absent and print nothing.
func writeExecResult(stdout, stderr io.Writer, format string, res *command.Result) error {
	if format != OutputText {
		return writeStructured(stdout, format, ExecResult{
			Command:    res.CommandLine(),
			ExitCode:   res.ExitCode(),
			Signaled:   res.Signaled(),
			TermSig:    res.TermSig(),
			TimedOut:   res.TimedOut(),
			DurationMS: res.Duration().Milliseconds(),
			Stdout:     res.StdoutString(),
			Stderr:     res.StderrString(),
		})
	}

	if s := res.Stdout(); s != nil {
		if _, err := io.WriteString(stdout, s.Value()); err != nil {
			return err
		}
	}
	if s := res.Stderr(); s != nil {
		if _, err := io.WriteString(stderr, s.Value()); err != nil {
			return err
		}
	}
	return nil
}
