// Package main provides the entry point for the gitrun CLI.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/mrz1836/gitrun/internal/cli"
	"github.com/mrz1836/gitrun/internal/errors"
	"github.com/mrz1836/gitrun/internal/signal"
)

// Set at build time via -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run())
}

func run() int {
	h := signal.NewHandler(context.Background())
	defer h.Stop()

	err := cli.Execute(h.Context(), cli.BuildInfo{Version: version, Commit: commit, Date: date})

	if cause := h.Cause(); cause != nil {
		_, _ = fmt.Fprintln(os.Stderr, "gitrun:", cause.Error())
		return cause.ExitCode()
	}
	if err == nil {
		return cli.ExitSuccess
	}

	if !stderrors.Is(err, errors.ErrOutputWritten) {
		message, action := errors.Actionable(err)
		_, _ = fmt.Fprintln(os.Stderr, "gitrun:", message)
		if message != err.Error() {
			_, _ = fmt.Fprintln(os.Stderr, "  ", err.Error())
		}
		if action != "" {
			_, _ = fmt.Fprintln(os.Stderr, "  hint:", action)
		}
	}
	return cli.ExitCodeForError(err)
}
