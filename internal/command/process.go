package command

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/gitrun/internal/ctxutil"
	"github.com/mrz1836/gitrun/internal/errors"
)

// execute spawns argv, drains both pipes, and waits for the process.
// The returned error is a *ProcessIOError or *CanceledError; command
// failures are reported through the result's Status only.
func execute(ctx context.Context, argv, env []string, opts *Options) (*Result, error) {
	cmd := exec.Command(argv[0], argv[1:]...) //#nosec G204 -- binary and args come from the runner's caller
	cmd.Env = env
	cmd.Dir = opts.dir
	configureProcess(cmd)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &ProcessIOError{Err: err}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &ProcessIOError{Err: err}
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		if stderrors.Is(err, exec.ErrNotFound) || stderrors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %w", errors.ErrExecutableNotFound, err)
		}
		return nil, &ProcessIOError{Err: err}
	}

	var timedOut, canceled, killed atomic.Bool
	kill := func(flag *atomic.Bool) {
		flag.Store(true)
		killed.Store(true)
		_ = killProcess(cmd)
	}

	var timer *time.Timer
	if opts.timeout > 0 {
		timer = time.AfterFunc(opts.timeout, func() { kill(&timedOut) })
	}
	stopWatching := context.AfterFunc(ctx, func() { kill(&canceled) })

	// A failed drain stops reading its pipe; killing the process keeps the
	// child from blocking on a full pipe while the other drain waits for EOF.
	var stdoutBuf, stderrBuf bytes.Buffer
	var g errgroup.Group
	drainOrKill := func(src io.Reader, buf *bytes.Buffer, sink io.Writer) func() error {
		return func() error {
			if err := drain(src, buf, sink); err != nil {
				killed.Store(true)
				_ = killProcess(cmd)
				return err
			}
			return nil
		}
	}
	g.Go(drainOrKill(stdoutPipe, &stdoutBuf, opts.stdout))
	g.Go(drainOrKill(stderrPipe, &stderrBuf, opts.stderr))
	ioErr := g.Wait()

	waitErr := cmd.Wait()
	if timer != nil {
		timer.Stop()
	}
	stopWatching()
	duration := time.Since(start)

	var exitErr *exec.ExitError
	if waitErr != nil && !stderrors.As(waitErr, &exitErr) && ioErr == nil {
		ioErr = waitErr
	}

	status := statusOf(cmd.ProcessState, killed.Load())
	// A deadline that fired after the process already exited did not kill it.
	status.TimedOut = timedOut.Load() && status.Signaled

	result := newResult(argv, status, duration)
	result.capture(captured(&stdoutBuf, opts.stdout), captured(&stderrBuf, opts.stderr))

	switch {
	case ioErr != nil:
		return result, &ProcessIOError{Result: result, Err: ioErr}
	case canceled.Load() && status.Signaled && !status.TimedOut:
		return result, &CanceledError{Result: result, Err: ctxutil.Err(ctx)}
	default:
		return result, nil
	}
}

// drain copies src to sink when one was supplied, otherwise into buf.
func drain(src io.Reader, buf *bytes.Buffer, sink io.Writer) error {
	dst := io.Writer(buf)
	if sink != nil {
		dst = sink
	}
	if _, err := io.Copy(dst, src); err != nil && !stderrors.Is(err, os.ErrClosed) {
		return err
	}
	return nil
}

// captured returns the buffered text, or nil when output went to a sink.
func captured(buf *bytes.Buffer, sink io.Writer) *string {
	if sink != nil {
		return nil
	}
	s := buf.String()
	return &s
}

// statusOf converts the process state into a Status.
func statusOf(state *os.ProcessState, killed bool) Status {
	if state == nil {
		return Status{ExitCode: -1}
	}
	status := Status{Pid: state.Pid(), ExitCode: state.ExitCode()}
	status.Signaled, status.TermSig = terminationSignal(state, killed)
	if status.Signaled {
		status.ExitCode = -1
	}
	return status
}
