package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status describes how a process ended.
type Status struct {
	// Pid is the process id of the child.
	Pid int
	// ExitCode is the exit status, or -1 when the process was signaled.
	ExitCode int
	// Signaled is true when the process was terminated by a signal.
	Signaled bool
	// TermSig is the terminating signal number when Signaled is true.
	TermSig int
	// TimedOut is true when the runner killed the process at its deadline.
	TimedOut bool
}

// Success reports whether the process exited on its own with status 0.
func (s Status) Success() bool {
	return !s.Signaled && !s.TimedOut && s.ExitCode == 0
}

// String renders the status the way it appears in error messages.
func (s Status) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pid %d", s.Pid)
	if s.Signaled {
		fmt.Fprintf(&b, " signal %d", s.TermSig)
	} else {
		fmt.Fprintf(&b, " exit %d", s.ExitCode)
	}
	if s.TimedOut {
		b.WriteString(" (timed out)")
	}
	return b.String()
}

// Transform rewrites a captured stream. It receives the stream's current
// value and the owning result.
type Transform func(value string, r *Result) string

// Stream is one captured output stream. Transforms registered under a name
// apply at most once, so repeating a call is a no-op; distinct names layer
// in the order they were first applied.
type Stream struct {
	original string
	current  string
	applied  []string
	result   *Result
}

func newStream(captured string, r *Result) *Stream {
	return &Stream{original: captured, current: captured, result: r}
}

// Value returns the stream after all applied transforms.
func (s *Stream) Value() string { return s.current }

// Original returns the bytes exactly as captured.
func (s *Stream) Original() string { return s.original }

// Applied returns the names of the transforms applied so far, in order.
func (s *Stream) Applied() []string {
	out := make([]string, len(s.applied))
	copy(out, s.applied)
	return out
}

// Process applies fn under name unless a transform with that name was
// already applied. It returns s for chaining.
func (s *Stream) Process(name string, fn Transform) *Stream {
	for _, n := range s.applied {
		if n == name {
			return s
		}
	}
	s.current = fn(s.current, s.result)
	s.applied = append(s.applied, name)
	return s
}

// Result is the outcome of one Run call. A stream sent to a caller-supplied
// writer was not captured and is reported as nil.
type Result struct {
	args     []string
	status   Status
	duration time.Duration
	stdout   *Stream
	stderr   *Stream
}

func newResult(args []string, status Status, duration time.Duration) *Result {
	return &Result{args: args, status: status, duration: duration}
}

func (r *Result) capture(stdout, stderr *string) {
	if stdout != nil {
		r.stdout = newStream(*stdout, r)
	}
	if stderr != nil {
		r.stderr = newStream(*stderr, r)
	}
}

// Args returns the full argument vector, binary first.
func (r *Result) Args() []string {
	out := make([]string, len(r.args))
	copy(out, r.args)
	return out
}

// CommandLine renders Args as a single line, quoting where needed.
func (r *Result) CommandLine() string {
	return FormatCommandLine(r.args)
}

// Status returns how the process ended.
func (r *Result) Status() Status { return r.status }

// Duration returns the wall time from spawn to exit.
func (r *Result) Duration() time.Duration { return r.duration }

// Success reports whether the process exited with status 0.
func (r *Result) Success() bool { return r.status.Success() }

// ExitCode returns the exit status, -1 when signaled.
func (r *Result) ExitCode() int { return r.status.ExitCode }

// Signaled reports whether a signal terminated the process.
func (r *Result) Signaled() bool { return r.status.Signaled }

// TermSig returns the terminating signal, 0 when not signaled.
func (r *Result) TermSig() int { return r.status.TermSig }

// TimedOut reports whether the runner killed the process at its deadline.
func (r *Result) TimedOut() bool { return r.status.TimedOut }

// Stdout returns the captured stdout stream, or nil if it was not captured.
func (r *Result) Stdout() *Stream { return r.stdout }

// Stderr returns the captured stderr stream, or nil if it was not captured.
func (r *Result) Stderr() *Stream { return r.stderr }

// StdoutString returns the current stdout value, empty when not captured.
func (r *Result) StdoutString() string {
	if r.stdout == nil {
		return ""
	}
	return r.stdout.Value()
}

// StderrString returns the current stderr value, empty when not captured.
func (r *Result) StderrString() string {
	if r.stderr == nil {
		return ""
	}
	return r.stderr.Value()
}

// ProcessStdout applies fn to stdout under name. See Stream.Process.
func (r *Result) ProcessStdout(name string, fn Transform) *Result {
	if r.stdout != nil {
		r.stdout.Process(name, fn)
	}
	return r
}

// ProcessStderr applies fn to stderr under name. See Stream.Process.
func (r *Result) ProcessStderr(name string, fn Transform) *Result {
	if r.stderr != nil {
		r.stderr.Process(name, fn)
	}
	return r
}

// FormatCommandLine joins args with spaces, quoting empty arguments and
// arguments containing whitespace or quotes.
func FormatCommandLine(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'\\") {
			parts[i] = strconv.Quote(a)
			continue
		}
		parts[i] = a
	}
	return strings.Join(parts, " ")
}

// Chomp removes one trailing "\n", "\r\n" or "\r" from s.
func Chomp(s string) string {
	switch {
	case strings.HasSuffix(s, "\r\n"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "\n"), strings.HasSuffix(s, "\r"):
		return s[:len(s)-1]
	default:
		return s
	}
}
