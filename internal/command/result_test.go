package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capturedResult(stdout, stderr string) *Result {
	r := newResult([]string{"git", "status"}, Status{Pid: 10}, 0)
	r.capture(&stdout, &stderr)
	return r
}

func TestStream_ProcessIsIdempotentPerName(t *testing.T) {
	r := capturedResult("  value\n", "")
	calls := 0
	trim := func(s string, _ *Result) string {
		calls++
		return strings.TrimSpace(s)
	}

	r.ProcessStdout("trim", trim).ProcessStdout("trim", trim)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "value", r.StdoutString())
	assert.Equal(t, "  value\n", r.Stdout().Original())
}

func TestStream_TransformsLayer(t *testing.T) {
	r := capturedResult("abc\n", "err\n")

	r.ProcessStdout("chomp", func(s string, _ *Result) string { return Chomp(s) }).
		ProcessStdout("upper", func(s string, _ *Result) string { return strings.ToUpper(s) })

	assert.Equal(t, "ABC", r.StdoutString())
	assert.Equal(t, []string{"chomp", "upper"}, r.Stdout().Applied())
	assert.Equal(t, "err\n", r.StderrString(), "streams are independent")
}

func TestStream_TransformSeesResult(t *testing.T) {
	r := capturedResult("out", "")

	r.ProcessStdout("annotate", func(s string, res *Result) string {
		return s + " from " + res.CommandLine()
	})

	assert.Equal(t, "out from git status", r.StdoutString())
}

func TestResult_UncapturedStreams(t *testing.T) {
	r := newResult([]string{"git"}, Status{}, 0)
	r.capture(nil, nil)

	assert.Nil(t, r.Stdout())
	assert.Nil(t, r.Stderr())
	assert.Empty(t, r.StdoutString())
	assert.Same(t, r, r.ProcessStdout("x", func(s string, _ *Result) string { return s }))
}

func TestResult_ArgsIsACopy(t *testing.T) {
	r := newResult([]string{"git", "status"}, Status{}, 0)

	args := r.Args()
	args[0] = "changed"

	assert.Equal(t, "git", r.Args()[0])
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  Status
		success bool
		text    string
	}{
		{"exited zero", Status{Pid: 1, ExitCode: 0}, true, "pid 1 exit 0"},
		{"exited non-zero", Status{Pid: 2, ExitCode: 128}, false, "pid 2 exit 128"},
		{"signaled", Status{Pid: 3, ExitCode: -1, Signaled: true, TermSig: 15}, false, "pid 3 signal 15"},
		{"timed out", Status{Pid: 4, ExitCode: -1, Signaled: true, TermSig: 9, TimedOut: true}, false, "pid 4 signal 9 (timed out)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.success, tt.status.Success())
			assert.Equal(t, tt.text, tt.status.String())
		})
	}
}

func TestChomp(t *testing.T) {
	tests := map[string]string{
		"hello\n":   "hello",
		"hello\r\n": "hello",
		"hello\r":   "hello",
		"hello\n\n": "hello\n",
		"hello":     "hello",
		"":          "",
	}

	for in, expected := range tests {
		assert.Equal(t, expected, Chomp(in), "input %q", in)
	}
}

func TestFormatCommandLine(t *testing.T) {
	assert.Equal(t, `git commit -m "two words"`, FormatCommandLine([]string{"git", "commit", "-m", "two words"}))
	assert.Equal(t, `git log ""`, FormatCommandLine([]string{"git", "log", ""}))
	assert.Equal(t, "git status", FormatCommandLine([]string{"git", "status"}))
}
