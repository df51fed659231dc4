package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/gitrun/internal/constants"
	"github.com/mrz1836/gitrun/internal/errors"
	"github.com/mrz1836/gitrun/internal/status"
	"github.com/mrz1836/gitrun/internal/testutil"
)

// execute runs the root command with args and returns stdout, stderr and
// the error. The gitrun home is redirected to a temp directory.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(constants.HomeEnvVar, t.TempDir())
	t.Setenv("NO_COLOR", "1")

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--quiet"}, args...))

	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Help(t *testing.T) {
	stdout, _, err := execute(t, "", "--help")
	require.NoError(t, err)

	for _, want := range []string{"gitrun", "--output", "--verbose", "--quiet", "-C, --dir", "status", "parse", "exec", "config"} {
		assert.Contains(t, stdout, want)
	}
}

func TestRootCmd_Version(t *testing.T) {
	stdout, _, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1.2.3 (commit: abc123, built: 2026-01-01)")
}

func TestFormatVersion_Defaults(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "dev (commit: none, built: unknown)", formatVersion(BuildInfo{}))
}

func TestRootCmd_InvalidOutputFormat(t *testing.T) {
	_, _, err := execute(t, "", "-o", "xml", "parse")

	require.ErrorIs(t, err, errors.ErrInvalidOutputFormat)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCmd_VerboseAndQuietExclusive(t *testing.T) {
	_, _, err := execute(t, "", "--verbose", "parse")

	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestParseCmd_Stdin(t *testing.T) {
	stdout, _, err := execute(t, sampleStatusOutput(), "parse")
	require.NoError(t, err)

	assert.Contains(t, stdout, "M. staged.go\n")
	assert.Contains(t, stdout, "?? 日本語.txt\n")
}

func TestParseCmd_FileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "status.bin")
	require.NoError(t, os.WriteFile(path, []byte(sampleStatusOutput()), 0o600))

	stdout, _, err := execute(t, "", "-o", "json", "parse", path)
	require.NoError(t, err)

	var summary status.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	require.NotNil(t, summary.Branch)
	assert.Equal(t, "main", summary.Branch.Name)
	assert.Equal(t, 2, summary.Stash)
	assert.True(t, summary.Conflict)
	assert.False(t, summary.Clean)
	assert.Len(t, summary.Entries, 5)
	assert.Equal(t, "old.go", summary.Entries[1].OriginalPath)
}

func TestParseCmd_YAML(t *testing.T) {
	stdout, _, err := execute(t, "? a.txt\x00", "-o", "yaml", "parse", "-")
	require.NoError(t, err)

	var summary status.Summary
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, 1, summary.Counts.Untracked)
	assert.Equal(t, "a.txt", summary.Entries[0].Path)
}

func TestParseCmd_Errors(t *testing.T) {
	_, _, err := execute(t, "x bogus\x00", "parse")
	require.ErrorIs(t, err, errors.ErrUnknownStatusRecord)
	assert.Contains(t, err.Error(), "standard input")

	_, _, err = execute(t, "1 M.\x00", "parse")
	require.ErrorIs(t, err, errors.ErrMalformedStatusRecord)

	_, _, err = execute(t, "", "parse", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestStatusCmd(t *testing.T) {
	dir := testutil.InitRepo(t)
	testutil.WriteFile(t, dir, "tracked.txt", "one\n")
	testutil.Git(t, dir, "add", "tracked.txt")
	testutil.Git(t, dir, "commit", "-q", "-m", "init")
	testutil.WriteFile(t, dir, "tracked.txt", "two\n")
	testutil.WriteFile(t, dir, "new file.txt", "x\n")

	stdout, _, err := execute(t, "", "-C", dir, "status")
	require.NoError(t, err)
	assert.Equal(t, ".M tracked.txt\n?? new file.txt\n", stdout)

	stdout, _, err = execute(t, "", "-C", dir, "-o", "json", "status", "--", "tracked.txt")
	require.NoError(t, err)

	var summary status.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, 1, summary.Counts.Unstaged)
	assert.Equal(t, 0, summary.Counts.Untracked)
	assert.Equal(t, "main", summary.Branch.Name)
}

func TestStatusCmd_Ignored(t *testing.T) {
	dir := testutil.InitRepo(t)
	testutil.WriteFile(t, dir, ".gitignore", "*.log\n")
	testutil.WriteFile(t, dir, "build.log", "x\n")

	stdout, _, err := execute(t, "", "-C", dir, "status", "--ignored")
	require.NoError(t, err)
	assert.Contains(t, stdout, "!! build.log\n")

	stdout, _, err = execute(t, "", "-C", dir, "status")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "build.log")
}

func TestStatusCmd_NotARepo(t *testing.T) {
	testutil.RequireGit(t)
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, _, err := execute(t, "", "-C", dir, "status")
	require.ErrorIs(t, err, errors.ErrNotGitRepo)
	assert.Equal(t, ExitError, ExitCodeForError(err))
}

func TestExecCmd(t *testing.T) {
	dir := testutil.InitRepo(t)

	stdout, _, err := execute(t, "", "-C", dir, "exec", "--", "rev-parse", "--is-inside-work-tree")
	require.NoError(t, err)
	assert.Equal(t, "true\n", stdout)

	stdout, _, err = execute(t, "", "-C", dir, "exec", "--chomp", "--", "rev-parse", "--is-inside-work-tree")
	require.NoError(t, err)
	assert.Equal(t, "true", stdout)
}

func TestExecCmd_FailureRaises(t *testing.T) {
	dir := testutil.InitRepo(t)

	_, stderr, err := execute(t, "", "-C", dir, "exec", "--", "rev-parse", "--verify", "no-such-ref")

	require.ErrorIs(t, err, errors.ErrCommandFailed)
	assert.NotEmpty(t, stderr)
	assert.Equal(t, ExitError, ExitCodeForError(err))
}

func TestExecCmd_NoRaiseMirrorsExitCode(t *testing.T) {
	dir := testutil.InitRepo(t)
	testutil.WriteFile(t, dir, "a.txt", "one\n")
	testutil.Git(t, dir, "add", "a.txt")
	testutil.Git(t, dir, "commit", "-q", "-m", "init")
	testutil.WriteFile(t, dir, "a.txt", "two\n")

	_, _, err := execute(t, "", "-C", dir, "exec", "--no-raise", "--", "diff", "--quiet")

	require.ErrorIs(t, err, errors.ErrOutputWritten)
	assert.Equal(t, 1, ExitCodeForError(err))
}

func TestExecCmd_JSON(t *testing.T) {
	dir := testutil.InitRepo(t)

	stdout, _, err := execute(t, "", "-C", dir, "-o", "json", "exec", "--no-raise", "--", "rev-parse", "--verify", "no-such-ref")
	require.ErrorIs(t, err, errors.ErrOutputWritten)

	var res ExecResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, 128, res.ExitCode)
	assert.False(t, res.Signaled)
	assert.Contains(t, res.Command, "rev-parse --verify no-such-ref")
	assert.NotEmpty(t, res.Stderr)
}

func TestExecCmd_TimeoutWithFakeGit(t *testing.T) {
	dir := testutil.InitRepo(t)
	gitPath := testutil.RequireGit(t)
	// rev-parse passes through so Open succeeds; everything else hangs.
	fake := testutil.WriteScript(t, "git", `for a in "$@"; do
  if [ "$a" = "rev-parse" ]; then exec "`+gitPath+`" "$@"; fi
done
sleep 5`)
	t.Setenv("GITRUN_GIT_BINARY", fake)

	_, _, err := execute(t, "", "-C", dir, "exec", "--timeout", "100ms", "--", "fetch")

	require.ErrorIs(t, err, errors.ErrCommandTimeout)
}

func TestExecCmd_Stream(t *testing.T) {
	dir := testutil.InitRepo(t)

	stdout, _, err := execute(t, "", "-C", dir, "exec", "--stream", "--", "rev-parse", "--is-inside-work-tree")
	require.NoError(t, err)
	assert.Equal(t, "true\n", stdout)
}

func TestExecCmd_RequiresArgs(t *testing.T) {
	_, _, err := execute(t, "", "exec")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestVersionCmd_FakeGit(t *testing.T) {
	fake := testutil.WriteScript(t, "git", `echo "git version 2.99.1"`)
	t.Setenv("GITRUN_GIT_BINARY", fake)

	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "gitrun 1.2.3 (commit: abc123, built: 2026-01-01)\ngit 2.99.1\n", stdout)

	stdout, _, err = execute(t, "", "-o", "json", "version")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, VersionInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01", Git: "2.99.1"}, info)
}

func TestConfigShowCmd_Sources(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, ".gitrun.yaml", "command:\n  timeout: 5s\ngit:\n  env:\n    - GIT_ASKPASS=/usr/bin/secret-helper\n    - GIT_TRACE=0\n")
	t.Setenv("GITRUN_COMMAND_CHOMP", "true")

	stdout, _, err := execute(t, "", "-C", dir, "-o", "json", "config", "show")
	require.NoError(t, err)

	var annotated AnnotatedConfig
	require.NoError(t, json.Unmarshal([]byte(stdout), &annotated))

	assert.Equal(t, SourceProject, annotated.Command["timeout"].Source)
	assert.Equal(t, "5s", annotated.Command["timeout"].Value)
	assert.Equal(t, SourceEnv, annotated.Command["chomp"].Source)
	assert.Equal(t, true, annotated.Command["chomp"].Value)
	assert.Equal(t, SourceDefault, annotated.Command["raise_on_error"].Source)
	assert.Equal(t, SourceDefault, annotated.Log["file_enabled"].Source)
	assert.Equal(t, SourceProject, annotated.Git["env"].Source)
	assert.Equal(t, []any{"GIT_ASKPASS=[REDACTED]", "GIT_TRACE=0"}, annotated.Git["env"].Value)
}

func TestConfigShowCmd_Text(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := execute(t, "", "-C", dir, "config", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Effective gitrun configuration")
	assert.Contains(t, stdout, "  raise_on_error: true  # default\n")
	assert.Contains(t, stdout, "  binary: (not set)  # default\n")
	assert.Contains(t, stdout, filepath.Join(dir, ".gitrun.yaml")+" (not found)")
}

func TestConfigShowCmd_InvalidProjectConfig(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, ".gitrun.yaml", "command:\n  timeout: -1s\n")

	_, _, err := execute(t, "", "-C", dir, "config", "show")
	require.ErrorIs(t, err, errors.ErrConfigInvalidCommand)
}
