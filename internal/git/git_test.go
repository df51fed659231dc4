package git

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/gitrun/internal/command"
	"github.com/mrz1836/gitrun/internal/errors"
	"github.com/mrz1836/gitrun/internal/status"
	"github.com/mrz1836/gitrun/internal/testutil"
)

func openRepo(t *testing.T) *Repo {
	t.Helper()
	dir := testutil.InitRepo(t)
	repo, err := Open(t.Context(), dir, Config{})
	require.NoError(t, err)
	return repo
}

func TestNewRunner_ArgsAndEnv(t *testing.T) {
	fake := testutil.WriteScript(t, "git", `printf '%s\n' "$@"; echo "LC_ALL=$LC_ALL"; echo "GIT_DIR=${GIT_DIR-unset}"; echo "EXTRA=$EXTRA"`)
	runner, err := NewRunner(Config{
		Binary:     fake,
		GlobalArgs: []string{"-c", "user.name=x"},
		Env:        map[string]string{"EXTRA": "1"},
		Environ:    func() []string { return []string{"GIT_DIR=/elsewhere", "PATH=/usr/bin:/bin"} },
	}, "-C", "/repo")
	require.NoError(t, err)

	res, err := runner.Run(t.Context(), nil, "status")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(res.StdoutString()), "\n")
	assert.Equal(t, []string{
		"-c", "color.ui=false", "-c", "core.quotepath=false",
		"-c", "user.name=x",
		"-C", "/repo",
		"status",
		"LC_ALL=C",
		"GIT_DIR=unset",
		"EXTRA=1",
	}, lines)
}

func TestNewRunner_MissingBinaryOnPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := NewRunner(Config{})

	require.ErrorIs(t, err, errors.ErrExecutableNotFound)
}

func TestOpen(t *testing.T) {
	t.Run("repository", func(t *testing.T) {
		repo := openRepo(t)
		assert.True(t, filepath.IsAbs(repo.Dir()))
		assert.NotNil(t, repo.Runner())
	})

	t.Run("not a repository", func(t *testing.T) {
		testutil.RequireGit(t)
		dir := t.TempDir()
		t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

		_, err := Open(t.Context(), dir, Config{})

		require.ErrorIs(t, err, ErrNotGitRepo)
		assert.Equal(t, ErrorTypeNotARepo, ClassifyError(err))
	})

	t.Run("empty dir", func(t *testing.T) {
		_, err := Open(t.Context(), "", Config{})
		require.ErrorIs(t, err, errors.ErrEmptyValue)
	})
}

func TestInit(t *testing.T) {
	testutil.RequireGit(t)
	dir := filepath.Join(t.TempDir(), "new")

	repo, err := Init(t.Context(), dir, Config{}, InitOptions{InitialBranch: "trunk"})
	require.NoError(t, err)

	branch, err := repo.CurrentBranch(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "trunk", branch)

	report, err := repo.Status(t.Context(), StatusOptions{})
	require.NoError(t, err)
	require.NotNil(t, report.Branch())
	assert.True(t, report.Branch().IsInitial())
	assert.Equal(t, "trunk", report.Branch().Name)
}

func TestClone(t *testing.T) {
	src := openRepo(t)
	testutil.WriteFile(t, src.Dir(), "README.md", "hello\n")
	require.NoError(t, src.Add(t.Context()))
	require.NoError(t, src.Commit(t.Context(), "initial", CommitOptions{}))

	dst := filepath.Join(t.TempDir(), "clone")
	repo, err := Clone(t.Context(), src.Dir(), dst, Config{}, CloneOptions{})
	require.NoError(t, err)

	report, err := repo.Status(t.Context(), StatusOptions{})
	require.NoError(t, err)
	assert.True(t, report.IsClean())
	assert.Equal(t, "origin/main", report.Branch().Upstream)

	_, err = Clone(t.Context(), "", dst, Config{}, CloneOptions{})
	require.ErrorIs(t, err, errors.ErrEmptyValue)
}

func TestRepo_StatusLifecycle(t *testing.T) {
	repo := openRepo(t)
	ctx := t.Context()

	testutil.WriteFile(t, repo.Dir(), "a.txt", "one\n")
	testutil.WriteFile(t, repo.Dir(), "old name.txt", "rename me, this content is long enough\n")
	testutil.WriteFile(t, repo.Dir(), ".gitignore", "*.log\n")
	require.NoError(t, repo.Add(ctx))
	require.NoError(t, repo.Commit(ctx, "initial", CommitOptions{}))

	testutil.WriteFile(t, repo.Dir(), "a.txt", "two\n")
	testutil.WriteFile(t, repo.Dir(), "new file.txt", "new\n")
	testutil.WriteFile(t, repo.Dir(), "debug.log", "noise\n")
	testutil.Git(t, repo.Dir(), "mv", "old name.txt", "new name.txt")

	report, err := repo.Status(ctx, StatusOptions{Ignored: true})
	require.NoError(t, err)

	assert.Equal(t, "main", report.Branch().Name)
	assert.False(t, report.Branch().IsInitial())
	assert.False(t, report.IsClean())

	byPath := map[string]status.Entry{}
	for _, e := range report.Entries() {
		byPath[e.Path()] = e
	}

	require.Contains(t, byPath, "a.txt")
	assert.Equal(t, status.StatusModified, byPath["a.txt"].WorktreeStatus())
	assert.False(t, byPath["a.txt"].IsStaged())

	require.Contains(t, byPath, "new name.txt")
	renamed, ok := byPath["new name.txt"].(status.RenamedEntry)
	require.True(t, ok)
	assert.Equal(t, "old name.txt", renamed.OriginalPath())
	assert.Equal(t, status.OperationRename, renamed.Operation())
	assert.True(t, renamed.IsFullyStaged())

	require.Contains(t, byPath, "new file.txt")
	assert.True(t, byPath["new file.txt"].IsUntracked())

	require.Contains(t, byPath, "debug.log")
	assert.True(t, byPath["debug.log"].IsIgnored())
}

func TestRepo_StatusPathspec(t *testing.T) {
	repo := openRepo(t)
	testutil.WriteFile(t, repo.Dir(), "keep/a.txt", "a\n")
	testutil.WriteFile(t, repo.Dir(), "skip/b.txt", "b\n")

	report, err := repo.Status(t.Context(), StatusOptions{Pathspec: []string{"keep"}})
	require.NoError(t, err)

	require.Len(t, report.Entries(), 1)
	assert.Equal(t, "keep/a.txt", report.Entries()[0].Path())
}

func TestRepo_MergeConflict(t *testing.T) {
	repo := openRepo(t)
	ctx := t.Context()

	testutil.WriteFile(t, repo.Dir(), "f.txt", "base\n")
	require.NoError(t, repo.Add(ctx))
	require.NoError(t, repo.Commit(ctx, "base", CommitOptions{}))

	testutil.Git(t, repo.Dir(), "checkout", "--quiet", "-b", "other")
	testutil.WriteFile(t, repo.Dir(), "f.txt", "theirs\n")
	require.NoError(t, repo.Add(ctx, "f.txt"))
	require.NoError(t, repo.Commit(ctx, "theirs", CommitOptions{}))

	testutil.Git(t, repo.Dir(), "checkout", "--quiet", "main")
	testutil.WriteFile(t, repo.Dir(), "f.txt", "ours\n")
	require.NoError(t, repo.Add(ctx, "f.txt"))
	require.NoError(t, repo.Commit(ctx, "ours", CommitOptions{}))

	opts := command.MustOptions(command.WithRaiseOnError(false))
	res, err := repo.Run(ctx, opts, "merge", "other")
	require.NoError(t, err)
	assert.False(t, res.Success())

	report, err := repo.Status(ctx, StatusOptions{})
	require.NoError(t, err)
	assert.True(t, report.HasMergeConflict())
	require.Len(t, report.Unmerged(), 1)
	assert.Equal(t, status.ConflictBothModified, report.Unmerged()[0].Conflict())
}

func TestRepo_CurrentBranchDetached(t *testing.T) {
	repo := openRepo(t)
	ctx := t.Context()
	require.NoError(t, repo.Commit(ctx, "empty", CommitOptions{AllowEmpty: true}))
	testutil.Git(t, repo.Dir(), "checkout", "--quiet", "--detach")

	_, err := repo.CurrentBranch(ctx)

	require.ErrorIs(t, err, ErrDetachedHead)

	report, err := repo.Status(ctx, StatusOptions{})
	require.NoError(t, err)
	assert.True(t, report.Branch().IsDetached())
}

func TestRepo_CommitValidation(t *testing.T) {
	repo := openRepo(t)

	err := repo.Commit(t.Context(), "  ", CommitOptions{})
	require.ErrorIs(t, err, errors.ErrEmptyValue)

	err = repo.Commit(t.Context(), "nothing staged", CommitOptions{})
	require.ErrorIs(t, err, errors.ErrCommandFailed)
}

func TestRepo_CommitAuthor(t *testing.T) {
	repo := openRepo(t)
	ctx := t.Context()

	require.NoError(t, repo.Commit(ctx, "authored", CommitOptions{AllowEmpty: true, Author: "Other Person <other@example.com>"}))

	res, err := repo.Run(ctx, command.MustOptions(command.WithChomp(true)), "log", "-1", "--format=%an")
	require.NoError(t, err)
	assert.Equal(t, "Other Person", res.StdoutString())
}

func TestRepo_AddMissingPath(t *testing.T) {
	repo := openRepo(t)

	err := repo.Add(t.Context(), "does-not-exist.txt")

	require.ErrorIs(t, err, errors.ErrCommandFailed)
	assert.Equal(t, ErrorTypeNotFound, ClassifyError(err))
}

func TestRepo_AddRetriesWhileLocked(t *testing.T) {
	repo := openRepo(t)
	testutil.WriteFile(t, repo.Dir(), "f.txt", "x\n")
	lock := filepath.Join(repo.Dir(), ".git", "index.lock")
	testutil.WriteFile(t, repo.Dir(), filepath.Join(".git", "index.lock"), "")

	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	repo.cfg.Logger = &logger
	repo.cfg.LockRetry = &LockRetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond, Multiplier: 1}

	err := repo.Add(t.Context(), "f.txt")

	require.ErrorIs(t, err, errors.ErrCommandFailed)
	assert.Equal(t, ErrorTypeLock, ClassifyError(err))
	assert.Contains(t, logs.String(), "git lock held, retrying")
	assert.FileExists(t, lock)
}

func TestRepo_Timeout(t *testing.T) {
	fake := testutil.WriteScript(t, "git", `case "$*" in *rev-parse*) exit 0;; esac; sleep 5`)
	repo, err := Open(t.Context(), t.TempDir(), Config{Binary: fake, Timeout: 100 * time.Millisecond})
	require.NoError(t, err)

	_, err = repo.Status(t.Context(), StatusOptions{})

	require.ErrorIs(t, err, errors.ErrCommandTimeout)
}

func TestRepo_StatusParseFailure(t *testing.T) {
	fake := testutil.WriteScript(t, "git", `case "$*" in *rev-parse*) exit 0;; esac; printf 'x bogus\000'`)
	repo, err := Open(t.Context(), t.TempDir(), Config{Binary: fake})
	require.NoError(t, err)

	_, err = repo.Status(t.Context(), StatusOptions{})

	require.ErrorIs(t, err, errors.ErrUnknownStatusRecord)
}

func TestVersion(t *testing.T) {
	fake := testutil.WriteScript(t, "git", `echo "git version 2.99.1"`)

	v, err := Version(t.Context(), Config{Binary: fake})

	require.NoError(t, err)
	assert.Equal(t, "2.99.1", v)
}
