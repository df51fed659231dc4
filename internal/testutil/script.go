package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteScript writes an executable /bin/sh script named name into a new
// temporary directory and returns its path. Tests using it are skipped on
// platforms without a POSIX shell.
func WriteScript(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}

	path := filepath.Join(t.TempDir(), name)
	content := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(content), 0o700); err != nil { //nolint:gosec // test executable
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

// RequireGit skips the test when git is not installed and returns its path.
func RequireGit(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("git")
	if err != nil {
		t.Skip("git not found on PATH")
	}
	return path
}

// InitRepo creates an empty git repository with a configured identity.
func InitRepo(t *testing.T) string {
	t.Helper()
	git := RequireGit(t)
	dir := t.TempDir()

	for _, args := range [][]string{
		{"init", "--quiet", "--initial-branch=main", dir},
		{"-C", dir, "config", "user.email", "test@example.com"},
		{"-C", dir, "config", "user.name", "Test User"},
		{"-C", dir, "config", "commit.gpgsign", "false"},
	} {
		cmd := exec.Command(git, args...) //#nosec G204 -- test helper
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v failed: %v: %s", args, err, out)
		}
	}
	return dir
}

// Git runs git in dir and fails the test on error.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	git := RequireGit(t)
	cmd := exec.Command(git, append([]string{"-C", dir}, args...)...) //#nosec G204 -- test helper
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v: %s", args, err, out)
	}
	return string(out)
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}
