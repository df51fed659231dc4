package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/gitrun/internal/constants"
)

func TestHomeDir(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(constants.HomeEnvVar, "/custom/home")

		dir, err := HomeDir()
		require.NoError(t, err)
		assert.Equal(t, "/custom/home", dir)
	})

	t.Run("user home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv(constants.HomeEnvVar, "")
		t.Setenv("HOME", home)

		dir, err := HomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".gitrun"), dir)
	})
}

func TestPaths(t *testing.T) {
	t.Setenv(constants.HomeEnvVar, "/h")

	global, err := GlobalConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/h", "config.yaml"), global)

	logs, err := LogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/h", "logs"), logs)

	assert.Equal(t, filepath.Join("/repo", ".gitrun.yaml"), ProjectConfigPath("/repo"))
}
