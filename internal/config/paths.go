package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/gitrun/internal/constants"
	"github.com/mrz1836/gitrun/internal/errors"
)

// HomeDir returns the gitrun home directory: $GITRUN_HOME when set,
// otherwise ~/.gitrun.
func HomeDir() (string, error) {
	if dir := os.Getenv(constants.HomeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AppHome), nil
}

// GlobalConfigPath returns the path of the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", errors.Wrap(err, "get global config path")
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the path of the project configuration file
// in dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, constants.ProjectConfigName)
}

// LogDir returns the directory holding the CLI log file.
func LogDir() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", errors.Wrap(err, "get log directory")
	}
	return filepath.Join(dir, constants.LogsDir), nil
}
