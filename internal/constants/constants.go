// Package constants provides centralized constant values used throughout gitrun.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Names of the executables gitrun drives.
const (
	// GitBinaryName is the basename searched on PATH when no binary is configured.
	GitBinaryName = "git"

	// AppName is the name of this tool, used for the binary and env prefix.
	AppName = "gitrun"

	// EnvPrefix is the prefix for environment variable configuration (GITRUN_*).
	EnvPrefix = "GITRUN"

	// HomeEnvVar overrides the location of the gitrun home directory.
	HomeEnvVar = "GITRUN_HOME"
)

// Directory names and paths used by gitrun for organizing data.
const (
	// AppHome is the hidden directory name where gitrun stores its data.
	// This directory is created in the user's home directory.
	AppHome = ".gitrun"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Command execution defaults.
const (
	// DefaultCommandTimeout is the default deadline applied by the CLI.
	// Zero means no timeout; the library default is no timeout.
	DefaultCommandTimeout time.Duration = 0

	// StatusUntrackedMode is passed to --untracked-files when collecting status.
	StatusUntrackedMode = "all"
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before a log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the maximum number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum number of days to retain old log files.
	LogMaxAgeDays = 14

	// LogCompress controls whether rotated log files are gzip-compressed.
	LogCompress = true
)
