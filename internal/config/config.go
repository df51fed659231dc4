// Package config provides layered configuration for gitrun.
//
// Configuration sources are applied in the following order (highest
// precedence first):
//  1. CLI flags (applied by the caller after Load)
//  2. Environment variables (GITRUN_* prefix, dots become underscores)
//  3. Project config (.gitrun.yaml in the working directory)
//  4. Global config (~/.gitrun/config.yaml)
//  5. Built-in defaults
//
// This package may import internal/constants and internal/errors only.
package config

import (
	"strings"
	"time"
)

// Config is the root configuration structure for gitrun.
type Config struct {
	// Git controls how the git binary is located and invoked.
	Git GitConfig `yaml:"git" mapstructure:"git"`

	// Command holds the per-call defaults for every git invocation.
	Command CommandConfig `yaml:"command" mapstructure:"command"`

	// Log controls the CLI log file.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// GitConfig configures the git binary and its environment.
type GitConfig struct {
	// Binary is the git executable. Empty means search PATH for "git".
	Binary string `yaml:"binary" mapstructure:"binary"`

	// GlobalArgs are extra arguments placed before every subcommand,
	// after the built-in ones.
	GlobalArgs []string `yaml:"global_args" mapstructure:"global_args"`

	// Env sets environment variables for every invocation, as NAME=value
	// entries. A list keeps names case-sensitive, which viper map keys
	// are not.
	Env []string `yaml:"env" mapstructure:"env"`

	// UnsetEnv removes environment variables for every invocation.
	UnsetEnv []string `yaml:"unset_env" mapstructure:"unset_env"`
}

// EnvMap returns Env as a map. Entries without "=" are skipped; Validate
// rejects them.
func (g GitConfig) EnvMap() map[string]string {
	out := make(map[string]string, len(g.Env))
	for _, entry := range g.Env {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		out[name] = value
	}
	return out
}

// CommandConfig holds command.Options defaults.
type CommandConfig struct {
	// Timeout kills git after this long. Zero disables the timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// RaiseOnError turns failed, signaled and timed out runs into errors.
	// Default: true
	RaiseOnError bool `yaml:"raise_on_error" mapstructure:"raise_on_error"`

	// Chomp strips one trailing newline from captured output.
	Chomp bool `yaml:"chomp" mapstructure:"chomp"`

	// NormalizeEncoding transcodes captured output to UTF-8.
	NormalizeEncoding bool `yaml:"normalize_encoding" mapstructure:"normalize_encoding"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	// FileEnabled writes JSON logs to ~/.gitrun/logs/gitrun.log.
	// Default: true
	FileEnabled bool `yaml:"file_enabled" mapstructure:"file_enabled"`
}
