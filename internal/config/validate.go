package config

import (
	"fmt"
	"strings"

	"github.com/mrz1836/gitrun/internal/errors"
)

// Validate checks the configuration for invalid values and returns the
// first failure found.
//
// Validation rules:
//   - git.binary, when set, must not be blank or contain NUL
//   - git.global_args entries must not contain NUL
//   - git.env entries must be NAME=value with a valid name
//   - git.unset_env entries must be valid variable names
//   - command.timeout must not be negative
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}
	if err := validateGitConfig(&cfg.Git); err != nil {
		return err
	}
	return validateCommandConfig(&cfg.Command)
}

func validateGitConfig(cfg *GitConfig) error {
	if cfg.Binary != "" && (strings.TrimSpace(cfg.Binary) == "" || strings.ContainsRune(cfg.Binary, 0)) {
		return errors.Wrapf(errors.ErrConfigInvalidGit, "git.binary is not a usable path: %q", cfg.Binary)
	}
	for _, arg := range cfg.GlobalArgs {
		if strings.ContainsRune(arg, 0) {
			return errors.Wrapf(errors.ErrConfigInvalidGit, "git.global_args contains NUL: %q", arg)
		}
	}
	for _, entry := range cfg.Env {
		name, _, ok := strings.Cut(entry, "=")
		if !ok || !validEnvName(name) {
			return fmt.Errorf("%w: git.env entry %q: %w", errors.ErrConfigInvalidGit, entry, errors.ErrInvalidEnvVarName)
		}
	}
	for _, name := range cfg.UnsetEnv {
		if !validEnvName(name) {
			return fmt.Errorf("%w: git.unset_env entry %q: %w", errors.ErrConfigInvalidGit, name, errors.ErrInvalidEnvVarName)
		}
	}
	return nil
}

func validateCommandConfig(cfg *CommandConfig) error {
	if cfg.Timeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidCommand,
			"command.timeout must not be negative, got %s", cfg.Timeout)
	}
	return nil
}

func validEnvName(name string) bool {
	return name != "" && !strings.ContainsAny(name, "=\x00")
}
