package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/gitrun/internal/constants"
)

// DefaultConfig returns the built-in configuration, the base layer that
// files, environment variables and flags override.
func DefaultConfig() *Config {
	return &Config{
		Git: GitConfig{
			GlobalArgs: []string{},
			Env:        []string{},
			UnsetEnv:   []string{},
		},
		Command: CommandConfig{
			Timeout:      constants.DefaultCommandTimeout,
			RaiseOnError: true,
		},
		Log: LogConfig{
			FileEnabled: true,
		},
	}
}

// setDefaults registers every key with viper so environment variables
// are picked up on Unmarshal. Keys must match the mapstructure tags.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("git.binary", d.Git.Binary)
	v.SetDefault("git.global_args", d.Git.GlobalArgs)
	v.SetDefault("git.env", d.Git.Env)
	v.SetDefault("git.unset_env", d.Git.UnsetEnv)

	v.SetDefault("command.timeout", d.Command.Timeout.String())
	v.SetDefault("command.raise_on_error", d.Command.RaiseOnError)
	v.SetDefault("command.chomp", d.Command.Chomp)
	v.SetDefault("command.normalize_encoding", d.Command.NormalizeEncoding)

	v.SetDefault("log.file_enabled", d.Log.FileEnabled)
}
