package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/gitrun/internal/constants"
	"github.com/mrz1836/gitrun/internal/errors"
)

// newViperInstance creates a viper instance with defaults and GITRUN_*
// environment binding.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the global config and the project config found in dir, then
// applies GITRUN_* environment variables. Missing files are not an error.
func Load(ctx context.Context, dir string) (*Config, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		// no home directory: run with project config and env only
		globalPath = ""
	}
	cfg, err := LoadFromPaths(ctx, ProjectConfigPath(dir), globalPath)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("git.binary", cfg.Git.Binary).
		Dur("command.timeout", cfg.Command.Timeout).
		Bool("command.raise_on_error", cfg.Command.RaiseOnError).
		Msg("configuration loaded")
	return cfg, nil
}

// LoadFromPaths loads configuration from explicit file paths. Either path
// may be empty or point to a missing file to skip that layer; the project
// file takes precedence over the global one.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if err := mergeConfigFile(v, globalConfigPath); err != nil {
		return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
	}
	if err := mergeConfigFile(v, projectConfigPath); err != nil {
		return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// mergeConfigFile merges the YAML file at path into v. A missing file is
// skipped.
func mergeConfigFile(v *viper.Viper, path string) error {
	if path == "" || !fileExists(path) {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return err
	}
	return nil
}

// isConfigNotFoundError returns true if err is viper's file-not-found error.
func isConfigNotFoundError(err error) bool {
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// viperDecoderOption decodes durations from strings and lists from
// comma-separated environment values.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}
