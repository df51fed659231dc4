package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/gitrun/internal/errors"
)

func TestValidate_Nil(t *testing.T) {
	require.ErrorIs(t, Validate(nil), errors.ErrConfigNil)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "binary set", mutate: func(c *Config) { c.Git.Binary = "/usr/bin/git" }},
		{name: "positive timeout", mutate: func(c *Config) { c.Command.Timeout = time.Minute }},
		{
			name:    "blank binary",
			mutate:  func(c *Config) { c.Git.Binary = "   " },
			wantErr: []error{errors.ErrConfigInvalidGit},
		},
		{
			name:    "global arg with NUL",
			mutate:  func(c *Config) { c.Git.GlobalArgs = []string{"-c", "a=\x00"} },
			wantErr: []error{errors.ErrConfigInvalidGit},
		},
		{
			name:    "env entry without equals",
			mutate:  func(c *Config) { c.Git.Env = []string{"LC_ALL"} },
			wantErr: []error{errors.ErrConfigInvalidGit, errors.ErrInvalidEnvVarName},
		},
		{
			name:    "env entry with empty name",
			mutate:  func(c *Config) { c.Git.Env = []string{"=x"} },
			wantErr: []error{errors.ErrConfigInvalidGit, errors.ErrInvalidEnvVarName},
		},
		{
			name:    "unset name with equals",
			mutate:  func(c *Config) { c.Git.UnsetEnv = []string{"A=B"} },
			wantErr: []error{errors.ErrConfigInvalidGit, errors.ErrInvalidEnvVarName},
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Command.Timeout = -time.Second },
			wantErr: []error{errors.ErrConfigInvalidCommand},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				require.ErrorIs(t, err, want)
			}
		})
	}
}
