package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.Git.Binary)
	assert.Empty(t, cfg.Git.GlobalArgs)
	assert.Equal(t, time.Duration(0), cfg.Command.Timeout)
	assert.True(t, cfg.Command.RaiseOnError)
	assert.False(t, cfg.Command.Chomp)
	assert.False(t, cfg.Command.NormalizeEncoding)
	assert.True(t, cfg.Log.FileEnabled)
	assert.NoError(t, Validate(cfg))
}

func TestGitConfig_EnvMap(t *testing.T) {
	g := GitConfig{Env: []string{"LC_MESSAGES=C", "EMPTY=", "WITH_EQUALS=a=b", "broken"}}

	assert.Equal(t, map[string]string{
		"LC_MESSAGES": "C",
		"EMPTY":       "",
		"WITH_EQUALS": "a=b",
	}, g.EnvMap())
}
