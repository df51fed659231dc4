package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/gitrun/internal/errors"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.True(t, opts.RaiseOnError())
	assert.False(t, opts.NormalizeEncoding())
	assert.False(t, opts.Chomp())
	assert.Zero(t, opts.Timeout())
	assert.Empty(t, opts.Dir())
}

func TestNewOptions(t *testing.T) {
	opts, err := NewOptions(
		WithRaiseOnError(false),
		WithNormalizeEncoding(true),
		WithChomp(true),
		WithTimeout(2*time.Second),
		WithDir("/tmp"),
	)

	require.NoError(t, err)
	assert.False(t, opts.RaiseOnError())
	assert.True(t, opts.NormalizeEncoding())
	assert.True(t, opts.Chomp())
	assert.Equal(t, 2*time.Second, opts.Timeout())
	assert.Equal(t, "/tmp", opts.Dir())
}

func TestNewOptions_InvalidValuesFailConstruction(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"negative timeout", []Option{WithTimeout(-time.Second)}},
		{"empty env name", []Option{WithEnv(map[string]string{"": "x"})}},
		{"env name with equals", []Option{WithEnv(map[string]string{"A=B": "x"})}},
		{"unset name with nul", []Option{WithUnsetEnv("A\x00")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := NewOptions(tt.opts...)

			require.ErrorIs(t, err, errors.ErrInvalidArgument)
			assert.Nil(t, opts)
		})
	}
}

func TestMustOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { MustOptions(WithTimeout(-1)) })
}

func TestOptionsFromMap(t *testing.T) {
	tests := []struct {
		name    string
		in      map[string]any
		check   func(t *testing.T, o *Options)
		wantErr bool
	}{
		{
			name: "empty map uses defaults",
			in:   map[string]any{},
			check: func(t *testing.T, o *Options) {
				assert.True(t, o.RaiseOnError())
				assert.Zero(t, o.Timeout())
			},
		},
		{
			name: "all keys",
			in: map[string]any{
				"raise_on_error":     false,
				"normalize_encoding": true,
				"chomp":              true,
				"timeout_after":      "1m",
				"dir":                "/repo",
				"env":                map[string]any{"LC_ALL": "C"},
				"unset_env":          []any{"GIT_DIR"},
			},
			check: func(t *testing.T, o *Options) {
				assert.False(t, o.RaiseOnError())
				assert.True(t, o.NormalizeEncoding())
				assert.True(t, o.Chomp())
				assert.Equal(t, time.Minute, o.Timeout())
				assert.Equal(t, "/repo", o.Dir())
				assert.Equal(t, map[string]string{"LC_ALL": "C"}, o.env)
				assert.Equal(t, []string{"GIT_DIR"}, o.unsetEnv)
			},
		},
		{
			name: "integer seconds",
			in:   map[string]any{"timeout_after": 5},
			check: func(t *testing.T, o *Options) {
				assert.Equal(t, 5*time.Second, o.Timeout())
			},
		},
		{
			name: "fractional seconds",
			in:   map[string]any{"timeout_after": 0.5},
			check: func(t *testing.T, o *Options) {
				assert.Equal(t, 500*time.Millisecond, o.Timeout())
			},
		},
		{name: "unknown key", in: map[string]any{"timeout": "1s"}, wantErr: true},
		{name: "wrong type", in: map[string]any{"chomp": "yes"}, wantErr: true},
		{name: "bad duration", in: map[string]any{"timeout_after": "soon"}, wantErr: true},
		{name: "negative duration", in: map[string]any{"timeout_after": "-1s"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := OptionsFromMap(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, errors.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			tt.check(t, opts)
		})
	}
}
