package command

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/mrz1836/gitrun/internal/errors"
)

// Options controls how a single Run call behaves. Build it with NewOptions
// or OptionsFromMap; both validate eagerly so an Options value that exists
// is always valid.
type Options struct {
	raiseOnError      bool
	normalizeEncoding bool
	chomp             bool
	timeout           time.Duration
	stdout            io.Writer
	stderr            io.Writer
	dir               string
	env               map[string]string
	unsetEnv          []string
}

// Option configures an Options value.
type Option func(*Options)

// DefaultOptions returns the options used when Run receives nil:
// raise on error, no normalization, no chomp, no timeout.
func DefaultOptions() *Options {
	return &Options{raiseOnError: true}
}

// NewOptions applies opts over DefaultOptions and validates the result.
func NewOptions(opts ...Option) (*Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// MustOptions is NewOptions for statically known option sets. It panics on
// invalid input.
func MustOptions(opts ...Option) *Options {
	o, err := NewOptions(opts...)
	if err != nil {
		panic(err)
	}
	return o
}

// WithRaiseOnError controls whether failed, signaled, and timed out
// commands are returned as errors. Defaults to true.
func WithRaiseOnError(raise bool) Option {
	return func(o *Options) { o.raiseOnError = raise }
}

// WithNormalizeEncoding transcodes captured output to UTF-8 line by line.
func WithNormalizeEncoding(normalize bool) Option {
	return func(o *Options) { o.normalizeEncoding = normalize }
}

// WithChomp removes one trailing line terminator from captured output.
func WithChomp(chomp bool) Option {
	return func(o *Options) { o.chomp = chomp }
}

// WithTimeout kills the process after d. Zero disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.timeout = d }
}

// WithStdout sends stdout to w instead of capturing it.
func WithStdout(w io.Writer) Option {
	return func(o *Options) { o.stdout = w }
}

// WithStderr sends stderr to w instead of capturing it.
func WithStderr(w io.Writer) Option {
	return func(o *Options) { o.stderr = w }
}

// WithDir runs the process in dir.
func WithDir(dir string) Option {
	return func(o *Options) { o.dir = dir }
}

// WithEnv overrides environment variables for this call.
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		if o.env == nil {
			o.env = make(map[string]string, len(env))
		}
		for k, v := range env {
			o.env[k] = v
		}
	}
}

// WithUnsetEnv removes environment variables for this call.
func WithUnsetEnv(names ...string) Option {
	return func(o *Options) { o.unsetEnv = append(o.unsetEnv, names...) }
}

// RaiseOnError reports whether command failures are returned as errors.
func (o *Options) RaiseOnError() bool { return o.raiseOnError }

// NormalizeEncoding reports whether captured output is transcoded.
func (o *Options) NormalizeEncoding() bool { return o.normalizeEncoding }

// Chomp reports whether one trailing line terminator is removed.
func (o *Options) Chomp() bool { return o.chomp }

// Timeout returns the deadline, zero meaning none.
func (o *Options) Timeout() time.Duration { return o.timeout }

// Dir returns the working directory, empty meaning the current one.
func (o *Options) Dir() string { return o.dir }

func (o *Options) validate() error {
	if o.timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative, got %s", errors.ErrInvalidArgument, o.timeout)
	}
	for name := range o.env {
		if err := ValidateEnvName(name); err != nil {
			return err
		}
	}
	for _, name := range o.unsetEnv {
		if err := ValidateEnvName(name); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEnvName rejects names that cannot appear in an environment block.
func ValidateEnvName(name string) error {
	if name == "" || strings.ContainsAny(name, "=\x00") {
		return fmt.Errorf("%w: %w: %q", errors.ErrInvalidArgument, errors.ErrInvalidEnvVarName, name)
	}
	return nil
}

// optionFields mirrors Options for decoding from loosely typed maps, such as
// values read from a config file.
type optionFields struct {
	RaiseOnError      *bool             `mapstructure:"raise_on_error"`
	NormalizeEncoding bool              `mapstructure:"normalize_encoding"`
	Chomp             bool              `mapstructure:"chomp"`
	TimeoutAfter      time.Duration     `mapstructure:"timeout_after"`
	Dir               string            `mapstructure:"dir"`
	Env               map[string]string `mapstructure:"env"`
	UnsetEnv          []string          `mapstructure:"unset_env"`
}

// OptionsFromMap builds Options from a map with the keys raise_on_error,
// normalize_encoding, chomp, timeout_after, dir, env and unset_env.
// timeout_after accepts a duration string ("30s") or a number of seconds.
// Unknown keys and mistyped values are rejected.
func OptionsFromMap(m map[string]any) (*Options, error) {
	var fields optionFields
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			secondsToDurationHook(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		ErrorUnused: true,
		Result:      &fields,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidArgument, err)
	}
	if err := decoder.Decode(m); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidArgument, err)
	}

	raise := true
	if fields.RaiseOnError != nil {
		raise = *fields.RaiseOnError
	}
	return NewOptions(
		WithRaiseOnError(raise),
		WithNormalizeEncoding(fields.NormalizeEncoding),
		WithChomp(fields.Chomp),
		WithTimeout(fields.TimeoutAfter),
		WithDir(fields.Dir),
		WithEnv(fields.Env),
		WithUnsetEnv(fields.UnsetEnv...),
	)
}

// secondsToDurationHook converts plain numbers into durations in seconds.
func secondsToDurationHook() mapstructure.DecodeHookFuncType {
	return func(_, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case int:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		default:
			return data, nil
		}
	}
}
