// Package command runs an external binary to completion, captures its
// output, and classifies the outcome.
//
// A Runner is configured once with the binary, the arguments that precede
// every call, and environment overrides. Each Run call is independent: it
// spawns one process, waits for it, and returns a *Result or one of the
// typed errors in this package.
package command

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/gitrun/internal/charset"
	"github.com/mrz1836/gitrun/internal/ctxutil"
	"github.com/mrz1836/gitrun/internal/errors"
	"github.com/mrz1836/gitrun/internal/logging"
)

// Names under which the runner registers its stream transforms.
const (
	TransformNormalize = "normalize"
	TransformChomp     = "chomp"
)

// Config configures a Runner.
type Config struct {
	// Binary is the path of the executable to run. Required.
	Binary string

	// GlobalArgs are placed between the binary and the per-call arguments.
	GlobalArgs []string

	// Env overrides variables of the ambient environment.
	Env map[string]string

	// UnsetEnv removes variables from the ambient environment.
	UnsetEnv []string

	// Logger receives one debug event per invocation. When nil the logger
	// attached to the Run context is used.
	Logger *zerolog.Logger

	// Environ returns the ambient environment. Defaults to os.Environ.
	Environ func() []string
}

// Runner executes one binary with a fixed configuration. The configuration
// is copied at construction; a Runner is safe for concurrent use.
type Runner struct {
	binary     string
	globalArgs []string
	env        map[string]string
	unsetEnv   []string
	logger     *zerolog.Logger
	environ    func() []string
}

// NewRunner validates cfg and returns a Runner.
func NewRunner(cfg Config) (*Runner, error) {
	if strings.TrimSpace(cfg.Binary) == "" {
		return nil, fmt.Errorf("%w: binary path: %w", errors.ErrInvalidArgument, errors.ErrEmptyValue)
	}

	r := &Runner{
		binary:     cfg.Binary,
		globalArgs: append([]string(nil), cfg.GlobalArgs...),
		env:        make(map[string]string, len(cfg.Env)),
		unsetEnv:   append([]string(nil), cfg.UnsetEnv...),
		logger:     cfg.Logger,
		environ:    cfg.Environ,
	}
	for k, v := range cfg.Env {
		if err := ValidateEnvName(k); err != nil {
			return nil, err
		}
		r.env[k] = v
	}
	for _, name := range r.unsetEnv {
		if err := ValidateEnvName(name); err != nil {
			return nil, err
		}
	}
	if r.environ == nil {
		r.environ = os.Environ
	}
	return r, nil
}

// Binary returns the configured executable path.
func (r *Runner) Binary() string { return r.binary }

// GlobalArgs returns a copy of the arguments placed before every call.
func (r *Runner) GlobalArgs() []string {
	return append([]string(nil), r.globalArgs...)
}

// Run executes the binary with args appended after the global arguments.
// Each arg is converted to its textual form; slices and arrays are rejected
// with errors.ErrInvalidArgument before anything is spawned. A nil opts
// means DefaultOptions.
//
// Outcome classification, in priority order: timed out, signaled, non-zero
// exit, success. With RaiseOnError the first three return *TimeoutError,
// *SignaledError and *FailedError along with the result. Pipe failures and
// context cancellation are always returned as errors.
func (r *Runner) Run(ctx context.Context, opts *Options, args ...any) (*Result, error) {
	if err := ctxutil.Err(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrCommandCanceled, err)
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	argv, err := r.buildArgs(args)
	if err != nil {
		return nil, err
	}
	env := r.buildEnv(opts)

	log := r.loggerFor(ctx).With().
		Str("invocation_id", uuid.NewString()).
		Str("command", logging.FilterSensitiveValue(FormatCommandLine(argv))).
		Logger()
	log.Debug().Str("dir", opts.dir).Dur("timeout", opts.timeout).Msg("running command")

	result, runErr := execute(ctx, argv, env, opts)
	if result != nil {
		postProcess(result, opts)
		logOutcome(&log, result)
	}
	if runErr != nil {
		log.Warn().Err(runErr).Msg("command did not complete")
		return result, runErr
	}

	if !opts.raiseOnError {
		return result, nil
	}
	return result, classify(result, opts)
}

// classify maps a finished result to its error kind, nil on success.
func classify(result *Result, opts *Options) error {
	status := result.Status()
	switch {
	case status.TimedOut:
		return &TimeoutError{SignaledError: &SignaledError{Result: result}, Timeout: opts.timeout}
	case status.Signaled:
		return &SignaledError{Result: result}
	case status.ExitCode != 0:
		return &FailedError{Result: result}
	default:
		return nil
	}
}

// postProcess applies the transforms requested by opts to both captured streams.
func postProcess(result *Result, opts *Options) {
	if opts.normalizeEncoding {
		normalize := func(s string, _ *Result) string { return charset.NormalizeLines(s, charset.UTF8) }
		result.ProcessStdout(TransformNormalize, normalize).ProcessStderr(TransformNormalize, normalize)
	}
	if opts.chomp {
		chomp := func(s string, _ *Result) string { return Chomp(s) }
		result.ProcessStdout(TransformChomp, chomp).ProcessStderr(TransformChomp, chomp)
	}
}

func (r *Runner) loggerFor(ctx context.Context) *zerolog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return zerolog.Ctx(ctx)
}

func logOutcome(log *zerolog.Logger, result *Result) {
	status := result.Status()
	event := log.Debug()
	if !status.Success() {
		event = log.Warn()
	}
	event.
		Int("pid", status.Pid).
		Int("exit_code", status.ExitCode).
		Bool("signaled", status.Signaled).
		Int("termsig", status.TermSig).
		Bool("timed_out", status.TimedOut).
		Dur("duration_ms", result.Duration()).
		Msg("command finished")
}

// buildArgs returns [binary, globalArgs..., args...] as strings.
func (r *Runner) buildArgs(args []any) ([]string, error) {
	argv := make([]string, 0, 1+len(r.globalArgs)+len(args))
	argv = append(argv, r.binary)
	argv = append(argv, r.globalArgs...)
	for i, a := range args {
		s, err := stringify(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		argv = append(argv, s)
	}
	return argv, nil
}

// stringify converts one argument to its textual form.
func stringify(a any) (string, error) {
	var s string
	switch v := a.(type) {
	case nil:
		return "", fmt.Errorf("%w: nil argument", errors.ErrInvalidArgument)
	case string:
		s = v
	case []byte:
		s = string(v)
	case fmt.Stringer:
		s = v.String()
	default:
		switch reflect.ValueOf(a).Kind() { //nolint:exhaustive // only container kinds are rejected
		case reflect.Slice, reflect.Array:
			return "", fmt.Errorf("%w: nested argument list %v", errors.ErrInvalidArgument, a)
		case reflect.Map, reflect.Chan, reflect.Func:
			return "", fmt.Errorf("%w: unsupported argument type %T", errors.ErrInvalidArgument, a)
		default:
			s = fmt.Sprint(a)
		}
	}
	if strings.ContainsRune(s, 0) {
		return "", fmt.Errorf("%w: argument contains NUL byte", errors.ErrInvalidArgument)
	}
	return s, nil
}

// buildEnv layers, in order: the ambient environment, the runner's unset
// list, the runner's overrides, the call's unset list, the call's overrides.
func (r *Runner) buildEnv(opts *Options) []string {
	merged := make(map[string]string)
	for _, kv := range r.environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		merged[k] = v
	}
	for _, name := range r.unsetEnv {
		delete(merged, name)
	}
	for k, v := range r.env {
		merged[k] = v
	}
	for _, name := range opts.unsetEnv {
		delete(merged, name)
	}
	for k, v := range opts.env {
		merged[k] = v
	}

	env := make([]string, 0, len(merged))
	for k, v := range merged {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)
	return env
}
