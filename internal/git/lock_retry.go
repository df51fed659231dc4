package git

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/gitrun/internal/clock"
	"github.com/mrz1836/gitrun/internal/ctxutil"
)

// LockRetryConfig controls how write operations retry while another git
// process holds index.lock or a ref lock.
type LockRetryConfig struct {
	// MaxAttempts counts the first try. Values below 1 mean a single try.
	MaxAttempts int
	// InitialDelay is the wait before the second attempt.
	InitialDelay time.Duration
	// MaxDelay caps the wait between attempts.
	MaxDelay time.Duration
	// Multiplier grows the wait after each attempt.
	Multiplier float64
	// Clock schedules the waits. Nil means the system clock.
	Clock clock.Clock
}

// DefaultLockRetryConfig returns the retry policy used by Repo.
func DefaultLockRetryConfig() LockRetryConfig {
	return LockRetryConfig{
		MaxAttempts:  5,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	}
}

// next returns the delay that follows d.
func (c LockRetryConfig) next(d time.Duration) time.Duration {
	d = time.Duration(float64(d) * c.Multiplier)
	if c.MaxDelay > 0 && d > c.MaxDelay {
		return c.MaxDelay
	}
	return d
}

// RunWithLockRetry runs op, retrying with exponential backoff while it fails
// with an ErrorTypeLock error. Other errors are returned immediately.
func RunWithLockRetry[R any](
	ctx context.Context,
	cfg LockRetryConfig,
	logger zerolog.Logger,
	op func(ctx context.Context) (R, error),
) (R, error) {
	var zero R
	attempts := max(cfg.MaxAttempts, 1)
	delay := cfg.InitialDelay

	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real{}
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctxutil.Err(ctx); err != nil {
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if ClassifyError(err) != ErrorTypeLock {
			return zero, err
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		logger.Debug().
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Dur("delay", delay).
			Err(err).
			Msg("git lock held, retrying")

		select {
		case <-ctx.Done():
			return zero, ctxutil.Err(ctx)
		case <-clk.After(delay):
		}
		delay = cfg.next(delay)
	}

	logger.Warn().Int("attempts", attempts).Err(lastErr).Msg("git lock retry exhausted")
	return zero, lastErr
}

// RunWithLockRetryVoid is RunWithLockRetry for operations without a result.
func RunWithLockRetryVoid(
	ctx context.Context,
	cfg LockRetryConfig,
	logger zerolog.Logger,
	op func(ctx context.Context) error,
) error {
	_, err := RunWithLockRetry(ctx, cfg, logger, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}
