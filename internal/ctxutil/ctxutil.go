// Package ctxutil reports why a context ended.
package ctxutil

import (
	"context"
	"errors"
)

// Err returns nil while ctx is live. Once ctx is done it returns ctx.Err(),
// joined with the cancellation cause when one was recorded with
// context.WithCancelCause, so both errors.Is(err, context.Canceled) and
// errors.As on the cause hold.
func Err(ctx context.Context) error {
	err := ctx.Err()
	if err == nil {
		return nil
	}
	cause := context.Cause(ctx)
	if cause == nil || errors.Is(cause, err) {
		return err
	}
	return &causeError{err: err, cause: cause}
}

type causeError struct {
	err   error
	cause error
}

func (e *causeError) Error() string {
	return e.err.Error() + ": " + e.cause.Error()
}

func (e *causeError) Unwrap() []error {
	return []error{e.err, e.cause}
}
