// Package signal turns SIGINT and SIGTERM into context cancellation for
// gitrun commands. A canceled context makes the command runner kill the
// running git process group.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages (to avoid circular dependencies)
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// InterruptedError is the cancellation cause recorded when a signal arrives.
type InterruptedError struct {
	Signal os.Signal
}

func (e *InterruptedError) Error() string {
	return "interrupted by " + e.Signal.String()
}

// ExitCode returns the shell convention 128+signo, 130 when the signal
// number is unknown.
func (e *InterruptedError) ExitCode() int {
	if s, ok := e.Signal.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 128 + int(syscall.SIGINT)
}

// Handler cancels its context when one of the watched signals arrives.
//
// Usage:
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	err := run(h.Context())
//	if cause := h.Cause(); cause != nil {
//	    // interrupted
//	}
type Handler struct {
	ctx         context.Context //nolint:containedctx // handler owns the context lifecycle
	cancel      context.CancelCauseFunc
	interrupted chan struct{}
	done        chan struct{}
	once        sync.Once
	stopOnce    sync.Once
	sigChan     chan os.Signal
	cause       *InterruptedError
}

// NewHandler starts listening for signals, SIGINT and SIGTERM when none
// are given.
func NewHandler(parent context.Context, signals ...os.Signal) *Handler {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}
	ctx, cancel := context.WithCancelCause(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
		// buffered so Notify never drops the first signal
		sigChan: make(chan os.Signal, 1),
	}

	signal.Notify(h.sigChan, signals...)
	go h.listen()

	return h
}

// Context returns the context canceled on interrupt. Its cause is an
// *InterruptedError.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted returns a channel closed when the first signal arrives.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// Cause returns the recorded interrupt, or nil if no signal arrived.
func (h *Handler) Cause() *InterruptedError {
	select {
	case <-h.interrupted:
		return h.cause
	default:
		return nil
	}
}

// Stop stops listening and releases the context. Safe to call repeatedly.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel(context.Canceled)
	})
}

// handleSignal records sig and cancels the context; only the first call
// has an effect.
func (h *Handler) handleSignal(sig os.Signal) {
	h.once.Do(func() {
		h.cause = &InterruptedError{Signal: sig}
		h.cancel(h.cause)
		close(h.interrupted)
	})
}

func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case sig := <-h.sigChan:
			h.handleSignal(sig)
		}
	}
}
