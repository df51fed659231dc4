//go:build unix

package signal

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_RealSignal(t *testing.T) {
	h := NewHandler(context.Background(), syscall.SIGUSR1)
	defer h.Stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))

	select {
	case <-h.Interrupted():
	case <-time.After(2 * time.Second):
		t.Fatal("signal was not delivered")
	}
	assert.Equal(t, syscall.SIGUSR1, h.Cause().Signal)
}
