package helpers

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listenLoopback(t *testing.T) (net.Listener, int) {
	t.Helper()
	lc := net.ListenConfig{}
	listener, err := lc.Listen(t.Context(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr, ok := listener.Addr().(*net.TCPAddr)
	require.True(t, ok)
	return listener, addr.Port
}

func TestEnsurePortAvailable(t *testing.T) {
	t.Run("Should refuse to start serve on a port already in use", func(t *testing.T) {
		listener, port := listenLoopback(t)
		defer listener.Close()
		ctx, cancel := context.WithTimeout(t.Context(), time.Second)
		defer cancel()
		err := EnsurePortAvailable(ctx, "127.0.0.1", port)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "port "+strconv.Itoa(port)+" is not available")
	})
	t.Run("Should accept a port once it is released", func(t *testing.T) {
		listener, port := listenLoopback(t)
		require.NoError(t, listener.Close())
		assert.Eventually(t, func() bool {
			ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
			defer cancel()
			return EnsurePortAvailable(ctx, "127.0.0.1", port) == nil
		}, time.Second, 20*time.Millisecond)
	})
}

func TestFormatAddress(t *testing.T) {
	t.Run("Should join the default serve address", func(t *testing.T) {
		assert.Equal(t, "0.0.0.0:5000", formatAddress("0.0.0.0", 5000))
	})
	t.Run("Should bracket IPv6 loopback", func(t *testing.T) {
		assert.Equal(t, "[::1]:5000", formatAddress("::1", 5000))
	})
}
