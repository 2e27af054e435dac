//go:build !integration

package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestNewServer(t *testing.T) {
	tests := []struct {
		name             string
		opts             []ServerOption
		wantWriteTimeout time.Duration
		wantHooks        int
	}{
		{name: "defaults", wantWriteTimeout: 45 * time.Second},
		{
			name:             "write timeout follows the carrier timeout",
			opts:             []ServerOption{WithWriteTimeout(75 * time.Second)},
			wantWriteTimeout: 75 * time.Second,
		},
		{
			name:             "zero write timeout keeps the default",
			opts:             []ServerOption{WithWriteTimeout(0)},
			wantWriteTimeout: 45 * time.Second,
		},
		{
			name: "shutdown hooks",
			opts: []ServerOption{
				WithShutdownHooks(func(context.Context) error { return nil }),
				WithShutdownHooks(func(context.Context) error { return nil }),
			},
			wantWriteTimeout: 45 * time.Second,
			wantHooks:        2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(okHandler, "8080", tt.opts...)

			assert.Equal(t, ":8080", server.httpServer.Addr)
			assert.Equal(t, 15*time.Second, server.httpServer.ReadTimeout)
			assert.Equal(t, tt.wantWriteTimeout, server.httpServer.WriteTimeout)
			assert.Equal(t, 10*time.Second, server.shutdownTimeout)
			assert.Len(t, server.hooks, tt.wantHooks)
		})
	}
}

func TestServer_ShutdownRunsHooksInOrder(t *testing.T) {
	var order []string
	hookErr := errors.New("mongo close failed")
	server := NewServer(okHandler, "0", WithShutdownHooks(
		func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			order = append(order, "sink")
			return nil
		},
		func(context.Context) error {
			order = append(order, "stores")
			return hookErr
		},
		func(context.Context) error {
			order = append(order, "after")
			return nil
		},
	))

	err := server.Shutdown()

	assert.ErrorIs(t, err, hookErr)
	assert.Equal(t, []string{"sink", "stores", "after"}, order)
}

func TestServer_Run_WithError(t *testing.T) {
	server := NewServer(okHandler, "invalid-port")

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	select {
	case err := <-errChan:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not report the listen error")
	}
}

func TestServer_Run_GracefulShutdown(t *testing.T) {
	closed := make(chan struct{})
	server := NewServer(okHandler, "0", WithShutdownHooks(func(context.Context) error {
		close(closed)
		return nil
	}))

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	time.Sleep(100 * time.Millisecond)
	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.SIGTERM))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "Server did not shutdown gracefully")
	}
	select {
	case <-closed:
	default:
		t.Fatal("shutdown hook was not run")
	}
}
