package cli

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/artpar/apitester/internal/core"
	"github.com/artpar/apitester/internal/poller"
	"github.com/artpar/apitester/internal/testserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCommand(t *testing.T) {
	t.Run("online", func(t *testing.T) {
		isolate(t)
		server := testserver.New(testserver.DemoAPI())
		defer server.Close()

		out, _, err := execute(t, "status", "--base-url", server.URL)
		require.NoError(t, err)
		assert.Equal(t, "API Status: Online\n", out)
		assert.Equal(t, "/api/health", server.LastRequest().Path)
	})

	t.Run("offline on error status", func(t *testing.T) {
		isolate(t)
		h := testserver.Handlers{}
		server := testserver.New(map[string]http.HandlerFunc{
			"GET /api/health": h.Status(http.StatusInternalServerError),
		})
		defer server.Close()

		out, _, err := execute(t, "status", "--base-url", server.URL)
		require.NoError(t, err)
		assert.Equal(t, "API Status: Offline\n", out)
	})

	t.Run("rejects a sub-second interval", func(t *testing.T) {
		isolate(t)
		_, _, err := execute(t, "status", "--interval", "10ms")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pollInterval")
	})
}

func TestStatusCommand_Watch(t *testing.T) {
	isolate(t)
	server := testserver.New(testserver.DemoAPI())
	defer server.Close()

	out := &syncBuffer{}
	cmd := NewRootCommand("test")
	cmd.SetOut(out)
	cmd.SetErr(&syncBuffer{})
	cmd.SetArgs([]string{"status", "--watch", "--base-url", server.URL})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "API Status: Online")
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestPrintTransition(t *testing.T) {
	out := &syncBuffer{}
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	printTransition(out, poller.Result{Availability: core.AvailabilityOnline, Changed: true, CheckedAt: at})
	printTransition(out, poller.Result{Availability: core.AvailabilityOffline, Changed: true, CheckedAt: at, Err: errors.New("connection refused")})

	assert.Equal(t,
		"2024-03-01T09:30:00.000Z  API Status: Online\n"+
			"2024-03-01T09:30:00.000Z  API Status: Offline  (connection refused)\n",
		out.String())
}
