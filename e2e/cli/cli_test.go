package cli_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/artpar/apitester/e2e/harness"
	"github.com/artpar/apitester/internal/core"
	"github.com/artpar/apitester/internal/testserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_SendCommand(t *testing.T) {
	h := harness.New(t, harness.Config{
		GoldenDir: "../golden/cli",
		Timeout:   5 * time.Second,
	})

	t.Run("GET user matches golden output", func(t *testing.T) {
		result, err := h.CLI().Send("GET", "/api/users/2")
		require.NoError(t, err)

		h.Golden().Compare(t, "send_get_user", result.Stdout)
	})

	t.Run("POST echoes the example body", func(t *testing.T) {
		result, err := h.CLI().Send("POST", "/api/users")
		require.NoError(t, err)

		assert := harness.NewAssertions(t)
		assert.StatusCode(result.Stdout, 201)
		assert.OutputContains(result.Stdout, `"name": "New User"`, `"method": "POST"`)
		assert.NoError(result.Stdout)
	})

	t.Run("PUT with custom body", func(t *testing.T) {
		result, err := h.CLI().SendWithBody("PUT", "/api/users/1", `{"name": "Ada"}`)
		require.NoError(t, err)

		assert := harness.NewAssertions(t)
		assert.StatusCode(result.Stdout, 200)
		assert.OutputContains(result.Stdout, `"name": "Ada"`)
	})

	t.Run("error status renders the backend body", func(t *testing.T) {
		result, err := h.CLI().Send("DELETE", "/api/users/2")
		require.NoError(t, err)
		assert.Equal(t, 0, result.ExitCode)

		assert := harness.NewAssertions(t)
		assert.StatusCode(result.Stdout, 404)
		assert.OutputContains(result.Stdout, "The requested resource was not found")
	})

	t.Run("invalid body fails before sending", func(t *testing.T) {
		h.Server().ClearRequests()

		result, err := h.CLI().SendWithBody("POST", "/api/users", `{"name": `)
		require.NoError(t, err)

		ha := harness.NewAssertions(t)
		ha.OutputContains(result.Stdout, core.RequestFailed, core.ErrInvalidJSON.Error())
		assert.Equal(t, 0, h.Server().RequestCount())
	})

	t.Run("unknown endpoint is a usage error", func(t *testing.T) {
		result, err := h.CLI().Send("GET", "/api/orders")
		require.Error(t, err)
		assert.Equal(t, 1, result.ExitCode)
		assert.Empty(t, result.Stdout)
	})
}

func TestCLI_SendNonJSONResponse(t *testing.T) {
	handlers := testserver.Handlers{}
	h := harness.New(t, harness.Config{
		Routes: map[string]http.HandlerFunc{
			"GET /api/health": handlers.Text(http.StatusOK, "OK"),
		},
	})

	result, err := h.CLI().Send("GET", "/api/health")
	require.NoError(t, err)

	assert := harness.NewAssertions(t)
	assert.OutputContains(result.Stdout, `"error": "Request Failed"`, `"timestamp"`)
	assert.OutputNotContains(result.Stdout, `"status"`)
}

func TestCLI_EndpointsCommand(t *testing.T) {
	h := harness.New(t, harness.Config{GoldenDir: "../golden/cli"})

	t.Run("full catalog", func(t *testing.T) {
		result, err := h.CLI().Endpoints()
		require.NoError(t, err)
		h.Golden().Compare(t, "endpoints", result.Stdout)
	})

	t.Run("single method", func(t *testing.T) {
		result, err := h.CLI().Endpoints("put")
		require.NoError(t, err)
		h.Golden().Compare(t, "endpoints_put", result.Stdout)
	})
}

func TestCLI_StatusCommand(t *testing.T) {
	t.Run("online", func(t *testing.T) {
		h := harness.New(t, harness.Config{})

		result, err := h.CLI().Status()
		require.NoError(t, err)
		assert.Equal(t, core.AvailabilityOnline.BadgeText()+"\n", result.Stdout)
	})

	t.Run("offline when health fails", func(t *testing.T) {
		handlers := testserver.Handlers{}
		h := harness.New(t, harness.Config{
			Routes: map[string]http.HandlerFunc{
				"GET /api/health": handlers.Status(http.StatusServiceUnavailable),
			},
		})

		result, err := h.CLI().Status()
		require.NoError(t, err)
		assert.Equal(t, core.AvailabilityOffline.BadgeText()+"\n", result.Stdout)
	})

	t.Run("watch prints the first transition and stops on cancel", func(t *testing.T) {
		h := harness.New(t, harness.Config{})

		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		result, err := h.CLI().RunContext(ctx, "status", "--watch", "--base-url", h.ServerURL())
		require.NoError(t, err)

		harness.NewAssertions(t).OutputContains(result.Stdout, core.AvailabilityOnline.BadgeText())
		assert.Equal(t, 1, h.Server().RequestCount())
	})
}
