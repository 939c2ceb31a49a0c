package poller

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/artpar/apitester/internal/core"
	httpclient "github.com/artpar/apitester/internal/protocol/http"
	"github.com/artpar/apitester/internal/testserver"
	"github.com/artpar/apitester/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthServer(code int) *testserver.Server {
	h := testserver.Handlers{}
	return testserver.New(map[string]http.HandlerFunc{
		"GET /api/health": h.JSON(code, map[string]string{"status": "healthy"}),
	})
}

func TestPoller_Tick(t *testing.T) {
	t.Run("2xx marks the badge online", func(t *testing.T) {
		server := healthServer(http.StatusOK)
		defer server.Close()

		badge := widget.NewBadge()
		p := New(httpclient.NewClient(), badge, server.URL)

		result := p.Tick(context.Background())

		assert.Equal(t, core.AvailabilityOnline, result.Availability)
		assert.True(t, result.Changed)
		assert.NoError(t, result.Err)
		assert.Equal(t, "API Status: Online", badge.Text())
		assert.Equal(t, widget.StyleSuccess, badge.Style())

		last := server.LastRequest()
		assert.Equal(t, "GET", last.Method)
		assert.Equal(t, "/api/health", last.Path)
		assert.Empty(t, last.Body)
	})

	t.Run("non-2xx marks the badge offline", func(t *testing.T) {
		server := healthServer(http.StatusServiceUnavailable)
		defer server.Close()

		badge := widget.NewBadge()
		p := New(httpclient.NewClient(), badge, server.URL)

		result := p.Tick(context.Background())

		assert.Equal(t, core.AvailabilityOffline, result.Availability)
		assert.Error(t, result.Err)
		assert.Equal(t, "API Status: Offline", badge.Text())
		assert.Equal(t, widget.StyleError, badge.Style())
	})

	t.Run("transport failure marks the badge offline", func(t *testing.T) {
		badge := widget.NewBadge()
		badge.Set(core.AvailabilityOnline)
		p := New(widget.RequesterFunc(func(ctx context.Context, req *core.Request) (*core.Response, error) {
			return nil, errors.New("connection refused")
		}), badge, "http://localhost:5000")

		result := p.Tick(context.Background())

		assert.True(t, result.Changed)
		assert.Equal(t, core.AvailabilityOffline, badge.Availability())
	})

	t.Run("non-JSON body marks the badge offline", func(t *testing.T) {
		h := testserver.Handlers{}
		server := testserver.New(map[string]http.HandlerFunc{
			"GET /api/health": h.Text(http.StatusOK, "ok"),
		})
		defer server.Close()

		badge := widget.NewBadge()
		New(httpclient.NewClient(), badge, server.URL).Tick(context.Background())

		assert.Equal(t, core.AvailabilityOffline, badge.Availability())
	})

	t.Run("recovers from offline to online", func(t *testing.T) {
		var healthy atomic.Bool
		p := New(widget.RequesterFunc(func(ctx context.Context, req *core.Request) (*core.Response, error) {
			code := 500
			if healthy.Load() {
				code = 200
			}
			return core.NewResponse(req.ID(), core.NewStatus(code, "")).
				WithBody(core.NewRawBody([]byte(`{"status":"healthy"}`), "application/json")), nil
		}), widget.NewBadge(), "http://localhost:5000")

		assert.Equal(t, core.AvailabilityOffline, p.Tick(context.Background()).Availability)
		healthy.Store(true)
		result := p.Tick(context.Background())
		assert.Equal(t, core.AvailabilityOnline, result.Availability)
		assert.True(t, result.Changed)
	})

	t.Run("uses the configured health path", func(t *testing.T) {
		var path string
		p := New(widget.RequesterFunc(func(ctx context.Context, req *core.Request) (*core.Response, error) {
			path = req.URL()
			return nil, errors.New("stop")
		}), widget.NewBadge(), "http://localhost:5000/", WithHealthPath("/healthz"))

		p.Tick(context.Background())
		assert.Equal(t, "http://localhost:5000/healthz", path)
	})

	t.Run("cancelled tick leaves the badge alone", func(t *testing.T) {
		badge := widget.NewBadge()
		badge.Set(core.AvailabilityOnline)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := New(widget.RequesterFunc(func(ctx context.Context, req *core.Request) (*core.Response, error) {
			return nil, ctx.Err()
		}), badge, "http://localhost:5000")

		result := p.Tick(ctx)
		assert.ErrorIs(t, result.Err, context.Canceled)
		assert.Equal(t, core.AvailabilityOnline, badge.Availability())
	})

	t.Run("reports every tick", func(t *testing.T) {
		var results []Result
		p := New(widget.RequesterFunc(func(ctx context.Context, req *core.Request) (*core.Response, error) {
			return nil, errors.New("down")
		}), widget.NewBadge(), "http://localhost:5000", OnResult(func(r Result) {
			results = append(results, r)
		}))

		p.Tick(context.Background())
		p.Tick(context.Background())

		require.Len(t, results, 2)
		assert.True(t, results[0].Changed)
		assert.False(t, results[1].Changed)
	})
}

func TestPoller_Defaults(t *testing.T) {
	p := New(widget.RequesterFunc(nil), widget.NewBadge(), "http://localhost:5000")
	assert.Equal(t, 30*time.Second, p.Interval())
	assert.Equal(t, DefaultHealthPath, p.healthPath)

	p = New(widget.RequesterFunc(nil), widget.NewBadge(), "http://localhost:5000", WithInterval(5*time.Second))
	assert.Equal(t, 5*time.Second, p.Interval())
}

func TestPoller_Start(t *testing.T) {
	t.Run("ticks immediately and on schedule until stopped", func(t *testing.T) {
		server := healthServer(http.StatusOK)
		defer server.Close()

		results := make(chan Result, 16)
		p := New(httpclient.NewClient(), widget.NewBadge(), server.URL,
			WithInterval(time.Second),
			OnResult(func(r Result) { results <- r }),
		)

		h := p.Start(context.Background())

		select {
		case r := <-results:
			assert.Equal(t, core.AvailabilityOnline, r.Availability)
		case <-time.After(2 * time.Second):
			t.Fatal("no initial tick")
		}

		select {
		case <-results:
		case <-time.After(3 * time.Second):
			t.Fatal("no scheduled tick")
		}

		h.Stop()
		h.Stop()

		select {
		case <-h.Done():
		default:
			t.Fatal("handle not done after Stop")
		}

		count := server.RequestCount()
		time.Sleep(1500 * time.Millisecond)
		assert.Equal(t, count, server.RequestCount())
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		server := healthServer(http.StatusOK)
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		h := New(httpclient.NewClient(), widget.NewBadge(), server.URL).Start(ctx)
		cancel()

		select {
		case <-h.Done():
		case <-time.After(2 * time.Second):
			t.Fatal("poller did not stop")
		}
	})
}
