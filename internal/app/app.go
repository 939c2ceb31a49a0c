package app

import (
	"context"
	"log/slog"

	"github.com/artpar/apitester/internal/config"
	"github.com/artpar/apitester/internal/core"
	"github.com/artpar/apitester/internal/logging"
	"github.com/artpar/apitester/internal/poller"
	httpclient "github.com/artpar/apitester/internal/protocol/http"
	"github.com/artpar/apitester/internal/widget"
)

// Requester is the interface for protocol adapters.
type Requester interface {
	Send(ctx context.Context, req *core.Request) (*core.Response, error)
}

// App is the main application container with dependency injection. The
// widget and the poller share one badge and one requester.
type App struct {
	config    *config.Config
	logger    *slog.Logger
	requester Requester
	badge     *widget.Badge
	widget    *widget.Widget

	pollerOpts []poller.Option
	poller     *poller.Poller
}

// Option is a function that configures the App.
type Option func(*App)

// WithRequester replaces the HTTP client.
func WithRequester(requester Requester) Option {
	return func(a *App) {
		a.requester = requester
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithPollerOptions adds options to the status poller, typically an
// OnResult callback.
func WithPollerOptions(opts ...poller.Option) Option {
	return func(a *App) {
		a.pollerOpts = append(a.pollerOpts, opts...)
	}
}

// New wires the components for cfg. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	app := &App{
		config: cfg,
		logger: logging.Nop(),
		badge:  widget.NewBadge(),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.requester == nil {
		app.requester = httpclient.NewClient(
			httpclient.WithTimeout(cfg.Timeout),
			httpclient.WithLogger(app.logger.With("component", "http")),
		)
	}

	app.widget = widget.New(app.requester, cfg.BaseURL,
		widget.WithBadge(app.badge),
		widget.WithLogger(app.logger.With("component", "widget")),
	)

	pollerOpts := []poller.Option{
		poller.WithInterval(cfg.PollInterval),
		poller.WithHealthPath(cfg.HealthPath),
		poller.WithTimeout(cfg.Timeout),
		poller.WithLogger(app.logger.With("component", "poller")),
	}
	app.poller = poller.New(app.requester, app.badge, cfg.BaseURL, append(pollerOpts, app.pollerOpts...)...)

	return app
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Requester returns the adapter requests are sent through.
func (a *App) Requester() Requester {
	return a.requester
}

// Widget returns the API tester.
func (a *App) Widget() *widget.Widget {
	return a.widget
}

// Badge returns the status badge shared by the widget and the poller.
func (a *App) Badge() *widget.Badge {
	return a.badge
}

// Poller returns the status poller. It is not started.
func (a *App) Poller() *poller.Poller {
	return a.poller
}
