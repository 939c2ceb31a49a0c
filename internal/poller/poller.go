// Package poller keeps the availability badge current by checking the
// backend health endpoint on a fixed schedule.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/artpar/apitester/internal/core"
	"github.com/artpar/apitester/internal/logging"
	"github.com/robfig/cron/v3"
)

// DefaultInterval is the delay between health checks.
const DefaultInterval = 30 * time.Second

// DefaultHealthPath is the endpoint checked on every tick.
const DefaultHealthPath = "/api/health"

// Requester sends a built request.
type Requester interface {
	Send(ctx context.Context, req *core.Request) (*core.Response, error)
}

// Indicator displays the availability the poller observed.
type Indicator interface {
	Set(core.Availability) bool
}

// Result is what one tick observed.
type Result struct {
	Availability core.Availability
	Changed      bool
	Err          error
	CheckedAt    time.Time
}

// Poller checks backend health and updates an Indicator.
type Poller struct {
	requester  Requester
	indicator  Indicator
	baseURL    string
	healthPath string
	interval   time.Duration
	timeout    time.Duration
	logger     *slog.Logger
	onResult   func(Result)
	now        func() time.Time
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the delay between ticks. Sub-second intervals round up
// to one second.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithHealthPath sets the endpoint checked on each tick.
func WithHealthPath(path string) Option {
	return func(p *Poller) {
		if path != "" {
			p.healthPath = path
		}
	}
}

// WithTimeout bounds each health check.
func WithTimeout(d time.Duration) Option {
	return func(p *Poller) {
		p.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// OnResult registers a callback invoked after every tick, once the
// indicator has been updated.
func OnResult(fn func(Result)) Option {
	return func(p *Poller) {
		p.onResult = fn
	}
}

// New creates a poller checking baseURL's health endpoint.
func New(requester Requester, indicator Indicator, baseURL string, opts ...Option) *Poller {
	p := &Poller{
		requester:  requester,
		indicator:  indicator,
		baseURL:    baseURL,
		healthPath: DefaultHealthPath,
		interval:   DefaultInterval,
		logger:     logging.Nop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Interval returns the delay between ticks.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Tick performs a single health check and updates the indicator. Any
// failure, including a non-2xx status or a body that is not JSON, marks the
// backend offline. A tick abandoned because ctx was cancelled leaves the
// indicator untouched.
func (p *Poller) Tick(ctx context.Context) Result {
	checkCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	err := p.check(checkCtx)
	if ctx.Err() != nil {
		return Result{Err: ctx.Err(), CheckedAt: p.now()}
	}

	availability := core.AvailabilityOnline
	if err != nil {
		availability = core.AvailabilityOffline
	}

	result := Result{
		Availability: availability,
		Changed:      p.indicator.Set(availability),
		Err:          err,
		CheckedAt:    p.now(),
	}

	if result.Changed {
		p.logger.Info("availability changed", "availability", availability, "error", err)
	} else {
		p.logger.Debug("health checked", "availability", availability, "error", err)
	}

	if p.onResult != nil {
		p.onResult(result)
	}
	return result
}

func (p *Poller) check(ctx context.Context) error {
	url, err := core.JoinURL(p.baseURL, p.healthPath)
	if err != nil {
		return err
	}
	req, err := core.NewRequest(core.MethodGet, url)
	if err != nil {
		return err
	}

	resp, err := p.requester.Send(ctx, req)
	if err != nil {
		return err
	}
	if !resp.Status().IsSuccess() {
		return fmt.Errorf("health check returned %d %s", resp.Status().Code(), resp.Status().Text())
	}
	if _, err := core.DecodeJSON(resp.Body()); err != nil {
		return fmt.Errorf("health check body: %w", err)
	}
	return nil
}

// Handle controls a running poller.
type Handle struct {
	cron   *cron.Cron
	cancel context.CancelFunc
	ticks  sync.WaitGroup
	once   sync.Once
	done   chan struct{}
}

// Start ticks immediately and then on every interval until Stop is called
// or ctx is cancelled.
func (p *Poller) Start(ctx context.Context) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		cron:   cron.New(cron.WithLogger(cronLogger{p.logger})),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	h.cron.Schedule(cron.Every(p.interval), cron.FuncJob(func() {
		p.Tick(ctx)
	}))

	h.ticks.Add(1)
	go func() {
		defer h.ticks.Done()
		p.Tick(ctx)
	}()
	h.cron.Start()

	go func() {
		<-ctx.Done()
		h.Stop()
	}()

	return h
}

// Stop halts the schedule, abandons an in-flight check and waits for it to
// return. It is safe to call more than once.
func (h *Handle) Stop() {
	h.once.Do(func() {
		h.cancel()
		<-h.cron.Stop().Done()
		h.ticks.Wait()
		close(h.done)
	})
}

// Done is closed once the poller has stopped.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// cronLogger routes scheduler messages to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
