// Package widget holds the API tester's state: the method and endpoint
// selectors, the request body editor, the send button, the response view and
// the status badge. Both the interactive UI and the CLI drive it.
package widget

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/artpar/apitester/internal/core"
	"github.com/artpar/apitester/internal/logging"
	"github.com/google/uuid"
)

// Send button labels.
const (
	SendLabel = "Send Request"
	BusyLabel = "Loading..."
)

// Requester sends a built request.
type Requester interface {
	Send(ctx context.Context, req *core.Request) (*core.Response, error)
}

// RequesterFunc adapts a function to Requester.
type RequesterFunc func(ctx context.Context, req *core.Request) (*core.Response, error)

// Send calls f.
func (f RequesterFunc) Send(ctx context.Context, req *core.Request) (*core.Response, error) {
	return f(ctx, req)
}

// State is a snapshot of everything the widget displays.
type State struct {
	Method        core.Method
	Endpoints     []core.EndpointOption
	Selected      int
	BodyVisible   bool
	Body          string
	SendEnabled   bool
	SendLabel     string
	InFlight      int
	ResponseText  string
	ResponseStyle Style
	Badge         core.Availability
}

// SelectedPath returns the path of the selected endpoint, or "".
func (s State) SelectedPath() string {
	if s.Selected < 0 || s.Selected >= len(s.Endpoints) {
		return ""
	}
	return s.Endpoints[s.Selected].Path
}

// Widget is the API tester. All methods are safe for concurrent use; sends
// may overlap and the last one to finish owns the response view.
type Widget struct {
	mu        sync.Mutex
	requester Requester
	baseURL   string
	logger    *slog.Logger
	now       func() time.Time
	badge     *Badge

	method    core.Method
	endpoints []core.EndpointOption
	selected  int
	body      string
	inFlight  int
	last      *Outcome
}

// Option configures a Widget.
type Option func(*Widget)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Widget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithClock sets the clock used for error timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Widget) {
		w.now = now
	}
}

// WithBadge shares an existing badge with the widget.
func WithBadge(b *Badge) Option {
	return func(w *Widget) {
		if b != nil {
			w.badge = b
		}
	}
}

// New creates a widget sending through requester to baseURL. It starts with
// GET selected.
func New(requester Requester, baseURL string, opts ...Option) *Widget {
	w := &Widget{
		requester: requester,
		baseURL:   baseURL,
		logger:    logging.Nop(),
		now:       time.Now,
		badge:     NewBadge(),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.selectMethod(core.MethodGet)
	return w
}

// Badge returns the status badge handle.
func (w *Widget) Badge() *Badge {
	return w.badge
}

// BaseURL returns the backend address requests are sent to.
func (w *Widget) BaseURL() string {
	return w.baseURL
}

// SelectMethod switches the method. The endpoint list is replaced with the
// options for m and the first one selected; for methods with a body the
// editor is reset to the example body.
func (w *Widget) SelectMethod(m core.Method) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", core.ErrUnknownMethod, string(m))
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.selectMethod(m)
	return nil
}

func (w *Widget) selectMethod(m core.Method) {
	w.method = m
	w.endpoints = core.EndpointsFor(m)
	w.selected = 0
	if m.HasBody() {
		w.body = core.DefaultBody(m)
	}
}

// SelectEndpoint selects the option with the given path.
func (w *Widget) SelectEndpoint(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := core.IndexOfPath(w.endpoints, path)
	if i < 0 {
		return fmt.Errorf("%w: %s %s", core.ErrUnknownEndpoint, w.method, path)
	}
	w.selected = i
	return nil
}

// SelectEndpointIndex selects the option at position i.
func (w *Widget) SelectEndpointIndex(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if i < 0 || i >= len(w.endpoints) {
		return fmt.Errorf("%w: index %d", core.ErrUnknownEndpoint, i)
	}
	w.selected = i
	return nil
}

// MoveEndpoint moves the selection by delta, clamped to the list.
func (w *Widget) MoveEndpoint(delta int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.selected += delta
	if w.selected >= len(w.endpoints) {
		w.selected = len(w.endpoints) - 1
	}
	if w.selected < 0 {
		w.selected = 0
	}
}

// SetBody replaces the request body text.
func (w *Widget) SetBody(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.body = text
}

// Draft returns the request the next Send would build.
func (w *Widget) Draft() core.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft()
}

func (w *Widget) draft() core.Draft {
	d := core.Draft{Method: w.method}
	if w.selected >= 0 && w.selected < len(w.endpoints) {
		d.Path = w.endpoints[w.selected].Path
	}
	if w.method.HasBody() {
		d.Body = w.body
	}
	return d
}

// State returns a snapshot of the widget.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := State{
		Method:      w.method,
		Endpoints:   append([]core.EndpointOption(nil), w.endpoints...),
		Selected:    w.selected,
		BodyVisible: w.method.HasBody(),
		Body:        w.body,
		SendEnabled: w.inFlight == 0,
		SendLabel:   SendLabel,
		InFlight:    w.inFlight,
		Badge:       w.badge.Availability(),
	}
	if w.inFlight > 0 {
		s.SendLabel = BusyLabel
	}
	if w.last != nil {
		s.ResponseText = w.last.Text()
		s.ResponseStyle = w.last.Style()
	}
	return s
}

// LastOutcome returns the outcome currently shown, if any.
func (w *Widget) LastOutcome() (Outcome, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return Outcome{}, false
	}
	return *w.last, true
}

// Send builds a request from the current selection, sends it and shows the
// result. The send button is disabled for the duration of the call and
// re-enabled on every path out.
func (w *Widget) Send(ctx context.Context) Outcome {
	draft := w.acquire()
	defer w.release()

	out := w.execute(ctx, draft)

	w.mu.Lock()
	w.last = &out
	w.mu.Unlock()

	return out
}

func (w *Widget) acquire() core.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight++
	return w.draft()
}

func (w *Widget) release() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight--
}

func (w *Widget) execute(ctx context.Context, draft core.Draft) Outcome {
	out := Outcome{ID: uuid.New().String(), Draft: draft}
	logger := w.logger.With("send", out.ID, "method", draft.Method, "path", draft.Path)

	req, err := draft.ToRequest(w.baseURL)
	if err != nil {
		logger.Info("request not sent", "error", err)
		out.Failure = core.NewErrorRecord(err, w.now())
		return out
	}

	out.Sent = true
	resp, err := w.requester.Send(ctx, req)
	if err != nil {
		logger.Warn("request failed", "error", err)
		out.Failure = core.NewErrorRecord(err, w.now())
		return out
	}

	formatted, err := core.FormatResponse(resp)
	if err != nil {
		logger.Warn("unreadable response", "status", resp.Status().Code(), "error", err)
		out.Failure = core.NewErrorRecord(err, w.now())
		return out
	}

	logger.Debug("response shown", "status", formatted.Status)
	out.Response = formatted
	return out
}
