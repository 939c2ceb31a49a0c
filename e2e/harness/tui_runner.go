package harness

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/artpar/apitester/internal/app"
	"github.com/artpar/apitester/internal/config"
	"github.com/artpar/apitester/internal/poller"
	"github.com/artpar/apitester/internal/tui/views"
	"github.com/artpar/apitester/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
)

// TUIRunner provides TUI testing capabilities.
type TUIRunner struct {
	harness *E2EHarness
}

// TUISession drives a MainView directly, without a running program.
type TUISession struct {
	runner *TUIRunner
	app    *app.App
	model  *views.MainView
	t      *testing.T
}

// Start starts a new TUI session at 120x40.
func (r *TUIRunner) Start(t *testing.T) *TUISession {
	return r.StartWithSize(t, 120, 40)
}

// StartWithSize starts a TUI session with custom dimensions.
func (r *TUIRunner) StartWithSize(t *testing.T, width, height int) *TUISession {
	t.Helper()

	cfg := config.Default()
	cfg.BaseURL = r.harness.ServerURL()
	cfg.Timeout = r.harness.timeout

	application := app.New(cfg)
	model := views.NewMainView(application.Widget())
	model.SetSize(width, height)

	return &TUISession{
		runner: r,
		app:    application,
		model:  model,
		t:      t,
	}
}

// SendKey sends a key press.
func (s *TUISession) SendKey(key string) *TUISession {
	return s.send(parseKeyMsg(key))
}

// SendKeys sends multiple key presses.
func (s *TUISession) SendKeys(keys ...string) *TUISession {
	for _, key := range keys {
		s.SendKey(key)
	}
	return s
}

// Type sends a sequence of rune keys.
func (s *TUISession) Type(text string) *TUISession {
	for _, r := range text {
		s.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return s
}

// Poll runs one health check and delivers the result the way the running
// program does.
func (s *TUISession) Poll() *TUISession {
	ctx, cancel := context.WithTimeout(context.Background(), s.runner.harness.timeout)
	defer cancel()
	result := s.app.Poller().Tick(ctx)
	return s.send(views.StatusMsg{Result: result})
}

func (s *TUISession) send(msg tea.Msg) *TUISession {
	updated, cmd := s.model.Update(msg)
	s.model = updated.(*views.MainView)
	s.executeCmd(cmd)
	return s
}

// cmdTimeout bounds how long executeCmd waits for a command. The
// notification timer outlives it, so notifications stay visible.
const cmdTimeout = time.Second

// executeCmd runs cmd and feeds its message back into Update.
func (s *TUISession) executeCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return
	}
	if msg == nil {
		return
	}
	if _, quit := msg.(tea.QuitMsg); quit {
		return
	}

	updated, nextCmd := s.model.Update(msg)
	s.model = updated.(*views.MainView)
	s.executeCmd(nextCmd)
}

// Wait pauses for the specified duration.
func (s *TUISession) Wait(d time.Duration) *TUISession {
	time.Sleep(d)
	return s
}

// WaitForOutput waits for specific text in output.
func (s *TUISession) WaitForOutput(text string) error {
	timeout := s.runner.harness.timeout
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		if strings.Contains(s.Output(), text) {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}

	return &TimeoutError{text: text, timeout: timeout}
}

// Output returns the current TUI output.
func (s *TUISession) Output() string {
	return s.model.View()
}

// Model returns the underlying MainView for direct assertions.
func (s *TUISession) Model() *views.MainView {
	return s.model
}

// Widget returns the widget behind the view.
func (s *TUISession) Widget() *widget.Widget {
	return s.app.Widget()
}

// Poller returns the session's poller.
func (s *TUISession) Poller() *poller.Poller {
	return s.app.Poller()
}

// FocusedPane returns the currently focused pane.
func (s *TUISession) FocusedPane() views.Pane {
	return s.model.FocusedPane()
}

// ShowingHelp returns true if help overlay is visible.
func (s *TUISession) ShowingHelp() bool {
	return s.model.ShowingHelp()
}

// TimeoutError represents a timeout waiting for output.
type TimeoutError struct {
	text    string
	timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return "timeout after " + e.timeout.String() + " waiting for: " + e.text
}

// parseKeyMsg converts key string to tea.KeyMsg.
func parseKeyMsg(key string) tea.KeyMsg {
	switch strings.ToLower(key) {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc", "escape":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
