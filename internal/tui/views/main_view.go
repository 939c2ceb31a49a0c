package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/artpar/apitester/internal/poller"
	"github.com/artpar/apitester/internal/tui"
	"github.com/artpar/apitester/internal/tui/components"
	"github.com/artpar/apitester/internal/widget"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pane represents which pane is focused.
type Pane int

const (
	PaneRequest Pane = iota
	PaneResponse
)

// StatusMsg delivers a health check result from the poller.
type StatusMsg struct {
	Result poller.Result
}

// clearNotificationMsg is sent to clear the notification.
type clearNotificationMsg struct{}

// copyFunc writes to the system clipboard.
type copyFunc func(string) error

// MainView stacks the request form over the response view, with the status
// badge in the bottom bar.
type MainView struct {
	width        int
	height       int
	widget       *widget.Widget
	panes        *tui.ComponentList
	request      *components.RequestPanel
	response     *components.ResponsePanel
	showHelp     bool
	notification string
	lastCheck    time.Time
	copy         copyFunc
}

// NewMainView creates a view driving w.
func NewMainView(w *widget.Widget) *MainView {
	v := &MainView{
		widget:   w,
		request:  components.NewRequestPanel(w),
		response: components.NewResponsePanel(),
		copy:     clipboard.WriteAll,
	}
	v.panes = tui.NewComponentList(v.request, v.response)
	v.panes.SetFocusIndex(int(PaneRequest))
	return v
}

// Init initializes the view.
func (v *MainView) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (v *MainView) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	if v.showHelp {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.Type == tea.KeyEsc || string(keyMsg.Runes) == "?" {
				v.showHelp = false
			}
			if keyMsg.Type == tea.KeyCtrlC {
				return v, tea.Quit
			}
			return v, nil
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case components.SendRequestMsg:
		v.response.SetLoading(true)
		return v, sendRequest(v.widget)

	case components.SendCompletedMsg:
		v.response.SetOutcome(msg.Outcome)
		return v, nil

	case StatusMsg:
		v.lastCheck = msg.Result.CheckedAt
		return v, nil

	case components.CopyMsg:
		return v.handleCopy(msg.Content)

	case components.FeedbackMsg:
		prefix := "✓ "
		if msg.IsError {
			prefix = "✗ "
		}
		return v, v.notify(prefix + msg.Message)

	case clearNotificationMsg:
		v.notification = ""
		return v, nil
	}

	return v.forwardToFocusedPane(msg)
}

func (v *MainView) handleCopy(content string) (tui.Component, tea.Cmd) {
	if err := v.copy(content); err != nil {
		return v, v.notify("✗ Copy failed")
	}
	size := len(content)
	if size > 1024 {
		return v, v.notify(fmt.Sprintf("✓ Copied %.1fKB", float64(size)/1024))
	}
	return v, v.notify(fmt.Sprintf("✓ Copied %dB", size))
}

func (v *MainView) notify(message string) tea.Cmd {
	v.notification = message
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearNotificationMsg{}
	})
}

func (v *MainView) handleKeyMsg(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return v, tea.Quit
	}

	// While editing the body every key but Ctrl+C belongs to the editor.
	if v.request.IsEditing() {
		return v.forwardToFocusedPane(msg)
	}

	switch msg.Type {
	case tea.KeyTab:
		v.panes.FocusNext()
		return v, nil
	case tea.KeyShiftTab:
		v.panes.FocusPrev()
		return v, nil
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return v, tea.Quit
		case "?":
			v.showHelp = true
			return v, nil
		case "1":
			v.FocusPane(PaneRequest)
			return v, nil
		case "2":
			v.FocusPane(PaneResponse)
			return v, nil
		}
	}

	return v.forwardToFocusedPane(msg)
}

func (v *MainView) forwardToFocusedPane(msg tea.Msg) (tui.Component, tea.Cmd) {
	focused := v.panes.Focused()
	if focused == nil {
		return v, nil
	}
	_, cmd := focused.Update(msg)
	return v, cmd
}

// sendRequest runs a send off the update loop. The widget keeps the button
// disabled until it returns.
func sendRequest(w *widget.Widget) tea.Cmd {
	return func() tea.Msg {
		return components.SendCompletedMsg{Outcome: w.Send(context.Background())}
	}
}

func (v *MainView) updatePaneSizes() {
	if v.width == 0 || v.height == 0 {
		return
	}

	// Reserve 2 lines for help bar + status bar
	total := v.height - 2
	if total < 2 {
		total = 2
	}
	requestHeight := total * 45 / 100
	if requestHeight < 16 {
		requestHeight = 16
	}
	if requestHeight > total-4 {
		requestHeight = total - 4
	}
	if requestHeight < 1 {
		requestHeight = 1
	}

	v.request.SetSize(v.width, requestHeight)
	v.response.SetSize(v.width, total-requestHeight)
}

// View renders the view.
func (v *MainView) View() string {
	if v.width == 0 || v.height == 0 {
		return ""
	}
	if v.showHelp {
		return v.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.request.View(),
		v.response.View(),
		v.renderHelpBar(),
		v.renderStatusBar(),
	)
}

func (v *MainView) renderHelpBar() string {
	keyStyle := lipgloss.NewStyle().Foreground(tui.ColorPending).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(tui.ColorText)
	sep := lipgloss.NewStyle().Foreground(tui.ColorUnfocused).Render(" │ ")

	hint := func(key, desc string) string {
		return keyStyle.Render(key) + descStyle.Render(" "+desc)
	}

	var hints []string
	switch {
	case v.request.IsEditing():
		hints = []string{hint("Esc", "Done"), hint("Ctrl+U", "Clear")}
	case v.FocusedPane() == PaneRequest:
		hints = []string{
			hint("h/l", "Method"),
			hint("j/k", "Endpoint"),
			hint("e", "Edit body"),
			hint("Enter", "Send"),
		}
	default:
		hints = []string{hint("j/k", "Scroll"), hint("y", "Copy")}
	}
	hints = append(hints, hint("Tab", "Pane"), hint("?", "Help"), hint("q", "Quit"))

	return lipgloss.NewStyle().
		Width(v.width).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Render(strings.Join(hints, sep))
}

func (v *MainView) renderStatusBar() string {
	var items []string

	modeStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if v.request.IsEditing() {
		items = append(items, modeStyle.Background(tui.ColorPending).Foreground(lipgloss.Color("0")).Render("INSERT"))
	} else {
		items = append(items, modeStyle.Background(tui.ColorSuccess).Foreground(lipgloss.Color("255")).Render("NORMAL"))
	}

	badge := v.widget.Badge()
	items = append(items, lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("255")).
		Background(tui.StyleColor(badge.Style(), false)).
		Render(badge.Text()))

	items = append(items, lipgloss.NewStyle().
		Foreground(tui.ColorMuted).
		Padding(0, 1).
		Render(v.widget.BaseURL()))

	if v.notification != "" {
		style := lipgloss.NewStyle().Foreground(tui.ColorSuccess).Bold(true).Padding(0, 1)
		if strings.HasPrefix(v.notification, "✗") {
			style = style.Foreground(tui.ColorError)
		}
		items = append(items, style.Render(v.notification))
	}

	return lipgloss.NewStyle().
		Width(v.width).
		Background(lipgloss.Color("236")).
		Render(strings.Join(items, " "))
}

func (v *MainView) renderHelp() string {
	helpContent := []string{
		"╭──────────────── API Tester Help ────────────────╮",
		"│                                                 │",
		"│  Request                                        │",
		"│    h / l  ← / →     Change HTTP method          │",
		"│    j / k  ↓ / ↑     Choose endpoint             │",
		"│    e                Edit body (POST, PUT)       │",
		"│    Esc              Finish editing              │",
		"│    Enter            Send request                │",
		"│                                                 │",
		"│  Response                                       │",
		"│    j / k            Scroll                      │",
		"│    gg / G           Top / bottom                │",
		"│    y                Copy response               │",
		"│                                                 │",
		"│  General                                        │",
		"│    Tab / 1 / 2      Switch pane                 │",
		"│    ?                Toggle this help            │",
		"│    q / Ctrl+C       Quit                        │",
		"│                                                 │",
		"│           Press ? or Esc to close               │",
		"╰─────────────────────────────────────────────────╯",
	}

	return lipgloss.NewStyle().
		Width(v.width).
		Height(v.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(strings.Join(helpContent, "\n"))
}

// Title returns the view title.
func (v *MainView) Title() string {
	return "API Tester"
}

// Focused returns true; the main view always has focus.
func (v *MainView) Focused() bool {
	return true
}

// Focus sets focus.
func (v *MainView) Focus() {}

// Blur removes focus.
func (v *MainView) Blur() {}

// SetSize sets dimensions.
func (v *MainView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.updatePaneSizes()
}

// Width returns the width.
func (v *MainView) Width() int {
	return v.width
}

// Height returns the height.
func (v *MainView) Height() int {
	return v.height
}

// FocusedPane returns the currently focused pane.
func (v *MainView) FocusedPane() Pane {
	return Pane(v.panes.FocusIndex())
}

// FocusPane focuses a specific pane.
func (v *MainView) FocusPane(pane Pane) {
	v.panes.SetFocusIndex(int(pane))
}

// RequestPanel returns the request panel component.
func (v *MainView) RequestPanel() *components.RequestPanel {
	return v.request
}

// ResponsePanel returns the response panel component.
func (v *MainView) ResponsePanel() *components.ResponsePanel {
	return v.response
}

// ShowingHelp returns true if help is showing.
func (v *MainView) ShowingHelp() bool {
	return v.showHelp
}

// Notification returns the current notification message.
func (v *MainView) Notification() string {
	return v.notification
}

// LastCheck returns when the poller last reported.
func (v *MainView) LastCheck() time.Time {
	return v.lastCheck
}
