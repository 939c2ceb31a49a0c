package components

import (
	"fmt"
	"strings"

	"github.com/artpar/apitester/internal/core"
	"github.com/artpar/apitester/internal/tui"
	"github.com/artpar/apitester/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SendRequestMsg is sent when the user presses the send button.
type SendRequestMsg struct{}

// SendCompletedMsg carries the outcome of a send back to the view.
type SendCompletedMsg struct {
	Outcome widget.Outcome
}

// RequestPanel is the form half of the tester: the method selector, the
// endpoint list, the body editor and the send button.
type RequestPanel struct {
	title   string
	focused bool
	width   int
	height  int
	widget  *widget.Widget
	editing bool
}

// NewRequestPanel creates a panel editing w.
func NewRequestPanel(w *widget.Widget) *RequestPanel {
	return &RequestPanel{
		title:  "Request",
		widget: w,
	}
}

// Init initializes the component.
func (p *RequestPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (p *RequestPanel) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
	case tui.FocusMsg:
		p.focused = true
	case tui.BlurMsg:
		p.focused = false
		p.editing = false
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		if p.editing {
			return p.handleEditKey(msg)
		}
		return p.handleKeyMsg(msg)
	}
	return p, nil
}

func (p *RequestPanel) handleKeyMsg(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	switch msg.Type {
	case tea.KeyLeft:
		p.cycleMethod(-1)
	case tea.KeyRight:
		p.cycleMethod(1)
	case tea.KeyUp:
		p.widget.MoveEndpoint(-1)
	case tea.KeyDown:
		p.widget.MoveEndpoint(1)
	case tea.KeyEnter:
		return p, p.send()
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "h":
			p.cycleMethod(-1)
		case "l":
			p.cycleMethod(1)
		case "k":
			p.widget.MoveEndpoint(-1)
		case "j":
			p.widget.MoveEndpoint(1)
		case "e":
			p.StartBodyEdit()
		}
	}
	return p, nil
}

func (p *RequestPanel) handleEditKey(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	body := p.widget.State().Body

	switch msg.Type {
	case tea.KeyEsc:
		p.editing = false
		return p, nil
	case tea.KeyEnter:
		body += "\n"
	case tea.KeyTab:
		body += "  "
	case tea.KeySpace:
		body += " "
	case tea.KeyBackspace:
		if r := []rune(body); len(r) > 0 {
			body = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		body = ""
	case tea.KeyRunes:
		body += string(msg.Runes)
	default:
		return p, nil
	}

	p.widget.SetBody(body)
	return p, nil
}

func (p *RequestPanel) cycleMethod(delta int) {
	methods := core.Methods()
	current := p.widget.State().Method
	idx := 0
	for i, m := range methods {
		if m == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(methods)) % len(methods)
	// Methods() only yields valid methods.
	_ = p.widget.SelectMethod(methods[idx])
}

func (p *RequestPanel) send() tea.Cmd {
	if !p.widget.State().SendEnabled {
		return nil
	}
	return func() tea.Msg {
		return SendRequestMsg{}
	}
}

// StartBodyEdit enters body editing when the method carries a body.
func (p *RequestPanel) StartBodyEdit() bool {
	if !p.widget.State().BodyVisible {
		return false
	}
	p.editing = true
	return true
}

// IsEditing reports whether keys go to the body editor.
func (p *RequestPanel) IsEditing() bool {
	return p.editing
}

// View renders the component.
func (p *RequestPanel) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}

	innerWidth := p.width - 2
	state := p.widget.State()

	lines := []string{
		tui.RenderTitle(p.title, innerWidth, p.focused),
		p.renderMethods(state.Method),
		"",
	}
	lines = append(lines, p.renderEndpoints(state)...)

	if state.BodyVisible {
		label := "Body"
		if p.editing {
			label = "Body (editing, Esc to finish)"
		}
		lines = append(lines, "", lipgloss.NewStyle().Bold(true).Render(label))
		for _, line := range strings.Split(state.Body, "\n") {
			lines = append(lines, "  "+line)
		}
		if p.editing {
			lines[len(lines)-1] += "█"
		}
	}

	lines = append(lines, "", p.renderSendButton(state))

	content := strings.Join(tui.FitLines(lines, p.height-2), "\n")
	color := tui.ColorUnfocused
	if p.focused {
		color = tui.ColorFocus
	}
	return tui.RenderBorder(content, innerWidth, p.height-2, color)
}

func (p *RequestPanel) renderMethods(selected core.Method) string {
	var parts []string
	for _, m := range core.Methods() {
		label := " " + m.String() + " "
		if m == selected {
			parts = append(parts, methodStyle(m).Render(label))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(tui.ColorMuted).Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (p *RequestPanel) renderEndpoints(state widget.State) []string {
	lines := make([]string, 0, len(state.Endpoints))
	for i, opt := range state.Endpoints {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(tui.ColorText)
		if i == state.Selected {
			prefix = "> "
			style = style.Bold(true)
		}
		lines = append(lines, style.Render(fmt.Sprintf("%s%s  %s", prefix, opt.Label, opt.Path)))
	}
	return lines
}

func (p *RequestPanel) renderSendButton(state widget.State) string {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	if state.SendEnabled {
		style = style.Background(tui.ColorFocus).Foreground(tui.ColorTitle)
	} else {
		style = style.Background(tui.ColorUnfocused).Foreground(tui.ColorMuted)
	}
	return style.Render(state.SendLabel)
}

func methodStyle(m core.Method) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)

	switch m {
	case core.MethodGet:
		return style.Background(lipgloss.Color("34")).Foreground(lipgloss.Color("255"))
	case core.MethodPost:
		return style.Background(lipgloss.Color("214")).Foreground(lipgloss.Color("0"))
	case core.MethodPut:
		return style.Background(lipgloss.Color("33")).Foreground(lipgloss.Color("255"))
	case core.MethodDelete:
		return style.Background(lipgloss.Color("160")).Foreground(lipgloss.Color("255"))
	default:
		return style.Background(lipgloss.Color("240"))
	}
}

// Title returns the component title.
func (p *RequestPanel) Title() string {
	return p.title
}

// Focused returns true if focused.
func (p *RequestPanel) Focused() bool {
	return p.focused
}

// Focus sets the component as focused.
func (p *RequestPanel) Focus() {
	p.focused = true
}

// Blur removes focus and leaves body editing.
func (p *RequestPanel) Blur() {
	p.focused = false
	p.editing = false
}

// SetSize sets dimensions.
func (p *RequestPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Width returns the width.
func (p *RequestPanel) Width() int {
	return p.width
}

// Height returns the height.
func (p *RequestPanel) Height() int {
	return p.height
}

// Widget returns the widget being edited.
func (p *RequestPanel) Widget() *widget.Widget {
	return p.widget
}
