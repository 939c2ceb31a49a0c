package components

import (
	"fmt"
	"strings"

	"github.com/artpar/apitester/internal/tui"
	"github.com/artpar/apitester/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CopyMsg is sent when content should be copied.
type CopyMsg struct {
	Content string
}

// FeedbackMsg is sent to display a feedback notification to the user.
type FeedbackMsg struct {
	Message string
	IsError bool
}

// ResponsePanel shows the rendered outcome of the last send.
type ResponsePanel struct {
	title        string
	focused      bool
	width        int
	height       int
	outcome      *widget.Outcome
	lines        []string
	loading      bool
	scrollOffset int
	gPressed     bool // For gg sequence
	highlighter  *JSONHighlighter
}

// NewResponsePanel creates a new response panel.
func NewResponsePanel() *ResponsePanel {
	return &ResponsePanel{
		title:       "Response",
		highlighter: NewJSONHighlighter(),
	}
}

// Init initializes the component.
func (p *ResponsePanel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (p *ResponsePanel) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
	case tui.FocusMsg:
		p.focused = true
	case tui.BlurMsg:
		p.focused = false
	case tea.KeyMsg:
		if p.focused {
			return p.handleKeyMsg(msg)
		}
	}
	return p, nil
}

func (p *ResponsePanel) handleKeyMsg(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	pageSize := p.visibleLines()

	switch msg.Type {
	case tea.KeyPgUp, tea.KeyCtrlU:
		p.scroll(-pageSize)
	case tea.KeyPgDown, tea.KeyCtrlD:
		p.scroll(pageSize)
	case tea.KeyUp:
		p.scroll(-1)
	case tea.KeyDown:
		p.scroll(1)
	case tea.KeyRunes:
		key := string(msg.Runes)
		if key != "g" {
			p.gPressed = false
		}
		switch key {
		case "j":
			p.scroll(1)
		case "k":
			p.scroll(-1)
		case "G":
			p.scrollOffset = p.maxScrollOffset()
		case "g":
			if p.gPressed {
				p.scrollOffset = 0
				p.gPressed = false
			} else {
				p.gPressed = true
			}
		case "y":
			if p.outcome == nil {
				return p, func() tea.Msg {
					return FeedbackMsg{Message: "No response to copy", IsError: true}
				}
			}
			content := p.outcome.Text()
			return p, func() tea.Msg {
				return CopyMsg{Content: content}
			}
		}
	}
	return p, nil
}

func (p *ResponsePanel) scroll(delta int) {
	p.scrollOffset += delta
	if limit := p.maxScrollOffset(); p.scrollOffset > limit {
		p.scrollOffset = limit
	}
	if p.scrollOffset < 0 {
		p.scrollOffset = 0
	}
}

// visibleLines is the body height: borders, title and status line excluded.
func (p *ResponsePanel) visibleLines() int {
	n := p.height - 4
	if n < 1 {
		return 1
	}
	return n
}

func (p *ResponsePanel) maxScrollOffset() int {
	if over := len(p.lines) - p.visibleLines(); over > 0 {
		return over
	}
	return 0
}

// View renders the component.
func (p *ResponsePanel) View() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}

	innerWidth := p.width - 2
	innerHeight := p.height - 2

	lines := []string{tui.RenderTitle(p.title, innerWidth, p.focused)}

	switch {
	case p.loading:
		lines = append(lines, lipgloss.NewStyle().
			Width(innerWidth).
			Height(innerHeight-1).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(tui.ColorPending).
			Render(widget.BusyLabel))
	case p.outcome == nil:
		lines = append(lines, lipgloss.NewStyle().
			Width(innerWidth).
			Height(innerHeight-1).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(tui.ColorUnfocused).
			Render("No response yet"))
	default:
		lines = append(lines, p.renderStatusLine())
		body := p.lines
		if p.scrollOffset > 0 && p.scrollOffset < len(body) {
			body = body[p.scrollOffset:]
		}
		lines = append(lines, body...)
	}

	content := strings.Join(tui.FitLines(lines, innerHeight), "\n")
	return tui.RenderBorder(content, innerWidth, innerHeight, tui.StyleColor(p.Style(), p.focused))
}

func (p *ResponsePanel) renderStatusLine() string {
	style := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("255"))
	if p.Style() == widget.StyleSuccess {
		style = style.Background(tui.ColorSuccess)
	} else {
		style = style.Background(tui.ColorError)
	}

	var label string
	if r := p.outcome.Response; r != nil {
		label = fmt.Sprintf("%d %s", r.Status, r.StatusText)
	} else if f := p.outcome.Failure; f != nil {
		label = f.Kind
	}

	draft := lipgloss.NewStyle().Foreground(tui.ColorMuted).
		Render(fmt.Sprintf("  %s %s", p.outcome.Draft.Method, p.outcome.Draft.Path))
	return style.Render(label) + draft
}

// Style returns the panel's outcome style, or StyleNone while empty or
// loading.
func (p *ResponsePanel) Style() widget.Style {
	if p.loading || p.outcome == nil {
		return widget.StyleNone
	}
	return p.outcome.Style()
}

// SetOutcome shows o and ends the loading state.
func (p *ResponsePanel) SetOutcome(o widget.Outcome) {
	p.outcome = &o
	p.loading = false
	p.scrollOffset = 0
	p.gPressed = false
	p.lines = p.highlighter.Lines(o.Text())
}

// Outcome returns the outcome shown, if any.
func (p *ResponsePanel) Outcome() *widget.Outcome {
	return p.outcome
}

// SetLoading sets the loading state.
func (p *ResponsePanel) SetLoading(loading bool) {
	p.loading = loading
}

// IsLoading returns whether the panel is loading.
func (p *ResponsePanel) IsLoading() bool {
	return p.loading
}

// ScrollOffset returns the current scroll offset.
func (p *ResponsePanel) ScrollOffset() int {
	return p.scrollOffset
}

// Title returns the component title.
func (p *ResponsePanel) Title() string {
	return p.title
}

// Focused returns true if focused.
func (p *ResponsePanel) Focused() bool {
	return p.focused
}

// Focus sets the component as focused.
func (p *ResponsePanel) Focus() {
	p.focused = true
}

// Blur removes focus.
func (p *ResponsePanel) Blur() {
	p.focused = false
}

// SetSize sets dimensions.
func (p *ResponsePanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Width returns the width.
func (p *ResponsePanel) Width() int {
	return p.width
}

// Height returns the height.
func (p *ResponsePanel) Height() int {
	return p.height
}
