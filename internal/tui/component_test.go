package tui

import (
	"strings"
	"testing"

	"github.com/artpar/apitester/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type stubComponent struct {
	title   string
	focused bool
	width   int
	height  int
}

func (c *stubComponent) Init() tea.Cmd                           { return nil }
func (c *stubComponent) Update(msg tea.Msg) (Component, tea.Cmd) { return c, nil }
func (c *stubComponent) View() string                            { return c.title }
func (c *stubComponent) Title() string                           { return c.title }
func (c *stubComponent) Focused() bool                           { return c.focused }
func (c *stubComponent) Focus()                                  { c.focused = true }
func (c *stubComponent) Blur()                                   { c.focused = false }
func (c *stubComponent) SetSize(width, height int)               { c.width, c.height = width, height }
func (c *stubComponent) Width() int                              { return c.width }
func (c *stubComponent) Height() int                             { return c.height }

func TestComponentList(t *testing.T) {
	t.Run("starts with nothing focused", func(t *testing.T) {
		cl := NewComponentList(&stubComponent{title: "First"})
		assert.Equal(t, 1, cl.Len())
		assert.Equal(t, -1, cl.FocusIndex())
		assert.Nil(t, cl.Focused())
	})

	t.Run("cycles focus forward", func(t *testing.T) {
		first, second := &stubComponent{title: "First"}, &stubComponent{title: "Second"}
		cl := NewComponentList(first, second)

		cl.FocusNext()
		assert.True(t, first.Focused())

		cl.FocusNext()
		assert.False(t, first.Focused())
		assert.True(t, second.Focused())

		cl.FocusNext()
		assert.Equal(t, 0, cl.FocusIndex())
	})

	t.Run("cycles focus backward", func(t *testing.T) {
		cl := NewComponentList()
		cl.Add(&stubComponent{title: "First"})
		cl.Add(&stubComponent{title: "Second"})
		cl.Add(&stubComponent{title: "Third"})

		cl.FocusPrev()
		assert.Equal(t, 2, cl.FocusIndex())
		assert.Equal(t, "Third", cl.Focused().Title())
	})

	t.Run("ignores out of range index", func(t *testing.T) {
		cl := NewComponentList(&stubComponent{title: "First"})
		cl.SetFocusIndex(5)
		assert.Equal(t, -1, cl.FocusIndex())
		assert.Nil(t, cl.Get(5))
	})

	t.Run("empty list is a no-op", func(t *testing.T) {
		cl := NewComponentList()
		cl.FocusNext()
		cl.FocusPrev()
		assert.Equal(t, -1, cl.FocusIndex())
	})
}

func TestStyleColor(t *testing.T) {
	assert.Equal(t, ColorSuccess, StyleColor(widget.StyleSuccess, false))
	assert.Equal(t, ColorError, StyleColor(widget.StyleError, true))
	assert.Equal(t, ColorFocus, StyleColor(widget.StyleNone, true))
	assert.Equal(t, ColorUnfocused, StyleColor(widget.StyleNone, false))
}

func TestFitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "", ""}, FitLines([]string{"a"}, 3))
	assert.Equal(t, []string{"a"}, FitLines([]string{"a", "b"}, 1))
	assert.Empty(t, FitLines([]string{"a"}, -1))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hel...", Truncate("hello world", 6))
	assert.Equal(t, "he", Truncate("hello", 2))
	assert.Equal(t, "", Truncate("hello", 0))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abc", PadRight("abcdef", 3))
}

func TestRenderTitle(t *testing.T) {
	out := RenderTitle("Response", 20, true)
	assert.Contains(t, out, "Response")
	assert.True(t, strings.Contains(RenderBorder("body", 10, 3, ColorError), "body"))
}
