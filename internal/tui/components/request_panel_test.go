package components

import (
	"context"
	"errors"
	"testing"

	"github.com/artpar/apitester/internal/core"
	"github.com/artpar/apitester/internal/tui"
	"github.com/artpar/apitester/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWidget() *widget.Widget {
	return widget.New(widget.RequesterFunc(func(ctx context.Context, req *core.Request) (*core.Response, error) {
		return nil, errors.New("offline")
	}), "http://localhost:5000")
}

func newTestRequestPanel(t *testing.T) *RequestPanel {
	t.Helper()
	panel := NewRequestPanel(newTestWidget())
	panel.SetSize(80, 24)
	panel.Focus()
	return panel
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, c tui.Component, msgs ...tea.Msg) (tui.Component, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		c, cmd = c.Update(msg)
	}
	return c, cmd
}

func TestNewRequestPanel(t *testing.T) {
	panel := NewRequestPanel(newTestWidget())

	assert.Equal(t, "Request", panel.Title())
	assert.False(t, panel.Focused())
	assert.False(t, panel.IsEditing())
	assert.Equal(t, core.MethodGet, panel.Widget().State().Method)
}

func TestRequestPanel_Methods(t *testing.T) {
	t.Run("l and right cycle forward", func(t *testing.T) {
		panel := newTestRequestPanel(t)

		press(t, panel, keyRunes("l"))
		assert.Equal(t, core.MethodPost, panel.Widget().State().Method)

		press(t, panel, tea.KeyMsg{Type: tea.KeyRight})
		assert.Equal(t, core.MethodPut, panel.Widget().State().Method)
	})

	t.Run("h wraps backward", func(t *testing.T) {
		panel := newTestRequestPanel(t)

		press(t, panel, keyRunes("h"))
		state := panel.Widget().State()
		assert.Equal(t, core.MethodDelete, state.Method)
		assert.Equal(t, core.EndpointsFor(core.MethodDelete), state.Endpoints)
		assert.False(t, state.BodyVisible)
	})

	t.Run("ignored while unfocused", func(t *testing.T) {
		panel := newTestRequestPanel(t)
		panel.Blur()

		press(t, panel, keyRunes("l"))
		assert.Equal(t, core.MethodGet, panel.Widget().State().Method)
	})
}

func TestRequestPanel_Endpoints(t *testing.T) {
	panel := newTestRequestPanel(t)

	press(t, panel, keyRunes("j"), keyRunes("j"))
	assert.Equal(t, "/api/users", panel.Widget().State().SelectedPath())

	press(t, panel, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "/api/info", panel.Widget().State().SelectedPath())

	press(t, panel, keyRunes("k"), keyRunes("k"), keyRunes("k"))
	assert.Equal(t, "/api/health", panel.Widget().State().SelectedPath())
}

func TestRequestPanel_BodyEdit(t *testing.T) {
	t.Run("not available for GET", func(t *testing.T) {
		panel := newTestRequestPanel(t)

		press(t, panel, keyRunes("e"))
		assert.False(t, panel.IsEditing())
	})

	t.Run("edits the body for POST", func(t *testing.T) {
		panel := newTestRequestPanel(t)
		press(t, panel, keyRunes("l"))

		press(t, panel, keyRunes("e"))
		require.True(t, panel.IsEditing())

		press(t, panel, tea.KeyMsg{Type: tea.KeyCtrlU}, keyRunes(`{"a"`), keyRunes(":"), tea.KeyMsg{Type: tea.KeySpace}, keyRunes("1}"))
		assert.Equal(t, `{"a": 1}`, panel.Widget().State().Body)

		press(t, panel, tea.KeyMsg{Type: tea.KeyBackspace})
		assert.Equal(t, `{"a": 1`, panel.Widget().State().Body)

		press(t, panel, tea.KeyMsg{Type: tea.KeyEsc})
		assert.False(t, panel.IsEditing())
	})

	t.Run("navigation keys type while editing", func(t *testing.T) {
		panel := newTestRequestPanel(t)
		press(t, panel, keyRunes("l"))
		panel.StartBodyEdit()
		press(t, panel, tea.KeyMsg{Type: tea.KeyCtrlU})

		_, cmd := press(t, panel, keyRunes("j"), keyRunes("l"), tea.KeyMsg{Type: tea.KeyEnter})

		assert.Nil(t, cmd)
		state := panel.Widget().State()
		assert.Equal(t, core.MethodPost, state.Method)
		assert.Equal(t, "jl\n", state.Body)
	})

	t.Run("blur leaves edit mode", func(t *testing.T) {
		panel := newTestRequestPanel(t)
		press(t, panel, keyRunes("l"))
		panel.StartBodyEdit()

		panel.Update(tui.BlurMsg{})
		assert.False(t, panel.IsEditing())
	})
}

func TestRequestPanel_Send(t *testing.T) {
	panel := newTestRequestPanel(t)

	_, cmd := press(t, panel, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SendRequestMsg{}, cmd())
}

func TestRequestPanel_View(t *testing.T) {
	t.Run("empty without size", func(t *testing.T) {
		assert.Empty(t, NewRequestPanel(newTestWidget()).View())
	})

	t.Run("shows methods, endpoints and button", func(t *testing.T) {
		panel := newTestRequestPanel(t)
		view := panel.View()

		for _, want := range []string{"GET", "POST", "PUT", "DELETE", "Health Check", "/api/users/2", widget.SendLabel} {
			assert.Contains(t, view, want)
		}
		assert.NotContains(t, view, "Body")
	})

	t.Run("shows the body editor for PUT", func(t *testing.T) {
		panel := newTestRequestPanel(t)
		panel.SetSize(80, 30)
		press(t, panel, keyRunes("l"), keyRunes("l"))

		view := panel.View()
		assert.Contains(t, view, "Body")
		assert.Contains(t, view, "Updated Name")
		assert.Contains(t, view, "Update User (ID: 1)")
	})
}
