package components

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestJSONHighlighter_Highlight(t *testing.T) {
	h := NewJSONHighlighter()

	tests := []struct {
		name  string
		input string
	}{
		{"object", `{"name": "test"}`},
		{"number", `{"count": -42.5e3}`},
		{"booleans", `{"enabled": true, "disabled": false}`},
		{"null", `{"value": null}`},
		{"escaped quote", `{"quote": "say \"hi\""}`},
		{"not json", `Request Failed: connection refused`},
		{"unterminated string", `{"broken": "abc`},
		{"multiline", "{\n  \"status\": 200,\n  \"body\": [\n    1,\n    2\n  ]\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := h.Highlight(tt.input)
			assert.Equal(t, tt.input, ansi.Strip(out))
		})
	}

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, h.Highlight(""))
		assert.Nil(t, h.Lines(""))
	})

	t.Run("preserves line count", func(t *testing.T) {
		lines := h.Lines("{\n  \"a\": 1\n}")
		assert.Len(t, lines, 3)
	})
}

func TestIsKey(t *testing.T) {
	rs := []rune(`"name" : "value"`)
	assert.True(t, isKey(rs, stringEnd(rs, 0)))
	assert.False(t, isKey(rs, len(rs)))
	assert.Equal(t, 6, stringEnd(rs, 0))
}
