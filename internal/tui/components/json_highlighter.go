package components

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// JSONHighlighter colors rendered JSON for the response view.
type JSONHighlighter struct {
	keyStyle    lipgloss.Style
	stringStyle lipgloss.Style
	numberStyle lipgloss.Style
	boolStyle   lipgloss.Style
	nullStyle   lipgloss.Style
	punctStyle  lipgloss.Style
}

// NewJSONHighlighter creates a highlighter with the default palette.
func NewJSONHighlighter() *JSONHighlighter {
	return &JSONHighlighter{
		keyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		stringStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		numberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		boolStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		nullStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		punctStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// Highlight colors text. Anything that is not a JSON token is copied as is,
// so invalid input still renders.
func (h *JSONHighlighter) Highlight(text string) string {
	return strings.Join(h.Lines(text), "\n")
}

// Lines colors text and splits it into lines.
func (h *JSONHighlighter) Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = h.line([]rune(line))
	}
	return lines
}

func (h *JSONHighlighter) line(rs []rune) string {
	var out strings.Builder
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case r == '"':
			end := stringEnd(rs, i)
			tok := string(rs[i:end])
			if isKey(rs, end) {
				out.WriteString(h.keyStyle.Render(tok))
			} else {
				out.WriteString(h.stringStyle.Render(tok))
			}
			i = end
		case r == '-' || unicode.IsDigit(r):
			end := i + 1
			for end < len(rs) && strings.ContainsRune("0123456789.eE+-", rs[end]) {
				end++
			}
			out.WriteString(h.numberStyle.Render(string(rs[i:end])))
			i = end
		case unicode.IsLetter(r):
			end := i + 1
			for end < len(rs) && unicode.IsLetter(rs[end]) {
				end++
			}
			word := string(rs[i:end])
			switch word {
			case "true", "false":
				out.WriteString(h.boolStyle.Render(word))
			case "null":
				out.WriteString(h.nullStyle.Render(word))
			default:
				out.WriteString(word)
			}
			i = end
		case strings.ContainsRune("{}[]:,", r):
			out.WriteString(h.punctStyle.Render(string(r)))
			i++
		default:
			out.WriteRune(r)
			i++
		}
	}
	return out.String()
}

// stringEnd returns the index just past the string literal starting at i.
func stringEnd(rs []rune, i int) int {
	for j := i + 1; j < len(rs); j++ {
		switch rs[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(rs)
}

func isKey(rs []rune, i int) bool {
	for ; i < len(rs); i++ {
		if rs[i] == ' ' || rs[i] == '\t' {
			continue
		}
		return rs[i] == ':'
	}
	return false
}
