package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/waybar-finance/internal/tui/styles"
)

// Panel wraps content in a bordered box with a title line. Width and Height
// are outer sizes including the border; Height 0 sizes to content.
type Panel struct {
	Title   string
	Content string
	Width   int
	Height  int
	Focused bool
}

// Render returns the styled panel.
func (p Panel) Render() string {
	style := styles.Panel
	if p.Focused {
		style = styles.PanelFocused
	}

	w := p.Width - style.GetHorizontalBorderSize()
	if w < 12 {
		w = 12
	}
	style = style.Width(w)

	body := styles.Title.Render(p.Title) + "\n" + p.Content
	if p.Height > 0 {
		h := p.Height - style.GetVerticalBorderSize()
		if h < 2 {
			h = 2
		}
		body = clampLines(body, h-style.GetVerticalPadding())
		style = style.Height(h)
	}
	return style.Render(body)
}

// clampLines cuts s to at most n lines.
func clampLines(s string, n int) string {
	lines := splitLines(s)
	if len(lines) > n {
		lines = lines[:n]
	}
	return joinLines(lines)
}

// splitLines splits a rendered string on newlines.
func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

// joinLines joins lines back with newlines.
func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Row renders a "label  value" line with the label padded to labelWidth.
func Row(label, value string, labelWidth int) string {
	return styles.Label.Width(labelWidth).Render(label) + value
}

// center places s in the middle of a box of the given size.
func center(width, height int, s string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}
