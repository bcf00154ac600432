package components

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/waybar-finance/internal/tui/styles"
)

// Footer renders the status message on the left and the mode badge with
// keybinding hints on the right.
type Footer struct {
	Message      string
	MessageColor lipgloss.Color
	Mode         string
	Bindings     []key.Binding
	Width        int
}

// Render returns the styled footer string.
func (f Footer) Render() string {
	width := f.Width
	if width <= 0 {
		width = 80
	}

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(styles.TextMuted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(styles.TextMuted)
	h.ShortSeparator = " • "

	mode := lipgloss.NewStyle().
		Foreground(styles.BgDeep).
		Background(styles.AccentPrimary).
		Bold(true).
		Padding(0, 1).
		Render(f.Mode)
	right := mode + " " + h.ShortHelpView(f.Bindings)

	msgWidth := width - lipgloss.Width(right) - 3
	left := ""
	if msgWidth > 0 && f.Message != "" {
		left = lipgloss.NewStyle().
			Foreground(f.MessageColor).
			Render(styles.TruncateWithEllipsis(f.Message, msgWidth))
	}

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	content := left + lipgloss.NewStyle().Width(gap).Render("") + right

	footerStyle := lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextMuted).
		Width(width).
		MaxWidth(width).
		PaddingLeft(1).
		PaddingRight(1)

	return footerStyle.Render(content)
}
