package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/waybar-finance/internal/market"
	"github.com/Dallionking/waybar-finance/internal/tui/styles"
)

// inputField renders value in a focused text input. The model is rebuilt
// from the buffer each frame; the buffer itself lives in application state.
func inputField(value, placeholder string, width int, masked bool) string {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.Width = width
	ti.CharLimit = 0
	if masked {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.AccentPrimary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.SetValue(value)
	ti.Focus()
	return ti.View()
}

// APIKeyDialog asks for the quote provider key.
type APIKeyDialog struct {
	Input string
	Width int
}

// Render returns the dialog box.
func (d APIKeyDialog) Render() string {
	w := min(d.Width-4, 64)
	if w < 24 {
		w = 24
	}
	body := strings.Join([]string{
		styles.Colored("Finnhub API key required", styles.AccentGold),
		"",
		styles.Dim("Get a free key at finnhub.io and paste it below."),
		styles.Dim("It is stored in your config file."),
		"",
		inputField(d.Input, "api key", w-8, true),
		"",
		styles.Dim("enter save • esc quit"),
	}, "\n")
	return styles.Overlay.BorderForeground(styles.AccentGold).Width(w).Render(body)
}

// SymbolDialog is the add-symbol editor with live search results.
type SymbolDialog struct {
	Input   string
	Results []market.SearchResult
	Cursor  int
	Width   int
	Height  int
}

// Render returns the dialog box.
func (d SymbolDialog) Render() string {
	w := min(d.Width-4, 72)
	if w < 28 {
		w = 28
	}
	inner := w - 6

	lines := []string{
		styles.Title.Render("Add Symbol"),
		"",
		inputField(d.Input, "ticker or company name", inner-2, false),
		"",
	}

	maxRows := d.Height - 12
	if maxRows < 3 {
		maxRows = 3
	}
	switch {
	case len(d.Results) > 0:
		for i, r := range d.Results {
			if i >= maxRows {
				lines = append(lines, styles.Dim(fmt.Sprintf("  … %d more", len(d.Results)-maxRows)))
				break
			}
			row := fmt.Sprintf("%-10s %s", r.Symbol, r.Name)
			if meta := strings.TrimSpace(r.QuoteType + " " + r.Exchange); meta != "" {
				row += "  " + meta
			}
			row = styles.TruncateWithEllipsis(row, inner-2)
			if i == d.Cursor {
				lines = append(lines, styles.Selected.Width(inner).Render("> "+row))
			} else {
				lines = append(lines, "  "+row)
			}
		}
	case len([]rune(strings.TrimSpace(d.Input))) > 1:
		lines = append(lines, styles.Dim("  no matches yet"))
	default:
		lines = append(lines, styles.Dim("  type at least two characters to search"))
	}

	return styles.Overlay.Width(w).Render(strings.Join(lines, "\n"))
}
