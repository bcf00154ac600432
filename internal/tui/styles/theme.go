package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RoundedBorder uses rounded corners for general panels.
var RoundedBorder = lipgloss.RoundedBorder()

// ThickBorder marks modal overlays.
var ThickBorder = lipgloss.ThickBorder()

// ---------------------------------------------------------------------------
// Panel styles
// ---------------------------------------------------------------------------

// Panel is the default panel style: rounded border in BorderNormal with
// horizontal padding only, so panels stack tightly in small terminals.
var Panel = lipgloss.NewStyle().
	Border(RoundedBorder).
	BorderForeground(BorderNormal).
	Padding(0, 1)

// PanelFocused is identical to Panel but uses the cyan focus border.
var PanelFocused = Panel.
	BorderForeground(BorderFocused)

// Overlay is the modal box drawn over the dashboard while editing.
var Overlay = lipgloss.NewStyle().
	Background(BgSurface).
	Border(ThickBorder).
	BorderForeground(AccentPrimary).
	Padding(1, 2)

// ---------------------------------------------------------------------------
// Typography styles
// ---------------------------------------------------------------------------

// Title is bold AccentPrimary text for section headings.
var Title = lipgloss.NewStyle().
	Foreground(AccentPrimary).
	Bold(true)

// Label is TextMuted text for field labels.
var Label = lipgloss.NewStyle().
	Foreground(TextMuted)

// Value is bold TextPrimary text for data values.
var Value = lipgloss.NewStyle().
	Foreground(TextPrimary).
	Bold(true)

// Selected highlights the row under a cursor.
var Selected = lipgloss.NewStyle().
	Background(BgHover).
	Foreground(AccentPrimary).
	Bold(true)

// ---------------------------------------------------------------------------
// Divider
// ---------------------------------------------------------------------------

// Divider returns a horizontal rule of the given width using the ─ character
// rendered in BorderNormal color.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	line := strings.Repeat("─", width)
	return lipgloss.NewStyle().Foreground(BorderNormal).Render(line)
}
