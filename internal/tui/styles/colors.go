package styles

import "github.com/charmbracelet/lipgloss"

// Gotham Night -- Dark Palette
// Deep midnight backgrounds with electric cyan accents, plus the market
// colors used for price moves.

var (
	// Backgrounds (darkest to lightest)
	BgDeep    = lipgloss.Color("#0a0e14") // Deepest -- main background
	BgPanel   = lipgloss.Color("#11151c") // Panel/card background
	BgSurface = lipgloss.Color("#1a1f2e") // Overlay surface
	BgHover   = lipgloss.Color("#232a3b") // Selected row

	// Accents
	AccentPrimary   = lipgloss.Color("#4fc1ff") // Cyan -- titles, focus
	AccentSecondary = lipgloss.Color("#39c5bb") // Teal -- secondary info
	AccentGold      = lipgloss.Color("#f5a623") // Gold -- key entry, highlights

	// Market
	PriceUp   = lipgloss.Color("#22c55e") // Green
	PriceDown = lipgloss.Color("#ef4444") // Red
	PriceFlat = lipgloss.Color("#94a3b8") // Grey

	// Status
	StatusOK    = lipgloss.Color("#22c55e") // Green
	StatusWarn  = lipgloss.Color("#f59e0b") // Amber
	StatusError = lipgloss.Color("#ef4444") // Red
	StatusInfo  = lipgloss.Color("#4fc1ff") // Cyan

	// Text
	TextPrimary   = lipgloss.Color("#e2e8f0") // High contrast
	TextSecondary = lipgloss.Color("#94a3b8") // Dimmed
	TextMuted     = lipgloss.Color("#64748b") // Very dim

	// Borders
	BorderNormal  = lipgloss.Color("#2d3748") // Subtle
	BorderFocused = lipgloss.Color("#4fc1ff") // Cyan focus ring
)

// Move returns the color for a signed change.
func Move(change float64) lipgloss.Color {
	switch {
	case change > 0:
		return PriceUp
	case change < 0:
		return PriceDown
	}
	return PriceFlat
}
