package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/waybar-finance/internal/market"
	"github.com/Dallionking/waybar-finance/internal/tui/styles"
)

// Header renders the treasury banner across the top of the dashboard.
type Header struct {
	Status *market.Status // nil until the first poll succeeds
	Err    error          // last poll error, shown while Status is nil
	Now    time.Time
	Width  int
}

// Render returns the styled header string.
func (h Header) Render() string {
	width := h.Width
	if width <= 0 {
		width = 80
	}

	logo := styles.Title.Render("TREASURY YIELDS")
	sep := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("  │  ")

	var content string
	switch {
	case h.Status != nil:
		s := *h.Status
		yield := func(label string, v float64) string {
			return styles.Label.Render(label+" ") + styles.Value.Render(fmt.Sprintf("%.2f%%", v))
		}
		spreadColor := styles.StatusOK
		if s.Inverted() {
			spreadColor = styles.StatusError
		}
		spread := styles.Label.Render("10Y-3M Spread ") +
			styles.Colored(fmt.Sprintf("%+.2f", s.Spread()), spreadColor)

		content = logo + sep +
			yield("13W", s.YieldShort) + "   " +
			yield("5Y", s.YieldMid) + "   " +
			yield("10Y", s.YieldLong) + sep + spread
	case h.Err != nil:
		content = logo + sep + styles.Colored("Market data unavailable", styles.StatusWarn)
	default:
		content = logo + sep + Loading(h.Now, "Loading Market Data...")
	}

	headerStyle := lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextPrimary).
		Width(width).
		MaxWidth(width).
		PaddingLeft(1).
		PaddingRight(1)

	return headerStyle.Render(content)
}
