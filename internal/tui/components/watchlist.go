package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/waybar-finance/internal/tui/styles"
)

// WatchlistView lists the tracked symbols with the cursor row highlighted and
// the focused symbol marked.
type WatchlistView struct {
	Symbols []string
	Cursor  int
	Focused string
	Width   int
	Height  int
}

// Render returns the watchlist panel.
func (w WatchlistView) Render() string {
	inner := w.Width - 4
	if inner < 6 {
		inner = 6
	}

	var content string
	if len(w.Symbols) == 0 {
		content = styles.Dim("Empty. Press a to add.")
	} else {
		rows := make([]string, 0, len(w.Symbols))
		for i, sym := range visibleWindow(w.Symbols, w.Cursor, w.Height-3) {
			idx := i + windowStart(len(w.Symbols), w.Cursor, w.Height-3)
			marker := "  "
			if sym == w.Focused {
				marker = styles.Cyan("● ")
			}
			label := styles.TruncateWithEllipsis(sym, inner-2)
			if idx == w.Cursor {
				rows = append(rows, styles.Selected.Width(inner).Render("> "+label))
				continue
			}
			rows = append(rows, marker+lipgloss.NewStyle().Foreground(styles.TextPrimary).Render(label))
		}
		content = strings.Join(rows, "\n")
	}

	return Panel{
		Title:   "Watchlist",
		Content: content,
		Width:   w.Width,
		Height:  w.Height,
		Focused: true,
	}.Render()
}

// windowStart returns the first index shown so the cursor stays visible in
// a window of n rows.
func windowStart(total, cursor, n int) int {
	if n <= 0 || total <= n || cursor < n {
		return 0
	}
	start := cursor - n + 1
	if start > total-n {
		start = total - n
	}
	return start
}

func visibleWindow(symbols []string, cursor, n int) []string {
	if n <= 0 || len(symbols) <= n {
		return symbols
	}
	start := windowStart(len(symbols), cursor, n)
	return symbols[start : start+n]
}
