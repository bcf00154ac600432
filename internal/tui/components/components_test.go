package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dallionking/waybar-finance/internal/market"
)

func series(closes ...float64) []market.Point {
	pts := make([]market.Point, len(closes))
	for i, c := range closes {
		pts[i] = market.Point{Timestamp: 1704067200 + int64(i)*86400, Close: c}
	}
	return pts
}

func TestChartRender(t *testing.T) {
	out := ansi.Strip(Chart{Points: series(10, 12, 11, 15), Width: 30, Height: 6}.Render())
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "15.00"))
	assert.True(t, strings.HasPrefix(lines[4], "10.00"))
	assert.Contains(t, lines[5], "2024-01-01")
	assert.Contains(t, lines[5], "2024-01-04")
	assert.Contains(t, out, "█")
}

func TestChartPlaceholders(t *testing.T) {
	out := ansi.Strip(Chart{Points: series(10), Width: 30, Height: 5}.Render())
	assert.Contains(t, out, "Not enough data to chart")

	out = ansi.Strip(Chart{Points: series(1, 2, 3), Width: 6, Height: 5}.Render())
	assert.Contains(t, out, "Terminal")
}

func TestChartFlatSeries(t *testing.T) {
	assert.NotPanics(t, func() {
		Chart{Points: series(5, 5, 5), Width: 20, Height: 4}.Render()
	})
}

func TestResample(t *testing.T) {
	pts := series(1, 3, 5, 7)
	assert.Equal(t, []float64{2, 6}, resample(pts, 2))
	assert.Equal(t, []float64{1, 1, 3, 3, 5, 5, 7, 7}, resample(pts, 8))
}

func TestSpinnerFrameIsClockDriven(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, SpinnerFrame(now), SpinnerFrame(now))
	assert.NotEqual(t, SpinnerFrame(now), SpinnerFrame(now.Add(loadingSpinner.FPS)))
}

func TestWatchlistWindow(t *testing.T) {
	syms := []string{"A", "B", "C", "D", "E", "F"}
	assert.Equal(t, 0, windowStart(len(syms), 1, 3))
	assert.Equal(t, 3, windowStart(len(syms), 5, 3))
	assert.Equal(t, []string{"D", "E", "F"}, visibleWindow(syms, 5, 3))
	assert.Equal(t, syms, visibleWindow(syms, 5, 10))
}

func TestWatchlistViewMarksCursorAndFocus(t *testing.T) {
	out := ansi.Strip(WatchlistView{
		Symbols: []string{"SPY", "QQQ", "SGOL"},
		Cursor:  1,
		Focused: "SGOL",
		Width:   20,
		Height:  10,
	}.Render())

	assert.Contains(t, out, "> QQQ")
	assert.Contains(t, out, "● SGOL")
	assert.Contains(t, out, "  SPY")
}

func TestOverlayKeepsSurroundings(t *testing.T) {
	base := strings.Join([]string{
		"aaaaaaaaaa",
		"bbbbbbbbbb",
		"cccccccccc",
	}, "\n")
	out := Overlay(base, "XX", 10, 3)
	lines := strings.Split(ansi.Strip(out), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "aaaaaaaaaa", lines[0])
	assert.Equal(t, "bbbbXXbbbb", lines[1])
	assert.Equal(t, "cccccccccc", lines[2])
}

func TestOverlayPadsShortLines(t *testing.T) {
	out := ansi.Strip(Overlay("ab", "X", 9, 1))
	assert.Equal(t, "ab  X", out)
}

func TestPanelSize(t *testing.T) {
	out := Panel{Title: "T", Content: "one\ntwo\nthree\nfour", Width: 20, Height: 5}.Render()
	assert.Equal(t, 20, lipgloss.Width(out))
	assert.Equal(t, 5, lipgloss.Height(out))
	assert.NotContains(t, ansi.Strip(out), "four")
}

func TestQuoteViewStates(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	empty := ansi.Strip(QuoteView{Width: 50, Height: 14, Now: now}.Render())
	assert.Contains(t, empty, "Select a symbol and press Enter")

	loading := ansi.Strip(QuoteView{Symbol: "SPY", QuoteLoading: true, DetailsLoading: true, Width: 50, Height: 14, Now: now}.Render())
	assert.Contains(t, loading, "fetching")
	assert.Contains(t, loading, "52W High")

	hi := 600.0
	loaded := ansi.Strip(QuoteView{
		Symbol:  "SPY",
		Quote:   &market.Quote{Price: 512.3, Percent: -0.5},
		Details: &market.Fundamentals{QuoteType: "ETF", High52W: &hi},
		Stats:   &market.SeriesStats{Volatility: 14.2, Change: 8.1},
		Width:   50, Height: 16, Now: now,
	}.Render())
	assert.Contains(t, loaded, "$512.30")
	assert.Contains(t, loaded, "▼ -0.50%")
	assert.Contains(t, loaded, "$600.00")
	assert.Contains(t, loaded, "Net Assets")
	assert.Contains(t, loaded, "14.2%")
}

func TestAPIKeyDialogMasks(t *testing.T) {
	out := ansi.Strip(APIKeyDialog{Input: "hunter2", Width: 80}.Render())
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "•••••••")
}
