package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/waybar-finance/internal/app"
	"github.com/Dallionking/waybar-finance/internal/market"
	"github.com/Dallionking/waybar-finance/internal/tui/components"
	"github.com/Dallionking/waybar-finance/internal/tui/styles"
)

const (
	minWidth       = 40
	minHeight      = 12
	quotePanelRows = 14
)

// Render draws one frame from snap. It reads nothing but its arguments, so
// the same snapshot and clock always produce the same frame.
func Render(snap app.Snapshot, width, height int, now time.Time) string {
	if width < minWidth || height < minHeight {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.Dim(fmt.Sprintf("Terminal too small (%dx%d)", width, height)))
	}

	header := renderHeader(snap, width, now)
	footer := renderFooter(snap, width, now)
	bodyH := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyH < 6 {
		bodyH = 6
	}

	listW := width / 4
	if listW < 18 {
		listW = 18
	}
	if listW > 28 {
		listW = 28
	}
	rightW := width - listW

	list := components.WatchlistView{
		Symbols: snap.Symbols,
		Cursor:  snap.Cursor,
		Focused: snap.Focused,
		Width:   listW,
		Height:  bodyH,
	}.Render()

	quoteH := min(quotePanelRows, bodyH/2)
	right := lipgloss.JoinVertical(lipgloss.Left,
		renderQuote(snap, rightW, quoteH, now),
		renderChart(snap, rightW, bodyH-quoteH, now),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, right)
	base := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	switch snap.Mode {
	case app.ModeEditingAPIKey:
		box := components.APIKeyDialog{Input: snap.Input, Width: width}.Render()
		return components.Overlay(base, box, width, height)
	case app.ModeEditingSymbol:
		box := components.SymbolDialog{
			Input:   snap.Input,
			Results: snap.Search,
			Cursor:  snap.SearchCursor,
			Width:   width,
			Height:  height,
		}.Render()
		return components.Overlay(base, box, width, height)
	}
	return base
}

func renderHeader(snap app.Snapshot, width int, now time.Time) string {
	h := components.Header{Now: now, Width: width}
	if snap.Market.Valid {
		st := snap.Market.Value
		h.Status = &st
	} else if snap.Market.Status == app.Failed {
		h.Err = snap.Market.Err
	}
	return h.Render()
}

func renderQuote(snap app.Snapshot, width, height int, now time.Time) string {
	v := components.QuoteView{
		Symbol:         snap.Focused,
		QuoteLoading:   snap.Quote.Status == app.Loading,
		QuoteErr:       snap.Quote.Err,
		DetailsLoading: snap.Details.Status == app.Loading,
		DetailsErr:     snap.Details.Err,
		Now:            now,
		Width:          width,
		Height:         height,
	}
	if snap.Quote.Valid {
		q := snap.Quote.Value
		v.Quote = &q
	}
	if snap.Details.Valid {
		d := snap.Details.Value
		v.Details = &d
	}
	if snap.History.Valid {
		s := snap.Stats
		v.Stats = &s
	}
	return v.Render()
}

func renderChart(snap app.Snapshot, width, height int, now time.Time) string {
	title := "1Y History"
	innerW := width - 4
	innerH := height - 3

	var content string
	switch {
	case snap.Focused == "":
		content = components.Placeholder(innerW, innerH, "Press Enter to load chart")
	case snap.History.Valid:
		title += " · " + snap.Focused
		content = components.Chart{Points: snap.History.Value, Width: innerW, Height: innerH}.Render()
	case snap.History.Status == app.Loading:
		content = components.Placeholder(innerW, innerH, components.Loading(now, "Loading chart..."))
	case snap.History.Status == app.Failed:
		content = components.Placeholder(innerW, innerH, "No chart data: "+chartError(snap.History.Err))
	default:
		content = components.Placeholder(innerW, innerH, "Press Enter to load chart")
	}

	return components.Panel{Title: title, Content: content, Width: width, Height: height}.Render()
}

func chartError(err error) string {
	if err == nil {
		return "unknown error"
	}
	if market.IsKind(err, market.KindEmpty) {
		return "empty history"
	}
	return err.Error()
}

func renderFooter(snap app.Snapshot, width int, now time.Time) string {
	f := components.Footer{
		Mode:     snap.Mode.String(),
		Bindings: bindings(snap.Mode),
		Width:    width,
	}
	if snap.Message.Visible(now) {
		f.Message = snap.Message.Text
		f.MessageColor = levelColor(snap.Message.Level)
	}
	return f.Render()
}

func bindings(m app.Mode) []key.Binding {
	switch m {
	case app.ModeEditingSymbol:
		return components.Keys.SymbolHelp()
	case app.ModeEditingAPIKey:
		return components.Keys.APIKeyHelp()
	}
	return components.Keys.NormalHelp()
}

func levelColor(l app.Level) lipgloss.Color {
	switch l {
	case app.LevelProgress:
		return styles.AccentSecondary
	case app.LevelSuccess:
		return styles.StatusOK
	case app.LevelWarn:
		return styles.StatusWarn
	case app.LevelError:
		return styles.StatusError
	}
	return styles.StatusInfo
}
