package views

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/Dallionking/waybar-finance/internal/app"
	"github.com/Dallionking/waybar-finance/internal/market"
)

var frameTime = time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)

func render(snap app.Snapshot) string {
	return ansi.Strip(Render(snap, 110, 40, frameTime))
}

func baseSnapshot() app.Snapshot {
	return app.Snapshot{
		Mode:         app.ModeNormal,
		Symbols:      []string{"SPY", "QQQ"},
		Cursor:       0,
		SearchCursor: -1,
	}
}

func TestRenderEmptyState(t *testing.T) {
	snap := app.Snapshot{Cursor: -1, SearchCursor: -1}
	out := render(snap)

	assert.Contains(t, out, "Empty. Press a to add.")
	assert.Contains(t, out, "Select a symbol and press Enter")
	assert.Contains(t, out, "Press Enter to load chart")
	assert.Contains(t, out, "NORMAL")
}

func TestRenderTooSmall(t *testing.T) {
	out := ansi.Strip(Render(baseSnapshot(), 20, 5, frameTime))
	assert.Contains(t, out, "Terminal too small")
}

func TestRenderIsDeterministic(t *testing.T) {
	snap := baseSnapshot()
	snap.Focused = "SPY"
	snap.Quote = app.Field[market.Quote]{Status: app.Loading}
	assert.Equal(t, Render(snap, 100, 30, frameTime), Render(snap, 100, 30, frameTime))
}

func TestRenderLoadedQuote(t *testing.T) {
	pe := 28.4
	snap := baseSnapshot()
	snap.Focused = "AAPL"
	snap.Quote = app.Field[market.Quote]{Status: app.Loaded, Valid: true, Value: market.Quote{Price: 150.25, Percent: 1.2}}
	snap.Details = app.Field[market.Fundamentals]{Status: app.Loaded, Valid: true, Value: market.Fundamentals{
		Name:      "Apple Inc.",
		QuoteType: "EQUITY",
		PERatio:   &pe,
	}}
	out := render(snap)

	assert.Contains(t, out, "$150.25")
	assert.Contains(t, out, "+1.20%")
	assert.Contains(t, out, "Apple Inc.")
	assert.Contains(t, out, "28.40")
	assert.Contains(t, out, "N/A")
	assert.Contains(t, out, "Mkt Cap")
}

func TestRenderFundLabelsNetAssets(t *testing.T) {
	assets := 5e11
	snap := baseSnapshot()
	snap.Focused = "SPY"
	snap.Details = app.Field[market.Fundamentals]{Status: app.Loaded, Valid: true, Value: market.Fundamentals{
		QuoteType: "ETF",
		MarketCap: &assets,
	}}
	out := render(snap)

	assert.Contains(t, out, "Net Assets")
	assert.Contains(t, out, "$500.00B")
}

func TestRenderChartPlaceholders(t *testing.T) {
	snap := baseSnapshot()
	snap.Focused = "SPY"

	snap.History = app.Field[[]market.Point]{Status: app.Loading}
	assert.Contains(t, render(snap), "Loading chart...")

	snap.History = app.Field[[]market.Point]{Status: app.Failed, Err: errors.New("boom")}
	assert.Contains(t, render(snap), "No chart data: boom")

	snap.History = app.Field[[]market.Point]{Status: app.Loaded, Valid: true, Value: []market.Point{{Timestamp: 1700000000, Close: 1}}}
	assert.Contains(t, render(snap), "Not enough data to chart")
}

func TestRenderMarketHeader(t *testing.T) {
	snap := baseSnapshot()
	snap.Market = app.Field[market.Status]{Status: app.Loading}
	assert.Contains(t, render(snap), "Loading Market Data...")

	snap.Market = app.Field[market.Status]{Status: app.Failed, Err: errors.New("down")}
	assert.Contains(t, render(snap), "Market data unavailable")

	snap.Market = app.Field[market.Status]{Status: app.Loaded, Valid: true, Value: market.Status{YieldLong: 4.1, YieldMid: 4.0, YieldShort: 5.0}}
	out := render(snap)
	assert.Contains(t, out, "TREASURY YIELDS")
	assert.Contains(t, out, "10Y-3M Spread")
}

func TestRenderMessageExpires(t *testing.T) {
	snap := baseSnapshot()
	snap.Message = app.Message{Text: "Updated SPY", Level: app.LevelSuccess, At: frameTime.Add(-time.Second)}
	assert.Contains(t, render(snap), "Updated SPY")

	snap.Message.At = frameTime.Add(-app.MessageTTL - time.Second)
	assert.NotContains(t, render(snap), "Updated SPY")
}

func TestRenderAPIKeyOverlayMasksInput(t *testing.T) {
	snap := baseSnapshot()
	snap.Mode = app.ModeEditingAPIKey
	snap.Input = "supersecret"
	out := render(snap)

	assert.Contains(t, out, "Finnhub API key required")
	assert.NotContains(t, out, "supersecret")
	assert.Contains(t, out, "API KEY")
	// The dashboard stays visible around the dialog.
	assert.Contains(t, out, "Watchlist")
}

func TestRenderSymbolOverlay(t *testing.T) {
	snap := baseSnapshot()
	snap.Mode = app.ModeEditingSymbol
	snap.Input = "appl"
	snap.Search = []market.SearchResult{
		{Symbol: "AAPL", Name: "Apple Inc.", QuoteType: "EQUITY", Exchange: "NMS"},
		{Symbol: "APLE", Name: "Apple Hospitality"},
	}
	snap.SearchCursor = 1
	out := render(snap)

	assert.Contains(t, out, "Add Symbol")
	assert.Contains(t, out, "appl")
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "> APLE")
	assert.Contains(t, out, "ADD SYMBOL")
}

func TestRenderSymbolOverlayHint(t *testing.T) {
	snap := baseSnapshot()
	snap.Mode = app.ModeEditingSymbol
	snap.Input = "a"
	assert.Contains(t, render(snap), "type at least two characters")
}

func TestRenderFitsHeight(t *testing.T) {
	snap := baseSnapshot()
	snap.Focused = "SPY"
	out := Render(snap, 100, 30, frameTime)
	assert.LessOrEqual(t, len(strings.Split(out, "\n")), 30)
}
