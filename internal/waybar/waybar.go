// Package waybar renders the watchlist as a single JSON line for a Waybar
// custom module.
package waybar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Dallionking/waybar-finance/internal/config"
	"github.com/Dallionking/waybar-finance/internal/market"
)

const (
	// Class is the CSS class Waybar applies to the module.
	Class = "finance"

	colorUp     = "#a6e3a1"
	colorDown   = "#f38ba8"
	colorFailed = "#6c7086"

	// DefaultConcurrency bounds parallel quote requests.
	DefaultConcurrency = 4
)

// Output is the JSON object Waybar reads.
type Output struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class"`
}

// QuoteFetcher fetches one live quote.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, symbol, apiKey string) (market.Quote, error)
}

// Result is the outcome of one symbol's quote fetch.
type Result struct {
	Symbol string
	Quote  market.Quote
	Err    error
}

// FetchAll fetches quotes for symbols concurrently, at most limit at a time.
// Results keep the order of symbols. A failed symbol is recorded in its
// Result and never aborts the others.
func FetchAll(ctx context.Context, f QuoteFetcher, symbols []string, apiKey string, limit int) []Result {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	results := make([]Result, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, sym := range symbols {
		i, sym := i, sym
		g.Go(func() error {
			q, err := f.FetchQuote(gctx, sym, apiKey)
			results[i] = Result{Symbol: sym, Quote: q, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Build formats results as Pango markup text plus a plain tooltip.
// Failed symbols show as "SYM ???" in grey and are left out of the tooltip.
func Build(results []Result) Output {
	text := make([]string, 0, len(results))
	tooltip := make([]string, 0, len(results))

	for _, r := range results {
		if r.Err != nil {
			text = append(text, fmt.Sprintf("<span color='%s'>%s ???</span>", colorFailed, r.Symbol))
			continue
		}
		color, arrow := colorUp, "▲"
		if r.Quote.Percent < 0 {
			color, arrow = colorDown, "▼"
		}
		text = append(text, fmt.Sprintf("<span color='%s'>%s %.2f %s</span>", color, r.Symbol, r.Quote.Price, arrow))
		tooltip = append(tooltip, fmt.Sprintf("%s: $%.2f (%.2f%%)", r.Symbol, r.Quote.Price, r.Quote.Percent))
	}

	return Output{
		Text:    strings.Join(text, " "),
		Tooltip: strings.Join(tooltip, "\n"),
		Class:   Class,
	}
}

// Emit fetches every watchlist quote and writes one JSON line to out. A
// missing API key is reported on errOut and is not an error, so the bar
// keeps running.
func Emit(ctx context.Context, out, errOut io.Writer, f QuoteFetcher, cfg config.Config, log zerolog.Logger) error {
	if !cfg.HasAPIKey() {
		fmt.Fprintln(errOut, "Error: API key not found in config.json")
		return nil
	}

	results := FetchAll(ctx, f, cfg.Stocks, cfg.APIKey, DefaultConcurrency)
	for _, r := range results {
		if r.Err != nil {
			log.Warn().Err(r.Err).Str("symbol", r.Symbol).Msg("quote fetch failed")
		}
	}

	// Pango markup must reach Waybar unescaped.
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Build(results)); err != nil {
		return fmt.Errorf("writing waybar output: %w", err)
	}
	return nil
}
