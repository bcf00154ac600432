package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dallionking/waybar-finance/internal/market"
	"github.com/Dallionking/waybar-finance/internal/tui/styles"
)

// QuoteView is the price and fundamentals panel for the focused symbol.
// Nil pointers mean "no value yet"; the matching Loading flag decides between
// a spinner and a dash.
type QuoteView struct {
	Symbol string

	Quote        *market.Quote
	QuoteLoading bool
	QuoteErr     error

	Details        *market.Fundamentals
	DetailsLoading bool
	DetailsErr     error

	Stats *market.SeriesStats

	Now    time.Time
	Width  int
	Height int
}

const quoteLabelWidth = 14

// Render returns the panel.
func (q QuoteView) Render() string {
	title := "Quote"
	if q.Symbol != "" {
		title = "Quote · " + q.Symbol
	}

	var content string
	if q.Symbol == "" {
		content = styles.Dim("Select a symbol and press Enter")
	} else {
		content = strings.Join(q.lines(), "\n")
	}

	return Panel{Title: title, Content: content, Width: q.Width, Height: q.Height}.Render()
}

func (q QuoteView) lines() []string {
	var lines []string

	name := ""
	if q.Details != nil {
		name = q.Details.Name
	}
	if name != "" {
		lines = append(lines, styles.Value.Render(styles.TruncateWithEllipsis(name, max(8, q.Width-4))))
	}

	lines = append(lines, Row("Price", q.priceLine(), quoteLabelWidth))

	d := q.Details
	metric := func(label string, v *float64, format func(float64) string) {
		switch {
		case d != nil && v != nil:
			lines = append(lines, Row(label, styles.Value.Render(format(*v)), quoteLabelWidth))
		case d != nil:
			lines = append(lines, Row(label, styles.Dim("N/A"), quoteLabelWidth))
		case q.DetailsLoading:
			lines = append(lines, Row(label, Loading(q.Now, ""), quoteLabelWidth))
		default:
			lines = append(lines, Row(label, styles.Dim("—"), quoteLabelWidth))
		}
	}

	capLabel := "Mkt Cap"
	if d != nil && d.IsFund() {
		capLabel = "Net Assets"
	}
	var capV, pe, yield, hi, lo, ret *float64
	if d != nil {
		capV, pe, yield, hi, lo, ret = d.MarketCap, d.PERatio, d.DividendYield, d.High52W, d.Low52W, d.TrailingReturn
	}
	metric("52W High", hi, styles.Price)
	metric("52W Low", lo, styles.Price)
	metric(capLabel, capV, styles.Money)
	metric("P/E", pe, func(v float64) string { return fmt.Sprintf("%.2f", v) })
	metric("Div Yield", yield, func(v float64) string { return fmt.Sprintf("%.2f%%", v) })
	metric("YTD Return", ret, func(v float64) string { return styles.Colored(styles.Percent(v), styles.Move(v)) })

	if q.Stats != nil {
		lines = append(lines, Row("1Y Volatility", styles.Value.Render(fmt.Sprintf("%.1f%%", q.Stats.Volatility)), quoteLabelWidth))
		lines = append(lines, Row("1Y Change", styles.Colored(styles.Percent(q.Stats.Change), styles.Move(q.Stats.Change)), quoteLabelWidth))
	}

	if q.DetailsErr != nil && d == nil {
		lines = append(lines, styles.Colored("Fundamentals unavailable", styles.StatusWarn))
	}
	return lines
}

func (q QuoteView) priceLine() string {
	if q.Quote == nil {
		if q.QuoteLoading {
			return Loading(q.Now, "fetching")
		}
		if q.QuoteErr != nil {
			return styles.Colored("unavailable", styles.StatusError)
		}
		return styles.Dim("—")
	}
	line := styles.Value.Render(styles.Price(q.Quote.Price)) + "  " +
		styles.Colored(styles.Arrow(q.Quote.Percent)+" "+styles.Percent(q.Quote.Percent), styles.Move(q.Quote.Percent))
	if q.QuoteLoading {
		line += " " + styles.Dim(SpinnerFrame(q.Now))
	}
	return line
}
