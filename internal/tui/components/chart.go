package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/waybar-finance/internal/market"
	"github.com/Dallionking/waybar-finance/internal/tui/styles"
)

// eighths are the partial block characters, one per eighth of a cell.
var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Chart draws a closing-price series as a filled block chart with the price
// range on the left and the date range underneath.
type Chart struct {
	Points []market.Point
	Width  int
	Height int
}

// Render returns the chart. Fewer than two points renders a placeholder.
func (c Chart) Render() string {
	if len(c.Points) < 2 {
		return Placeholder(c.Width, c.Height, "Not enough data to chart")
	}

	stats := market.Stats(c.Points)
	color := styles.PriceDown
	if stats.Up() {
		color = styles.PriceUp
	}

	hi, lo := fmt.Sprintf("%.2f", stats.Max), fmt.Sprintf("%.2f", stats.Min)
	axisW := max(len(hi), len(lo)) + 1
	plotW := c.Width - axisW
	plotH := c.Height - 1 // date row
	if plotW < 4 || plotH < 1 {
		return Placeholder(c.Width, c.Height, "Terminal too small")
	}

	cols := resample(c.Points, plotW)
	span := stats.Max - stats.Min
	levels := make([]int, plotW)
	for i, v := range cols {
		if span == 0 {
			levels[i] = plotH * 4
			continue
		}
		// At least one eighth so the line never disappears at the minimum.
		levels[i] = max(1, int(math.Round((v-stats.Min)/span*float64(plotH*8))))
	}

	axis := lipgloss.NewStyle().Foreground(styles.TextMuted).Width(axisW)
	plot := lipgloss.NewStyle().Foreground(color)

	rows := make([]string, 0, c.Height)
	for r := plotH - 1; r >= 0; r-- {
		var b strings.Builder
		for _, lvl := range levels {
			fill := lvl - r*8
			switch {
			case fill >= 8:
				b.WriteRune(eighths[8])
			case fill <= 0:
				b.WriteRune(eighths[0])
			default:
				b.WriteRune(eighths[fill])
			}
		}
		label := ""
		switch r {
		case plotH - 1:
			label = hi
		case 0:
			label = lo
		}
		rows = append(rows, axis.Render(label)+plot.Render(b.String()))
	}

	start := c.Points[0].Time().Format("2006-01-02")
	end := c.Points[len(c.Points)-1].Time().Format("2006-01-02")
	gap := max(1, plotW-len(start)-len(end))
	rows = append(rows, strings.Repeat(" ", axisW)+styles.Dim(start+strings.Repeat(" ", gap)+end))

	return joinLines(rows)
}

// resample maps the series onto n columns, averaging the points that fall
// into each column and repeating the nearest point when there are fewer
// points than columns.
func resample(points []market.Point, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		lo := i * len(points) / n
		hi := (i + 1) * len(points) / n
		if hi <= lo {
			out[i] = points[min(lo, len(points)-1)].Close
			continue
		}
		sum := 0.0
		for _, p := range points[lo:hi] {
			sum += p.Close
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}
