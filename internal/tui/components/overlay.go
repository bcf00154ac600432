package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Overlay draws box centered on top of base. Cells of base outside the box
// are kept, styles included. Both strings may contain ANSI sequences.
func Overlay(base, box string, width, height int) string {
	baseLines := splitLines(base)
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}
	boxLines := splitLines(box)
	boxW := lipgloss.Width(box)

	x := max(0, (width-boxW)/2)
	y := max(0, (height-len(boxLines))/2)

	for i, bl := range boxLines {
		row := y + i
		if row >= len(baseLines) {
			break
		}
		line := baseLines[row]
		left := ansi.Truncate(line, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(line, x+boxW, "")
		if ansi.StringWidth(line) <= x+boxW {
			right = ""
		}
		baseLines[row] = left + "\x1b[0m" + bl + "\x1b[0m" + right
	}
	return joinLines(baseLines)
}
