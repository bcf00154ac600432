package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dallionking/waybar-finance/internal/tui/styles"
)

// loadingSpinner supplies the frames; the frame shown is derived from the
// wall clock so rendering stays a pure function of its inputs.
var loadingSpinner = spinner.Dot

// SpinnerFrame returns the spinner frame for now.
func SpinnerFrame(now time.Time) string {
	frames := loadingSpinner.Frames
	fps := loadingSpinner.FPS
	if fps <= 0 {
		fps = time.Second / 10
	}
	i := int(now.UnixNano()/int64(fps)) % len(frames)
	return frames[i]
}

// Loading renders "⣾ text" in the accent color.
func Loading(now time.Time, text string) string {
	return lipgloss.NewStyle().Foreground(styles.AccentPrimary).Render(SpinnerFrame(now)) +
		" " + styles.Dim(text)
}

// Placeholder centers a muted message in a box of the given size.
func Placeholder(width, height int, text string) string {
	return center(width, height, styles.Dim(text))
}
