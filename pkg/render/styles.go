package render

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bodega-dev/bodega/pkg/ticket"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - IDs
	colorGreen  = lipgloss.Color("35")  // Green - open / ready
	colorYellow = lipgloss.Color("220") // Amber - in-progress
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - closed, muted text
)

var (
	styleID         = lipgloss.NewStyle().Foreground(colorCyan)
	styleOpen       = lipgloss.NewStyle().Foreground(colorGreen)
	styleInProgress = lipgloss.NewStyle().Foreground(colorYellow)
	styleClosed     = lipgloss.NewStyle().Foreground(colorDim)
	styleLabel      = lipgloss.NewStyle().Foreground(colorGray)
	styleHeading    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim        = lipgloss.NewStyle().Foreground(colorDim)
)

func statusStyle(s ticket.Status) lipgloss.Style {
	switch s {
	case ticket.StatusInProgress:
		return styleInProgress
	case ticket.StatusClosed:
		return styleClosed
	default:
		return styleOpen
	}
}

// DisableColor strips all styling from subsequent output. The CLI calls this
// when stdout is not a terminal or NO_COLOR is set.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// NoColorRequested reports whether the environment asks for plain output.
func NoColorRequested() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return set
}
