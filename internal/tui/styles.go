package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/flapper/internal/link"
	"github.com/LISSConsulting/flapper/internal/toggle"
)

// defaultAccentColor is the default accent color (indigo).
const defaultAccentColor = "#7D56F4"

var (
	colorWhite  = lipgloss.Color("#FAFAFA")
	colorGray   = lipgloss.Color("#888888")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorYellow = lipgloss.Color("#FFD93D")
	colorRed    = lipgloss.Color("#FF6B6B")
	colorOrange = lipgloss.Color("#FFA54F")
)

var (
	footerStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	timestampStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	upStyle = lipgloss.NewStyle().
		Foreground(colorGreen).
		Bold(true)

	downStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	interruptStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(colorOrange)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorWhite)
)

// directionStyle returns the style for a direction label.
func directionStyle(d link.Direction) lipgloss.Style {
	if d == link.Up {
		return upStyle
	}
	return downStyle
}

// entryStyle returns the message style for a log entry kind.
func entryStyle(kind toggle.LogKind) lipgloss.Style {
	switch kind {
	case toggle.LogInterrupted, toggle.LogForceUp:
		return interruptStyle
	case toggle.LogError:
		return errorStyle
	case toggle.LogDone, toggle.LogStopped:
		return doneStyle
	case toggle.LogRemaining:
		return timestampStyle
	}
	return infoStyle
}
