// Package tui provides a bubbletea + lipgloss terminal UI for the flap loop.
package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/flapper/internal/link"
	"github.com/LISSConsulting/flapper/internal/toggle"
)

// maxLines caps the log history kept in memory.
const maxLines = 500

// Model is the bubbletea model for the flap TUI.
type Model struct {
	events <-chan toggle.LogEntry

	// interrupt delivers a Ctrl+C to the loop; quit cancels it.
	interrupt func()
	quit      func()

	// Display state
	lines  []toggle.LogEntry
	width  int
	height int
	bar    progress.Model

	headerStyle lipgloss.Style

	// Loop state
	iface     string
	cycle     int
	direction link.Direction
	sleep     toggle.Sleep
	whole     int
	remaining int
	done      bool
}

// New creates a TUI Model that consumes events from the given channel.
// interrupt is called for Ctrl+C and quit for q; either may be nil.
func New(events <-chan toggle.LogEntry, accentColor string, interrupt, quit func()) Model {
	if accentColor == "" {
		accentColor = defaultAccentColor
	}
	accent := lipgloss.Color(accentColor)
	return Model{
		events:      events,
		interrupt:   interrupt,
		quit:        quit,
		width:       80,
		height:      24,
		bar:         progress.New(progress.WithSolidFill(accentColor), progress.WithoutPercentage(), progress.WithWidth(76)),
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(accent).Padding(0, 1),
	}
}

// Init returns the initial command: start listening for events.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Done reports whether the loop has finished.
func (m Model) Done() bool { return m.done }

// waitForEvent returns a command that blocks on the event channel.
func waitForEvent(ch <-chan toggle.LogEntry) tea.Cmd {
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return loopDoneMsg{}
		}
		return logEntryMsg(entry)
	}
}
