package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/flapper/internal/toggle"
)

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(msg.Width-4, 10)
		return m, nil

	case logEntryMsg:
		return m.handleLogEntry(msg)

	case loopDoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey maps Ctrl+C to a loop interrupt, the same as SIGINT outside the
// TUI. The TUI stays up until the loop closes its event channel.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.interrupt != nil {
			m.interrupt()
		}
	case "q":
		if m.quit != nil {
			m.quit()
		}
	}
	return m, nil
}

func (m Model) handleLogEntry(msg logEntryMsg) (tea.Model, tea.Cmd) {
	entry := toggle.LogEntry(msg)

	if entry.Interface != "" {
		m.iface = entry.Interface
	}
	if entry.Cycle > 0 {
		m.cycle = entry.Cycle
	}

	switch entry.Kind {
	case toggle.LogSet, toggle.LogForceUp:
		m.direction = entry.Direction
		m.sleep, m.whole, m.remaining = 0, 0, 0
	case toggle.LogSleep:
		m.sleep = entry.Sleep
		_, m.whole = toggle.Split(entry.Sleep)
		m.remaining = m.whole
	case toggle.LogRemaining:
		m.remaining = entry.Remaining
	case toggle.LogInterrupted:
		m.remaining = 0
	}

	m.lines = append(m.lines, entry)
	if len(m.lines) > maxLines {
		m.lines = m.lines[len(m.lines)-maxLines:]
	}

	return m, waitForEvent(m.events)
}

// progressPercent is the completed share of the current countdown.
func (m Model) progressPercent() float64 {
	if m.whole == 0 {
		return 0
	}
	return float64(m.whole-m.remaining) / float64(m.whole)
}
