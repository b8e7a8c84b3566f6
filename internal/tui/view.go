package tui

import (
	"fmt"
	"strings"

	"github.com/LISSConsulting/flapper/internal/toggle"
)

// View renders the TUI: header bar, countdown, log tail, footer.
func (m Model) View() string {
	header := m.renderHeader()
	countdown := m.renderCountdown()
	footer := footerStyle.Render("ctrl+c skip wait  │  ctrl+c twice stop  │  q quit")

	// Log fills what the other four lines leave.
	logHeight := m.height - 4
	if logHeight < 1 {
		logHeight = 1
	}

	return strings.Join([]string{header, countdown, m.bar.ViewAs(m.progressPercent()), m.renderLog(logHeight), footer}, "\n")
}

func (m Model) renderHeader() string {
	iface := m.iface
	if iface == "" {
		iface = "—"
	}
	dir := "—"
	if m.direction != "" {
		dir = strings.ToUpper(string(m.direction))
	}

	parts := []string{
		"flap",
		fmt.Sprintf("interface: %s", iface),
		fmt.Sprintf("cycle: %d", m.cycle),
		fmt.Sprintf("link: %s", dir),
	}
	if m.done {
		parts = append(parts, "finished")
	}
	return m.headerStyle.Width(m.width).Render(strings.Join(parts, "  │  "))
}

func (m Model) renderCountdown() string {
	if m.sleep == 0 {
		return timestampStyle.Render("waiting for next sleep")
	}
	return fmt.Sprintf("sleeping %ss  %s  remaining %ds",
		m.sleep, directionStyle(m.direction).Render(string(m.direction)), m.remaining)
}

func (m Model) renderLog(height int) string {
	start := len(m.lines) - height
	if start < 0 {
		start = 0
	}
	rows := make([]string, 0, height)
	for _, entry := range m.lines[start:] {
		rows = append(rows, renderLine(entry))
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func renderLine(entry toggle.LogEntry) string {
	ts := timestampStyle.Render(entry.Timestamp.Format("15:04:05"))
	style := entryStyle(entry.Kind)
	if entry.Kind == toggle.LogSet {
		style = directionStyle(entry.Direction)
	}
	return fmt.Sprintf("%s  %s", ts, style.Render(entry.Message))
}
