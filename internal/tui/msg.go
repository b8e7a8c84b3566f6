package tui

import "github.com/LISSConsulting/flapper/internal/toggle"

// logEntryMsg wraps a LogEntry as a bubbletea message.
type logEntryMsg toggle.LogEntry

// loopDoneMsg signals the event channel has closed.
type loopDoneMsg struct{}
