package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LISSConsulting/flapper/internal/link"
	"github.com/LISSConsulting/flapper/internal/toggle"
)

func TestNew(t *testing.T) {
	ch := make(chan toggle.LogEntry, 1)
	m := New(ch, "", nil, nil)

	if m.width != 80 {
		t.Errorf("expected default width 80, got %d", m.width)
	}
	if m.height != 24 {
		t.Errorf("expected default height 24, got %d", m.height)
	}
	if m.Done() {
		t.Error("expected done to be false")
	}
	if m.Init() == nil {
		t.Error("Init should return a non-nil command")
	}
}

func TestUpdateWindowSize(t *testing.T) {
	m := New(make(chan toggle.LogEntry), "", nil, nil)

	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model := updated.(Model)

	if cmd != nil {
		t.Error("window size should not produce a command")
	}
	if model.width != 120 || model.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", model.width, model.height)
	}
	if model.bar.Width != 116 {
		t.Errorf("bar width = %d, want 116", model.bar.Width)
	}
}

func TestUpdateLogEntries(t *testing.T) {
	m := New(make(chan toggle.LogEntry, 1), "", nil, nil)

	steps := []toggle.LogEntry{
		{Kind: toggle.LogSet, Cycle: 3, Interface: "en0", Direction: link.Down, Message: "setting connection down"},
		{Kind: toggle.LogSleep, Cycle: 3, Interface: "en0", Direction: link.Down, Sleep: 4537, Message: "sleeping for 45.37"},
		{Kind: toggle.LogRemaining, Cycle: 3, Interface: "en0", Direction: link.Down, Remaining: 10, Message: "remaining seconds down = 10"},
	}

	var model tea.Model = m
	for _, e := range steps {
		e.Timestamp = time.Now()
		var cmd tea.Cmd
		model, cmd = model.Update(logEntryMsg(e))
		if cmd == nil {
			t.Fatal("log entry should produce a command to wait for more events")
		}
	}

	got := model.(Model)
	if got.cycle != 3 || got.iface != "en0" || got.direction != link.Down {
		t.Errorf("state = cycle %d iface %q dir %q", got.cycle, got.iface, got.direction)
	}
	if got.whole != 45 || got.remaining != 10 {
		t.Errorf("countdown = %d/%d, want 10/45", got.remaining, got.whole)
	}
	if pct := got.progressPercent(); pct < 0.77 || pct > 0.78 {
		t.Errorf("progress = %v, want 35/45", pct)
	}
	if len(got.lines) != 3 {
		t.Errorf("expected 3 log lines, got %d", len(got.lines))
	}

	view := got.View()
	for _, want := range []string{"interface: en0", "cycle: 3", "link: DOWN", "sleeping 45.37s", "remaining 10s", "remaining seconds down = 10"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestUpdateInterruptResetsCountdown(t *testing.T) {
	m := New(make(chan toggle.LogEntry, 1), "", nil, nil)
	m.sleep, m.whole, m.remaining = 1000, 10, 4

	updated, _ := m.Update(logEntryMsg(toggle.LogEntry{Kind: toggle.LogInterrupted, Message: "continuing"}))
	if got := updated.(Model).remaining; got != 0 {
		t.Errorf("remaining = %d, want 0 after interrupt", got)
	}
}

func TestLogHistoryCapped(t *testing.T) {
	m := New(make(chan toggle.LogEntry, 1), "", nil, nil)
	var model tea.Model = m
	for i := 0; i < maxLines+25; i++ {
		model, _ = model.Update(logEntryMsg(toggle.LogEntry{Kind: toggle.LogRemaining, Message: "x"}))
	}
	if n := len(model.(Model).lines); n != maxLines {
		t.Errorf("kept %d lines, want %d", n, maxLines)
	}
}

func TestKeys(t *testing.T) {
	interrupts, quits := 0, 0
	m := New(make(chan toggle.LogEntry), "", func() { interrupts++ }, func() { quits++ })

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd != nil {
		t.Error("ctrl+c should not quit the TUI directly")
	}
	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if interrupts != 2 {
		t.Errorf("interrupts = %d, want 2", interrupts)
	}
	if quits != 1 {
		t.Errorf("quits = %d, want 1", quits)
	}
}

func TestKeysWithoutCallbacks(t *testing.T) {
	m := New(make(chan toggle.LogEntry), "", nil, nil)
	// Must not panic.
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
}

func TestLoopDone(t *testing.T) {
	ch := make(chan toggle.LogEntry)
	close(ch)
	m := New(ch, "#112233", nil, nil)

	msg := m.Init()()
	if _, ok := msg.(loopDoneMsg); !ok {
		t.Fatalf("expected loopDoneMsg from closed channel, got %T", msg)
	}

	updated, cmd := m.Update(msg)
	if !updated.(Model).Done() {
		t.Error("model should be done")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !strings.Contains(updated.View(), "finished") {
		t.Error("view should mark the loop finished")
	}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan toggle.LogEntry, 1)
	ch <- toggle.LogEntry{Kind: toggle.LogSet, Message: "setting connection up"}

	msg := waitForEvent(ch)()
	entry, ok := msg.(logEntryMsg)
	if !ok {
		t.Fatalf("expected logEntryMsg, got %T", msg)
	}
	if entry.Message != "setting connection up" {
		t.Errorf("message = %q", entry.Message)
	}
}
