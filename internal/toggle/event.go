package toggle

import (
	"time"

	"github.com/LISSConsulting/flapper/internal/link"
)

// LogKind identifies the type of a loop log event.
type LogKind int

const (
	LogSet         LogKind = iota // Direction about to be applied
	LogSleep                      // Sleep duration drawn for this cycle
	LogRemaining                  // One countdown step finished
	LogInterrupted                // Interrupt caught during a wait
	LogForceUp                    // Double interrupt, forcing the link up
	LogError                      // Setter failure
	LogDone                       // Loop finished (max cycles or forced exit)
	LogStopped                    // Loop stopped (context cancelled or terminated)
)

// LogEntry is a structured event emitted by the loop. When Loop.Events is
// set, entries are sent there for TUI consumption. Otherwise they are
// written as plain lines to Loop.Log.
type LogEntry struct {
	Kind      LogKind
	Timestamp time.Time
	Message   string

	Cycle     int
	Interface string
	Direction link.Direction

	// Sleep is the full wait drawn for the cycle; Remaining counts whole
	// seconds left in the countdown.
	Sleep     Sleep
	Remaining int
}
