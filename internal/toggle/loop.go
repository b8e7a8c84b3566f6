// Package toggle implements the flap cycle: set direction -> random sleep ->
// countdown, with interrupts skipping to the next cycle.
package toggle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/LISSConsulting/flapper/internal/link"
)

// ErrInterrupted is returned by Run when a double interrupt should terminate
// the process the way an unhandled interrupt would.
var ErrInterrupted = errors.New("toggle: interrupted")

// DoubleInterruptAction selects what a second interrupt inside the grace
// window does.
type DoubleInterruptAction string

const (
	// ForceUp sets the link up and ends the loop cleanly.
	ForceUp DoubleInterruptAction = "force-up"
	// Terminate ends the loop with ErrInterrupted so the caller can re-raise.
	Terminate DoubleInterruptAction = "terminate"
)

// ParseDoubleInterruptAction validates an action name.
func ParseDoubleInterruptAction(s string) (DoubleInterruptAction, error) {
	switch a := DoubleInterruptAction(s); a {
	case ForceUp, Terminate:
		return a, nil
	}
	return "", fmt.Errorf("toggle: unknown double interrupt action %q (want %s or %s)", s, ForceUp, Terminate)
}

// Loop runs the toggle cycle against a single interface.
type Loop struct {
	Link      link.Setter
	Interface string // used for reporting only

	// Interrupts delivers user interrupts (SIGINT, TUI Ctrl+C).
	Interrupts <-chan os.Signal
	// After overrides the timer used for waits; defaults to time.After.
	After func(d time.Duration) <-chan time.Time
	// Rand drives sleep selection; defaults to a time-seeded source.
	Rand *rand.Rand

	MinSleep  Sleep         // defaults to DefaultMinSleep
	MaxSleep  Sleep         // defaults to DefaultMaxSleep
	Grace     time.Duration // defaults to DefaultGrace
	MaxCycles int           // 0 = run forever
	OnDouble  DoubleInterruptAction

	Log    io.Writer       // output destination; defaults to os.Stdout
	Events chan<- LogEntry // when set, entries go here instead of Log
	Hook   func(LogEntry)  // optional, called for every entry

	cycle int
}

// Run toggles the link until MaxCycles is reached, the context is
// cancelled, a double interrupt arrives, or the setter fails.
// A forced-up exit and a completed MaxCycles run return nil.
func (l *Loop) Run(ctx context.Context) error {
	waiter := &Waiter{Interrupts: l.Interrupts, After: l.After}
	rng := l.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for l.MaxCycles == 0 || l.cycle < l.MaxCycles {
		if err := ctx.Err(); err != nil {
			l.emit(LogEntry{Kind: LogStopped, Message: fmt.Sprintf("stopped: %v", err)})
			return err
		}

		l.cycle++
		dir := DirectionFor(l.cycle)
		l.emit(LogEntry{Kind: LogSet, Direction: dir, Message: fmt.Sprintf("setting connection %s", dir)})
		if err := l.Link.Set(ctx, dir); err != nil {
			l.emit(LogEntry{Kind: LogError, Direction: dir, Message: err.Error()})
			return fmt.Errorf("toggle: cycle %d: set %s: %w", l.cycle, dir, err)
		}

		sleep := Draw(rng, l.minSleep(), l.maxSleep())
		l.emit(LogEntry{Kind: LogSleep, Direction: dir, Sleep: sleep, Message: fmt.Sprintf("sleeping for %s", sleep)})

		switch l.sleep(ctx, waiter, dir, sleep) {
		case WaitCancelled:
			l.emit(LogEntry{Kind: LogStopped, Message: fmt.Sprintf("stopped: %v", ctx.Err())})
			return ctx.Err()
		case WaitInterrupted:
			done, err := l.interrupted(ctx, waiter)
			if done {
				return err
			}
		}
	}

	l.emit(LogEntry{Kind: LogDone, Message: fmt.Sprintf("done after %d cycles", l.cycle)})
	return nil
}

// Cycle returns the number of cycles started so far.
func (l *Loop) Cycle() int { return l.cycle }

// sleep waits the fractional lead-in, then counts down whole seconds.
func (l *Loop) sleep(ctx context.Context, w *Waiter, dir link.Direction, s Sleep) WaitResult {
	fraction, whole := Split(s)
	if res := w.Wait(ctx, fraction.Duration()); res != WaitCompleted {
		return res
	}
	for remaining := whole; remaining > 0; {
		if res := w.Wait(ctx, time.Second); res != WaitCompleted {
			return res
		}
		remaining--
		l.emit(LogEntry{
			Kind:      LogRemaining,
			Direction: dir,
			Sleep:     s,
			Remaining: remaining,
			Message:   fmt.Sprintf("remaining seconds %s = %d", dir, remaining),
		})
	}
	return WaitCompleted
}

// interrupted handles the grace window after a first interrupt. It reports
// whether the loop should end, and with which error.
func (l *Loop) interrupted(ctx context.Context, w *Waiter) (bool, error) {
	l.emit(LogEntry{Kind: LogInterrupted, Message: "continuing"})

	switch w.Wait(ctx, l.grace()) {
	case WaitCompleted:
		return false, nil
	case WaitCancelled:
		l.emit(LogEntry{Kind: LogStopped, Message: fmt.Sprintf("stopped: %v", ctx.Err())})
		return true, ctx.Err()
	}

	if l.OnDouble == Terminate {
		l.emit(LogEntry{Kind: LogStopped, Message: "interrupted twice, terminating"})
		return true, ErrInterrupted
	}

	l.emit(LogEntry{Kind: LogForceUp, Direction: link.Up, Message: "interrupted twice, setting connection up"})
	// The context may already be cancelled by the same keystroke; restoring
	// the link must still happen.
	if err := l.Link.Set(context.WithoutCancel(ctx), link.Up); err != nil {
		l.emit(LogEntry{Kind: LogError, Direction: link.Up, Message: err.Error()})
		return true, fmt.Errorf("toggle: force up: %w", err)
	}
	l.emit(LogEntry{Kind: LogDone, Direction: link.Up, Message: "connection up, exiting"})
	return true, nil
}

func (l *Loop) minSleep() Sleep {
	if l.MinSleep > 0 {
		return l.MinSleep
	}
	return DefaultMinSleep
}

func (l *Loop) maxSleep() Sleep {
	if l.MaxSleep > 0 {
		return l.MaxSleep
	}
	return DefaultMaxSleep
}

func (l *Loop) grace() time.Duration {
	if l.Grace > 0 {
		return l.Grace
	}
	return DefaultGrace
}

// emit stamps and routes an entry to Events or Log, then to Hook.
func (l *Loop) emit(entry LogEntry) {
	entry.Timestamp = time.Now()
	entry.Cycle = l.cycle
	entry.Interface = l.Interface

	if l.Events != nil {
		l.Events <- entry
	} else {
		w := l.Log
		if w == nil {
			w = os.Stdout
		}
		fmt.Fprintln(w, FormatLine(entry))
	}
	if l.Hook != nil {
		l.Hook(entry)
	}
}

// FormatLine renders an entry as a timestamped console line.
func FormatLine(entry LogEntry) string {
	return fmt.Sprintf("[%s]  %s", entry.Timestamp.Format("15:04:05"), entry.Message)
}
