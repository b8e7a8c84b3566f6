package toggle

import (
	"context"
	"os"
	"time"
)

// WaitResult reports how a wait ended.
type WaitResult int

const (
	WaitCompleted   WaitResult = iota // The full duration elapsed
	WaitInterrupted                   // An interrupt arrived first
	WaitCancelled                     // The context was cancelled first
)

func (r WaitResult) String() string {
	switch r {
	case WaitCompleted:
		return "completed"
	case WaitInterrupted:
		return "interrupted"
	case WaitCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Waiter blocks for a duration unless interrupted. Each interrupt value is
// consumed by exactly one wait.
type Waiter struct {
	Interrupts <-chan os.Signal

	// After returns a channel that fires once d has elapsed. Defaults to time.After.
	After func(d time.Duration) <-chan time.Time
}

// Wait blocks for d. A nil Interrupts channel never fires.
func (w *Waiter) Wait(ctx context.Context, d time.Duration) WaitResult {
	if err := ctx.Err(); err != nil {
		return WaitCancelled
	}
	// A pending interrupt wins over a zero-length wait.
	select {
	case <-w.Interrupts:
		return WaitInterrupted
	default:
	}
	if d <= 0 {
		return WaitCompleted
	}

	after := w.After
	if after == nil {
		after = time.After
	}
	select {
	case <-after(d):
		return WaitCompleted
	case <-w.Interrupts:
		return WaitInterrupted
	case <-ctx.Done():
		return WaitCancelled
	}
}
