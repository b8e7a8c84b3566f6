package toggle

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/LISSConsulting/flapper/internal/link"
)

// Default sleep bounds in hundredths of a second.
const (
	DefaultMinSleep Sleep = 100
	DefaultMaxSleep Sleep = 6000
)

// DefaultGrace is the window in which a second interrupt means "quit".
const DefaultGrace = 200 * time.Millisecond

// DirectionFor maps a cycle count to a direction: even is up, odd is down.
func DirectionFor(cycle int) link.Direction {
	if cycle%2 == 0 {
		return link.Up
	}
	return link.Down
}

// Sleep is a wait length in hundredths of a second.
type Sleep int

// SleepFromSeconds converts seconds to a Sleep, rounding to the nearest hundredth.
func SleepFromSeconds(sec float64) Sleep {
	if sec < 0 {
		return 0
	}
	return Sleep(sec*100 + 0.5)
}

// Seconds returns the sleep as floating-point seconds.
func (s Sleep) Seconds() float64 { return float64(s) / 100 }

// Duration returns the sleep as a time.Duration.
func (s Sleep) Duration() time.Duration { return time.Duration(s) * 10 * time.Millisecond }

func (s Sleep) String() string { return fmt.Sprintf("%d.%02d", s/100, s%100) }

// Draw returns a sleep uniformly distributed over [min, max] inclusive.
func Draw(rng *rand.Rand, min, max Sleep) Sleep {
	if max <= min {
		return min
	}
	return min + Sleep(rng.Intn(int(max-min)+1))
}

// Split breaks a sleep into a sub-second lead-in and a whole-second
// countdown. The whole part is the sleep rounded half to even; the
// fraction is what remains, or zero when rounding went up.
func Split(s Sleep) (fraction Sleep, whole int) {
	q, r := int(s/100), s%100
	if r > 50 || (r == 50 && q%2 == 1) {
		return 0, q + 1
	}
	return r, q
}
