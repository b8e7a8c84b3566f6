package toggle

import (
	"math/rand"
	"testing"
	"time"

	"github.com/LISSConsulting/flapper/internal/link"
)

func TestDirectionFor(t *testing.T) {
	tests := []struct {
		cycle int
		want  link.Direction
	}{
		{1, link.Down},
		{2, link.Up},
		{3, link.Down},
		{4, link.Up},
		{101, link.Down},
	}
	for _, tt := range tests {
		if got := DirectionFor(tt.cycle); got != tt.want {
			t.Errorf("DirectionFor(%d) = %s, want %s", tt.cycle, got, tt.want)
		}
	}
}

func TestSleepConversions(t *testing.T) {
	s := SleepFromSeconds(45.37)
	if s != 4537 {
		t.Fatalf("SleepFromSeconds(45.37) = %d, want 4537", s)
	}
	if got := s.String(); got != "45.37" {
		t.Errorf("String() = %q, want %q", got, "45.37")
	}
	if got := s.Duration(); got != 45370*time.Millisecond {
		t.Errorf("Duration() = %v, want 45.37s", got)
	}
	if got := s.Seconds(); got != 45.37 {
		t.Errorf("Seconds() = %v, want 45.37", got)
	}
	if got := Sleep(100).String(); got != "1.00" {
		t.Errorf("String() = %q, want %q", got, "1.00")
	}
	if got := SleepFromSeconds(-1); got != 0 {
		t.Errorf("negative seconds should clamp to 0, got %d", got)
	}
}

func TestDraw(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("stays within default bounds", func(t *testing.T) {
		for i := 0; i < 10000; i++ {
			s := Draw(rng, DefaultMinSleep, DefaultMaxSleep)
			if s < 100 || s > 6000 {
				t.Fatalf("draw %d out of range: %s", i, s)
			}
		}
	})

	t.Run("reaches both ends of a narrow range", func(t *testing.T) {
		seen := map[Sleep]bool{}
		for i := 0; i < 1000; i++ {
			seen[Draw(rng, 100, 102)] = true
		}
		for _, want := range []Sleep{100, 101, 102} {
			if !seen[want] {
				t.Errorf("never drew %s", want)
			}
		}
	})

	t.Run("degenerate range returns min", func(t *testing.T) {
		if got := Draw(rng, 4537, 4537); got != 4537 {
			t.Errorf("got %s, want 45.37", got)
		}
		if got := Draw(rng, 500, 100); got != 500 {
			t.Errorf("got %s, want 5.00", got)
		}
	})
}

func TestSplit(t *testing.T) {
	tests := []struct {
		sleep        Sleep
		wantFraction Sleep
		wantWhole    int
	}{
		{4537, 37, 45},
		{4562, 0, 46},
		{4550, 0, 46}, // half rounds to even
		{4450, 50, 44},
		{100, 0, 1},
		{149, 49, 1},
		{6000, 0, 60},
	}
	for _, tt := range tests {
		t.Run(tt.sleep.String(), func(t *testing.T) {
			fraction, whole := Split(tt.sleep)
			if fraction != tt.wantFraction || whole != tt.wantWhole {
				t.Errorf("Split(%s) = (%s, %d), want (%s, %d)",
					tt.sleep, fraction, whole, tt.wantFraction, tt.wantWhole)
			}
		})
	}
}

func TestSplitReconstructs(t *testing.T) {
	for s := DefaultMinSleep; s <= DefaultMaxSleep; s++ {
		fraction, whole := Split(s)
		if fraction < 0 || fraction >= 100 {
			t.Fatalf("Split(%s): fraction %s out of [0, 1)", s, fraction)
		}
		total := fraction + Sleep(whole*100)
		if fraction > 0 && total != s {
			t.Fatalf("Split(%s): %s + %d != original", s, fraction, whole)
		}
		// Rounding up drops the fraction; the wait overshoots by at most half a second.
		if fraction == 0 && (total < s || total-s > 50) {
			t.Fatalf("Split(%s): whole %d too far from original", s, whole)
		}
	}
}
