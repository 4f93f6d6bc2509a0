package tempo_test

import (
	"testing"
	"time"

	"github.com/go-theft-auto/tempo"
)

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{0, 0},
		{-5, 0},
		{60, time.Second / 60},
		{240, time.Second / 240},
		{tempo.DefaultFrameCap, time.Second / 999},
	}
	for _, tt := range tests {
		if got := tempo.FrameInterval(tt.fps); got != tt.want {
			t.Errorf("FrameInterval(%d) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestGovernorSleepsThenSpins(t *testing.T) {
	clock := newFakeClock()
	clock.step = 10 * time.Microsecond
	g := tempo.NewFrameGovernor(100, clock)

	start := clock.now
	elapsed := g.Pace(start)

	if len(clock.sleeps) != 1 {
		t.Fatalf("sleeps = %v, want one", clock.sleeps)
	}
	if want := 10*time.Millisecond - tempo.DefaultSpinMargin; clock.sleeps[0] != want {
		t.Errorf("slept %v, want %v", clock.sleeps[0], want)
	}
	if elapsed < 10*time.Millisecond || elapsed > 10*time.Millisecond+clock.step {
		t.Errorf("elapsed = %v, want within one clock step of 10ms", elapsed)
	}
}

func TestGovernorOversleepReturnsImmediately(t *testing.T) {
	clock := newFakeClock()
	clock.oversleep = 2 * time.Millisecond
	g := tempo.NewFrameGovernor(100, clock)

	start := clock.now
	elapsed := g.Pace(start)

	if elapsed < 10*time.Millisecond {
		t.Errorf("returned early after %v", elapsed)
	}
	if elapsed != 10*time.Millisecond-tempo.DefaultSpinMargin+clock.oversleep {
		t.Errorf("elapsed = %v, want sleep plus oversleep", elapsed)
	}
}

func TestGovernorSpinsWhenInsideMargin(t *testing.T) {
	clock := newFakeClock()
	clock.step = 50 * time.Microsecond
	g := tempo.NewFrameGovernor(100, clock)

	start := clock.now.Add(-9800 * time.Microsecond)
	elapsed := g.Pace(start)

	if len(clock.sleeps) != 0 {
		t.Errorf("slept %v inside the spin margin", clock.sleeps)
	}
	if elapsed < 10*time.Millisecond {
		t.Errorf("returned early after %v", elapsed)
	}
}

func TestGovernorOverrunFrame(t *testing.T) {
	clock := newFakeClock()
	g := tempo.NewFrameGovernor(100, clock)

	start := clock.now.Add(-25 * time.Millisecond)
	if elapsed := g.Pace(start); elapsed != 25*time.Millisecond {
		t.Errorf("elapsed = %v, want 25ms", elapsed)
	}
	if len(clock.sleeps) != 0 {
		t.Errorf("overrun frame slept %v", clock.sleeps)
	}
}

func TestGovernorDisabled(t *testing.T) {
	clock := newFakeClock()
	g := tempo.NewFrameGovernor(0, clock)

	g.Pace(clock.now)
	if len(clock.sleeps) != 0 {
		t.Errorf("disabled governor slept %v", clock.sleeps)
	}
	if g.Target() != 0 {
		t.Errorf("Target() = %v, want 0", g.Target())
	}
}

func TestGovernorMargin(t *testing.T) {
	clock := newFakeClock()
	clock.step = 10 * time.Microsecond
	g := tempo.NewFrameGovernor(100, clock)
	g.SetMargin(2 * time.Millisecond)

	g.Pace(clock.now)
	if len(clock.sleeps) != 1 || clock.sleeps[0] != 8*time.Millisecond {
		t.Errorf("sleeps = %v, want [8ms]", clock.sleeps)
	}

	g.SetMargin(-time.Second)
	if g.Margin() != 0 {
		t.Errorf("Margin() = %v, want 0", g.Margin())
	}
}

func TestGovernorRealClock(t *testing.T) {
	if testing.Short() {
		t.Skip("real-time pacing test")
	}

	const iterations = 1000
	target := time.Second / 240
	g := tempo.NewFrameGovernor(240, nil)

	within := 0
	for i := 0; i < iterations; i++ {
		start := time.Now()
		g.Pace(start)
		elapsed := time.Since(start)
		if elapsed < target {
			t.Fatalf("iteration %d finished early: %v < %v", i, elapsed, target)
		}
		if elapsed <= target+2*time.Millisecond {
			within++
		}
	}
	if within < iterations*99/100 {
		t.Errorf("%d/%d frames within 2ms of target, want at least 99%%", within, iterations)
	}
}
